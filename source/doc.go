// Package source reads frames from fixed-layout raw frame sequence files.
//
// A raw frame file (MRAW style) is a flat sequence of equally sized frames
// with no header and no per-frame metadata:
//
//	+-----------+-----------+-----+---------------+
//	|  frame 0  |  frame 1  | ... | frame N-1     |
//	+-----------+-----------+-----+---------------+
//	 <-stride->
//
// Each frame holds height rows of width pixels, row-major, every pixel being
// the same fixed-width numeric type. The geometry is not recorded in the file,
// so it has to be supplied by the caller and is checked against the file size
// when the Source is created.
//
// # Basic Usage
//
//	src, err := source.New("shot.mraw", 640, 480, 2000,
//	    source.WithPixelType(format.Uint16),
//	    source.WithFrameRate(5000),
//	)
//	if err != nil {
//	    return err
//	}
//
//	frame, err := src.Frame(10)
//	if err != nil {
//	    return err
//	}
//	pixels, err := source.Pixels[uint16](frame) // [480][640]uint16
//
// Frames can be addressed by time as well. Frame i is stamped
// timeOrigin + i/frameRate, and FrameByTime returns the frame whose stamp is
// closest to the requested time:
//
//	frame, err = src.FrameByTime(0.0125)
//
// # Errors
//
// Construction fails with ErrSizeMismatch when the file size differs from
// width*height*bytesPerPixel*frameCount. Frame retrieval fails with
// ErrOutOfRange for indices outside the file and with ErrIO when the file
// cannot be opened or read in full. All errors are wrapped with context and
// can be matched with errors.Is.
//
// # Resource Usage
//
// A Source never keeps a file handle open. Every call to Frame opens the file,
// reads exactly one frame and closes it again. A Source is immutable after
// construction and safe for concurrent use; concurrent writers to the
// underlying file are not detected.
package source
