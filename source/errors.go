package source

import "errors"

var (
	// ErrSizeMismatch is returned when a file size does not match the declared frame geometry.
	ErrSizeMismatch = errors.New("file size does not match frame geometry")

	// ErrOutOfRange is returned when a frame index addresses bytes beyond the end of the file.
	ErrOutOfRange = errors.New("frame index out of range")

	// ErrIO is returned when a file cannot be stat'ed, opened, read in full or written.
	ErrIO = errors.New("i/o error")

	// ErrInvalidGeometry is returned for non-positive or overflowing frame dimensions.
	ErrInvalidGeometry = errors.New("invalid frame geometry")

	// ErrInvalidPixelType is returned for pixel types without a fixed element size.
	ErrInvalidPixelType = errors.New("invalid pixel type")

	// ErrInvalidOption is returned when an option value is rejected.
	ErrInvalidOption = errors.New("invalid option")

	// ErrPixelTypeMismatch is returned when a frame is materialized as the wrong Go type.
	ErrPixelTypeMismatch = errors.New("pixel type mismatch")
)
