package device

import "errors"

var (
	ErrUnreadableFile = errors.New("unable to read spreadsheet file")
	ErrInvalidDevice  = errors.New("invalid device")
	ErrInvalidPage    = errors.New("invalid page parameters")
	ErrInvalidLimit   = errors.New("invalid limit")
	ErrInvalidJobID   = errors.New("invalid import job id")
	ErrJobNotFound    = errors.New("import job not found")
	ErrInvalidID      = errors.New("invalid device id")
	ErrDeviceNotFound = errors.New("device not found")
)
