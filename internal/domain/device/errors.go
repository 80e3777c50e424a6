package device

import "errors"

var (
	ErrInvalidRAMSize     = errors.New("ram size must be between 512 MB and 1 TB")
	ErrInvalidStorageSize = errors.New("storage size must be between 1 GB and 100 TB")
	ErrInvalidStorageType = errors.New("storage type must be SSD or HDD")
	ErrInvalidWeight      = errors.New("weight must be between 0.1 and 500 kg")
	ErrInvalidReference   = errors.New("reference id must be positive")
	ErrInvalidUSBPort     = errors.New("usb port type must be non-empty and count positive")
	ErrAlreadyDeleted     = errors.New("device is already deleted")
	ErrNotDeleted         = errors.New("device is not deleted")
	ErrDeviceNotFound     = errors.New("device not found")

	ErrEmptyFileName        = errors.New("file name cannot be empty")
	ErrInvalidJobTransition = errors.New("invalid import job status transition")
	ErrImportJobNotFound    = errors.New("import job not found")

	ErrEmptyManufacturerName = errors.New("manufacturer name cannot be empty")
	ErrEmptyModelName        = errors.New("model name cannot be empty")
	ErrInvalidWattage        = errors.New("wattage must be positive")
)
