package frame

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyMessage         = errors.New("sensor message was empty")
	ErrTruncatedMessage     = errors.New("sensor message was truncated")
	ErrIncorrectMessageType = errors.New("incorrect message type")
	ErrInvalidCRC           = errors.New("message integrity check failed crc")
	ErrInvalidChecksum      = errors.New("message integrity check failed checksum")
	ErrInvalidTimestamp     = errors.New("message carries an impossible date/time")
)

// IncorrectMessageTypeError reports the device-type byte that did not match.
type IncorrectMessageTypeError struct {
	Type byte
}

func (e *IncorrectMessageTypeError) Error() string {
	return fmt.Sprintf("incorrect message type 0x%02X", e.Type)
}

// Is lets errors.Is match ErrIncorrectMessageType.
func (e *IncorrectMessageTypeError) Is(target error) bool {
	return target == ErrIncorrectMessageType
}
