package frame

import "bytes"

// Preamble is the synchronisation marker that precedes every Fine Offset
// message in a demodulated capture.
var Preamble = [3]byte{0xAA, 0x2D, 0xD4}

// Mode selects how strictly Validate checks message integrity.
type Mode int

const (
	// Strict enforces both the CRC and the additive checksum.
	Strict Mode = iota
	// Relaxed skips integrity checks. Only meant for payloads already known
	// to be well formed, such as synthetic fixtures.
	Relaxed
)

func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Relaxed:
		return "relaxed"
	default:
		return "unknown"
	}
}

// Locate returns the bytes strictly after the first preamble in buf. The
// boolean is false when buf holds no preamble or nothing follows it.
func Locate(buf []byte) ([]byte, bool) {
	for i := 0; i+len(Preamble) <= len(buf); i++ {
		if !bytes.Equal(buf[i:i+len(Preamble)], Preamble[:]) {
			continue
		}
		payload := buf[i+len(Preamble):]
		if len(payload) == 0 {
			return nil, false
		}
		return payload, true
	}
	return nil, false
}

// Validate checks that payload starts with a message of the given device type
// and length and returns the message body with the trailing CRC and checksum
// bytes removed.
func Validate(payload []byte, deviceType byte, length int, mode Mode) ([]byte, error) {
	if len(payload) == 0 {
		return nil, ErrEmptyMessage
	}
	if payload[0] != deviceType {
		return nil, &IncorrectMessageTypeError{Type: payload[0]}
	}
	if length < 3 || len(payload) < length {
		return nil, ErrTruncatedMessage
	}
	crcIdx := length - 2
	covered := payload[:crcIdx+1]
	if mode == Strict {
		if CRC8(covered) != 0 {
			return nil, ErrInvalidCRC
		}
		if Checksum(covered) != payload[length-1] {
			return nil, ErrInvalidChecksum
		}
	}
	body := make([]byte, crcIdx)
	copy(body, payload[:crcIdx])
	return body, nil
}
