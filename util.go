package exif

import (
	"fmt"
)

// A FormatError reports that the input is not valid EXIF data.
type FormatError string

func (e FormatError) Error() string {
	return fmt.Sprintf("exif: invalid format: %s", string(e))
}

// An UnsupportedError reports that the input uses a valid but
// unimplemented feature.
type UnsupportedError string

func (e UnsupportedError) Error() string {
	return fmt.Sprintf("exif: unsupported feature: %s", string(e))
}

// Errors returned by the decoder. They are wrapped with context,
// use errors.Is or errors.Cause to match them.
const (
	ErrTruncatedHeader      = FormatError("truncated header")
	ErrSignatureMismatch    = FormatError("Exif signature not found")
	ErrUnsupportedByteOrder = UnsupportedError("big endian byte order")
	ErrInvalidByteOrder     = FormatError("invalid byte order")
	ErrTruncatedDirectory   = FormatError("truncated directory")
	ErrTruncatedPayload     = FormatError("truncated payload")
	ErrPayloadTooLarge      = FormatError("payload too large")
	ErrZeroDenominator      = FormatError("rational with zero denominator")
)

// cstring returns p up to the first NUL byte.
func cstring(p []byte) string {
	for i, b := range p {
		if b == 0 {
			return string(p[:i])
		}
	}
	return string(p)
}
