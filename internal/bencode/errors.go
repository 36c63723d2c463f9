package bencode

import (
	"errors"
	"fmt"
)

// ErrMalformed is the sentinel kind every syntax error from this package
// wraps, so callers can test with errors.Is(err, bencode.ErrMalformed)
// instead of matching on message text. It corresponds to spec's
// MalformedBencode error kind.
var ErrMalformed = errors.New("malformed bencode")

// SyntaxError reports a decode failure with a byte offset and a short
// snippet of the offending text, in the spirit of the positional
// ParseError eduardo-antunes/torrent-go's two parsers used to report.
type SyntaxError struct {
	Reason  string
	Pos     int
	Context string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bencode: %s at offset %d (near %q)", e.Reason, e.Pos, e.Context)
}

func (e *SyntaxError) Unwrap() error { return ErrMalformed }

var (
	errEmpty        = errors.New("empty integer")
	errInvalidInt   = errors.New("invalid integer digits")
	errLeadingZero  = errors.New("leading zero in integer")
	errNegativeZero = errors.New("negative zero")
	errOverflow     = errors.New("integer overflow")
)

func (d *Decoder) errf(reason string) error {
	end := d.pos + 16
	if end > len(d.data) {
		end = len(d.data)
	}
	start := d.pos
	if start > len(d.data) {
		start = len(d.data)
	}
	return &SyntaxError{Reason: reason, Pos: d.pos, Context: string(d.data[start:end])}
}
