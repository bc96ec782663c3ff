package report

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrInvalidEncoding reports input bytes that do not decode as UTF-8.
var ErrInvalidEncoding = errors.New("invalid UTF-8 sequence")

// Escape rewrites s as the body of a JSON string literal. The caller adds
// the surrounding quotes. Printable ASCII passes through, the two JSON
// metacharacters and the short-form controls use their two-character
// escapes, and everything else becomes \uXXXX with lowercase hex digits,
// code points above the BMP as a surrogate pair. Bytes that do not form
// valid UTF-8 are an error, never silently dropped or mangled.
func Escape(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return "", fmt.Errorf("%w at byte %d", ErrInvalidEncoding, i)
		}
		i += size
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			switch {
			case r >= 0x20 && r <= 0x7e:
				b.WriteByte(byte(r))
			case r > 0xffff:
				hi, lo := utf16.EncodeRune(r)
				fmt.Fprintf(&b, `\u%04x\u%04x`, hi, lo)
			default:
				fmt.Fprintf(&b, `\u%04x`, r)
			}
		}
	}
	return b.String(), nil
}
