// File: pkg/combine/decode.go
package combine

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrDecode marks content that is not valid UTF-8 text.
var ErrDecode = errors.New("content is not valid UTF-8")

// decodeError reports where the first invalid byte sequence starts.
type decodeError struct {
	Offset int
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("%v: invalid byte sequence at offset %d", ErrDecode, e.Offset)
}

func (e *decodeError) Is(target error) bool {
	return target == ErrDecode
}

// decodeText returns data as a string if it is valid UTF-8.
// The bytes are not altered: a byte order mark or CRLF line endings pass through.
func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	return "", &decodeError{Offset: invalidOffset(data)}
}

// invalidOffset returns the index of the first byte that does not start a valid rune.
func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}
