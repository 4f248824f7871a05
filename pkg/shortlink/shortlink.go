package shortlink

import (
	"errors"
	"fmt"
	"strings"
)

// Base62 alphabet, digits first. Encode/Decode form a bijection between
// non-negative integers and their shortest base-62 spelling.
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const base = uint64(len(alphabet))

var ErrMalformed = errors.New("malformed short link string")

// Encode converts a recipe identifier into its compact base-62 form.
func Encode(id uint64) string {
	if id == 0 {
		return string(alphabet[0])
	}

	var b strings.Builder
	for id > 0 {
		b.WriteByte(alphabet[id%base])
		id /= base
	}

	// digits were produced least-significant first
	s := []byte(b.String())
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	return string(s)
}

// Decode reverses Encode. Input containing characters outside the
// base-62 alphabet, or overflowing uint64, fails with ErrMalformed.
func Decode(s string) (uint64, error) {
	if s == "" {
		return 0, ErrMalformed
	}

	var id uint64
	for _, c := range s {
		idx := strings.IndexRune(alphabet, c)
		if idx < 0 {
			return 0, fmt.Errorf("%w: unexpected character %q", ErrMalformed, c)
		}
		if id > (^uint64(0)-uint64(idx))/base {
			return 0, fmt.Errorf("%w: value overflows", ErrMalformed)
		}
		id = id*base + uint64(idx)
	}
	return id, nil
}
