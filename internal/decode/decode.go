// Package decode turns raw log bytes into text under an explicit policy for
// malformed UTF-8.
package decode

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// ErrInvalidUTF8 is returned by the Strict policy for malformed input.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Policy selects how invalid byte sequences are handled.
type Policy int

const (
	// Ignore drops invalid byte sequences.
	Ignore Policy = iota
	// Replace substitutes each invalid sequence with U+FFFD.
	Replace
	// Strict rejects lines containing invalid sequences.
	Strict
)

var names = map[Policy]string{
	Ignore:  "ignore",
	Replace: "replace",
	Strict:  "strict",
}

// Parse maps a policy name to a Policy.
func Parse(s string) (Policy, error) {
	for p, name := range names {
		if strings.EqualFold(s, name) {
			return p, nil
		}
	}
	return Ignore, fmt.Errorf("unknown decode policy %q (want ignore, replace or strict)", s)
}

func (p Policy) String() string {
	if name, ok := names[p]; ok {
		return name
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Decode converts b to a string according to the policy.
func (p Policy) Decode(b []byte) (string, error) {
	if utf8.Valid(b) {
		return string(b), nil
	}

	switch p {
	case Replace:
		out, err := unicode.UTF8.NewDecoder().Bytes(b)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case Strict:
		return "", ErrInvalidUTF8
	default:
		return strings.ToValidUTF8(string(b), ""), nil
	}
}
