// Package matcher builds line filters from a target date string.
package matcher

import "strings"

// Matcher decides whether a decoded log line should be kept.
type Matcher interface {
	Match(line string) bool
}

// Prefix matches lines that begin with a literal string. Every byte of the
// literal is compared as-is, so regex metacharacters and invalid UTF-8 have
// no special meaning.
type Prefix struct {
	literal string
}

// New returns a start-of-line matcher for date. Any string is accepted.
func New(date string) *Prefix {
	return &Prefix{literal: date}
}

// Match reports whether line starts with the literal. Case-sensitive.
func (p *Prefix) Match(line string) bool {
	return strings.HasPrefix(line, p.literal)
}

// Literal returns the string the matcher was built from.
func (p *Prefix) Literal() string { return p.literal }
