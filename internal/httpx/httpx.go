// Package httpx holds the small parsing primitives the CLI needs before a
// request ever reaches a transport: method tokens, "Name: value" header
// arguments, and port validation.
package httpx

import (
	"strings"

	"github.com/pkg/errors"
)

type Header struct {
	Name, Value string
}

// ParseHeader splits a curl-style -H argument on the first ':'. Both sides
// are trimmed; an empty name or a missing ':' is an error.
func ParseHeader(line string) (Header, error) {
	name, value, found := strings.Cut(line, ":")
	if !found {
		return Header{}, errors.Errorf("invalid header %q: missing ':'", line)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Header{}, errors.Errorf("invalid header %q: empty name", line)
	}
	return Header{Name: name, Value: strings.TrimSpace(value)}, nil
}

type Method string

const (
	MethodGet     = Method("GET")
	MethodHead    = Method("HEAD")
	MethodPost    = Method("POST")
	MethodPut     = Method("PUT")
	MethodPatch   = Method("PATCH")
	MethodDelete  = Method("DELETE")
	MethodConnect = Method("CONNECT")
	MethodOptions = Method("OPTIONS")
	MethodTrace   = Method("TRACE")
)

// ParseMethod uppercases a -X argument. The common methods hit constants so
// the hot path never allocates; anything else passes through as an arbitrary
// token, which the wire happily accepts.
func ParseMethod(m string) Method {
	if m == "" {
		return MethodGet
	}
	switch Method(m) {
	case MethodGet:
		return MethodGet
	case MethodHead:
		return MethodHead
	case MethodPost:
		return MethodPost
	case MethodPut:
		return MethodPut
	case MethodDelete:
		return MethodDelete
	}
	switch {
	case methodEqual(m, MethodGet):
		return MethodGet
	case methodEqual(m, MethodHead):
		return MethodHead
	case methodEqual(m, MethodPost):
		return MethodPost
	case methodEqual(m, MethodPut):
		return MethodPut
	case methodEqual(m, MethodDelete):
		return MethodDelete
	}
	return Method(asciiToUpper(m))
}

func (m Method) String() string {
	return string(m)
}

func methodEqual(s string, m Method) bool {
	if len(s) != len(m) {
		return false
	}
	for i := range len(s) {
		if upper(s[i]) != m[i] {
			return false
		}
	}
	return true
}

func upper(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func asciiToUpper(s string) string {
	hasLower := false
	for i := range len(s) {
		c := s[i]
		if 'a' <= c && c <= 'z' {
			hasLower = true
			break
		}
	}
	if !hasLower {
		return s
	}
	var (
		b   strings.Builder
		pos int
	)
	b.Grow(len(s))
	for i := range len(s) {
		c := s[i]
		if 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
			if pos < i {
				b.WriteString(s[pos:i])
			}
			b.WriteByte(c)
			pos = i + 1
		}
	}
	if pos < len(s) {
		b.WriteString(s[pos:])
	}
	return b.String()
}

func atoi64(s string) (int64, bool) {
	if s == "" || s[0] == '-' {
		return -1, false
	}

	var n int64
	for i := range len(s) {
		c := s[i]
		if c < '0' || c > '9' {
			return -1, false
		}
		n = n*10 + int64(c-'0')
	}
	return n, true
}

// ParsePort validates an explicit port from a URL, or supplies the scheme
// default when the URL carries none.
func ParsePort(scheme, s string) (uint16, bool) {
	if s == "" {
		switch scheme {
		case "http":
			return 80, true
		case "https":
			return 443, true
		}
		return 0, false
	}
	if p, ok := atoi64(s); ok && p > 0 && p <= 65535 {
		return uint16(p), true
	}
	return 0, false
}
