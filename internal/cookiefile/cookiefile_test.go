package cookiefile

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	in := strings.Join([]string{
		"# Netscape HTTP Cookie File",
		"# comment line",
		"",
		".example.com\tTRUE\t/\tFALSE\t1893456000\tsession\tabc123",
		"example.com\tFALSE\t/app\tTRUE\t0\tcsrf\txyz",
		"#HttpOnly_.example.com\tTRUE\t/\tTRUE\t1893456000\tauth\tsecret",
	}, "\n")

	entries, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, Entry{
		Domain:     "example.com",
		Subdomains: true,
		Path:       "/",
		Expires:    time.Unix(1893456000, 0),
		Name:       "session",
		Value:      "abc123",
	}, entries[0])

	assert.Equal(t, "csrf", entries[1].Name)
	assert.True(t, entries[1].Secure)
	assert.False(t, entries[1].Subdomains)
	assert.True(t, entries[1].Expires.IsZero(), "0 expiry is a session cookie")

	assert.True(t, entries[2].HttpOnly)
	assert.Equal(t, "auth", entries[2].Name)
	assert.Equal(t, "example.com", entries[2].Domain)
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "too few fields", in: "example.com\tTRUE\t/\tFALSE\t0\tname"},
		{name: "too many fields", in: "example.com\tTRUE\t/\tFALSE\t0\tname\tvalue\textra"},
		{name: "bad expiry", in: "example.com\tTRUE\t/\tFALSE\tsoon\tname\tvalue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			require.Error(t, err)
		})
	}
}

func TestWriteThenParse(t *testing.T) {
	entries := []Entry{
		{
			Domain:     "example.com",
			Subdomains: true,
			Path:       "/",
			Secure:     true,
			Expires:    time.Unix(1893456000, 0),
			Name:       "session",
			Value:      "abc123",
			HttpOnly:   true,
		},
		{
			Domain: "other.test",
			Path:   "/x",
			Name:   "pref",
			Value:  "dark",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, entries))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Netscape HTTP Cookie File\n"))
	assert.Contains(t, out, "#HttpOnly_.example.com\tTRUE\t/\tTRUE\t1893456000\tsession\tabc123\n")
	assert.Contains(t, out, "other.test\tFALSE\t/x\tFALSE\t0\tpref\tdark\n")

	got, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestEntryCookie(t *testing.T) {
	e := Entry{
		Domain:     "example.com",
		Subdomains: true,
		Path:       "/",
		Secure:     true,
		Name:       "a",
		Value:      "b",
	}
	c := e.Cookie()
	assert.Equal(t, "example.com", c.Domain)
	assert.Equal(t, "a", c.Name)
	assert.True(t, c.Secure)

	hostOnly := Entry{Domain: "example.com", Path: "/", Name: "a", Value: "b"}
	assert.Empty(t, hostOnly.Cookie().Domain, "host-only cookies carry no Domain attribute")
}
