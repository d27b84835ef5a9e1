// Package cookiefile reads and writes cookies in the Netscape cookies.txt
// format that curl's -b FILE and -c FILE use. Each line is seven
// tab-separated fields:
//
//	domain  include-subdomains  path  secure  expires  name  value
//
// HttpOnly cookies carry curl's "#HttpOnly_" prefix on the domain field.
package cookiefile

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	header       = "# Netscape HTTP Cookie File"
	httpOnlyMark = "#HttpOnly_"
)

type Entry struct {
	Domain     string
	Subdomains bool
	Path       string
	Secure     bool
	// Expires is zero for session cookies, which serialize with an
	// expiry field of 0.
	Expires  time.Time
	Name     string
	Value    string
	HttpOnly bool
}

// Cookie converts an entry into the net/http shape a jar accepts.
func (e Entry) Cookie() *http.Cookie {
	c := &http.Cookie{
		Name:     e.Name,
		Value:    e.Value,
		Path:     e.Path,
		Secure:   e.Secure,
		HttpOnly: e.HttpOnly,
		Expires:  e.Expires,
	}
	if e.Subdomains {
		c.Domain = e.Domain
	}
	return c
}

// Parse reads a cookies.txt stream. Blank lines and comments are skipped,
// except for the #HttpOnly_ pseudo-comment curl emits. A malformed line is
// an error rather than a silent skip, matching curl's strictness.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		httpOnly := false
		if strings.HasPrefix(line, httpOnlyMark) {
			httpOnly = true
			line = strings.TrimPrefix(line, httpOnlyMark)
		} else if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			return nil, errors.Errorf("cookie file line %d: got %d fields, want 7", lineno, len(fields))
		}

		expires, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "cookie file line %d: bad expiry", lineno)
		}

		e := Entry{
			Domain:     strings.TrimPrefix(fields[0], "."),
			Subdomains: strings.EqualFold(fields[1], "TRUE"),
			Path:       fields[2],
			Secure:     strings.EqualFold(fields[3], "TRUE"),
			Name:       fields[5],
			Value:      fields[6],
			HttpOnly:   httpOnly,
		}
		if expires > 0 {
			e.Expires = time.Unix(expires, 0)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading cookie file")
	}
	return entries, nil
}

// Write serializes entries under the standard header. Expired entries are
// written as-is; pruning is the caller's decision.
func Write(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, header)
	fmt.Fprintln(bw, "# https://curl.se/docs/http-cookies.html")
	fmt.Fprintln(bw, "# This file was generated by gurl! Edit at your own risk.")
	fmt.Fprintln(bw)

	for _, e := range entries {
		domain := e.Domain
		if e.Subdomains {
			domain = "." + domain
		}
		if e.HttpOnly {
			domain = httpOnlyMark + domain
		}
		var expires int64
		if !e.Expires.IsZero() {
			expires = e.Expires.Unix()
		}
		fmt.Fprintf(bw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			domain,
			flag(e.Subdomains),
			e.Path,
			flag(e.Secure),
			expires,
			e.Name,
			e.Value,
		)
	}
	return errors.Wrap(bw.Flush(), "writing cookie file")
}

func flag(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
