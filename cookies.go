package main

import (
	"net/http"
	"net/http/cookiejar"
	urlpkg "net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/publicsuffix"

	"github.com/gurl-http/gurl/internal/cookiefile"
	"github.com/gurl-http/gurl/internal/log"
)

// cookieState wires a standards-following jar into the manual redirect loop.
// Because requests go straight through RoundTrip, the jar is consulted before
// every hop and fed every hop's Set-Cookie, so redirects carry session
// cookies the way an http.Client would. When -c is given it also records
// enough of each cookie to serialize a Netscape file afterwards.
type cookieState struct {
	jar http.CookieJar

	// base is a raw -b "k=v; k2=v2" string, sent on every request
	// verbatim like curl does, independent of the jar's domain rules.
	base      string
	baseNames map[string]bool

	record  bool
	order   []string
	entries map[string]cookiefile.Entry
}

func newCookieState(record bool) (*cookieState, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, errors.Wrap(err, "creating cookie jar")
	}
	c := &cookieState{jar: jar, record: record}
	if record {
		c.entries = make(map[string]cookiefile.Entry)
	}
	return c, nil
}

// load handles -b: an argument containing '=' is a literal cookie string,
// anything else names a Netscape cookie file.
func (c *cookieState) load(arg string) error {
	if arg == "" {
		return nil
	}
	if strings.ContainsRune(arg, '=') {
		c.base = strings.TrimSpace(arg)
		c.baseNames = make(map[string]bool)
		for _, ck := range parseCookieString(c.base) {
			c.baseNames[ck.Name] = true
		}
		return nil
	}

	f, err := os.Open(arg)
	if err != nil {
		return errors.Wrap(err, "opening cookie file")
	}
	defer f.Close()

	entries, err := cookiefile.Parse(f)
	if err != nil {
		return err
	}
	for _, e := range entries {
		u := &urlpkg.URL{Scheme: "http", Host: e.Domain, Path: e.Path}
		if e.Secure {
			u.Scheme = "https"
		}
		c.jar.SetCookies(u, []*http.Cookie{e.Cookie()})
		c.remember(e)
	}
	log.Debug().Int("count", len(entries)).Str("file", arg).Msg("loaded cookies")
	return nil
}

func parseCookieString(s string) []*http.Cookie {
	var cookies []*http.Cookie
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, _ := strings.Cut(part, "=")
		cookies = append(cookies, &http.Cookie{
			Name:  strings.TrimSpace(name),
			Value: strings.TrimSpace(value),
		})
	}
	return cookies
}

// apply rewrites the Cookie header for the next hop from the -b string plus
// whatever the jar holds for u. Jar cookies shadowed by the -b string are
// skipped rather than sent twice.
func (c *cookieState) apply(h http.Header, u *urlpkg.URL) {
	parts := make([]string, 0, 4)
	if c.base != "" {
		parts = append(parts, c.base)
	}
	for _, ck := range c.jar.Cookies(u) {
		if c.baseNames[ck.Name] {
			continue
		}
		parts = append(parts, ck.Name+"="+ck.Value)
	}
	if len(parts) == 0 {
		h.Del("Cookie")
		return
	}
	h.Set("Cookie", strings.Join(parts, "; "))
	log.Trace().Str("url", u.String()).Str("cookie", h.Get("Cookie")).Msg("sending cookies")
}

// store feeds a hop's Set-Cookie headers back into the jar and, when
// recording, into the Netscape entries.
func (c *cookieState) store(u *urlpkg.URL, resp *http.Response) {
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return
	}
	c.jar.SetCookies(u, cookies)

	if !c.record {
		return
	}
	for _, ck := range cookies {
		e := cookiefile.Entry{
			Domain:   u.Hostname(),
			Path:     "/",
			Name:     ck.Name,
			Value:    ck.Value,
			Secure:   ck.Secure,
			HttpOnly: ck.HttpOnly,
		}
		if ck.Domain != "" {
			e.Domain = strings.TrimPrefix(ck.Domain, ".")
			e.Subdomains = true
		}
		if ck.Path != "" {
			e.Path = ck.Path
		}
		switch {
		case ck.MaxAge < 0:
			c.forget(e)
			continue
		case ck.MaxAge > 0:
			e.Expires = time.Now().Add(time.Duration(ck.MaxAge) * time.Second)
		case !ck.Expires.IsZero():
			e.Expires = ck.Expires
		}
		c.remember(e)
	}
}

func entryKey(e cookiefile.Entry) string {
	return e.Domain + ";" + e.Path + ";" + e.Name
}

func (c *cookieState) remember(e cookiefile.Entry) {
	if !c.record {
		return
	}
	key := entryKey(e)
	if _, ok := c.entries[key]; !ok {
		c.order = append(c.order, key)
	}
	c.entries[key] = e
}

func (c *cookieState) forget(e cookiefile.Entry) {
	delete(c.entries, entryKey(e))
}

// save writes the recorded cookies for -c. "-" goes to stdout, like curl.
func (c *cookieState) save(path string) error {
	if path == "" {
		return nil
	}
	entries := make([]cookiefile.Entry, 0, len(c.order))
	for _, key := range c.order {
		if e, ok := c.entries[key]; ok {
			entries = append(entries, e)
		}
	}
	if path == "-" {
		return cookiefile.Write(os.Stdout, entries)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating cookie jar file")
	}
	werr := cookiefile.Write(f, entries)
	if cerr := f.Close(); werr == nil {
		werr = errors.Wrap(cerr, "closing cookie jar file")
	}
	return werr
}
