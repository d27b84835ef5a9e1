package main

import (
	urlpkg "net/url"

	"github.com/pkg/errors"

	"github.com/gurl-http/gurl/internal/httpx"
)

func isRedirect(code int) bool {
	switch code {
	case 301, 302, 303, 307, 308:
		return true
	}
	return false
}

// redirectMethod applies curl's rewrite rules for the next hop: 303 turns
// everything but HEAD into a bodyless GET, 301 and 302 rewrite only POST,
// and 307/308 preserve both method and body. The second return reports
// whether the body must be dropped.
func redirectMethod(code int, method httpx.Method) (httpx.Method, bool) {
	switch code {
	case 303:
		if method == httpx.MethodHead {
			return method, true
		}
		return httpx.MethodGet, true
	case 301, 302:
		if method == httpx.MethodPost {
			return httpx.MethodGet, true
		}
	}
	return method, false
}

// resolveLocation turns a Location header into the next hop's URL, relative
// references resolved against the hop that produced them.
func resolveLocation(u *urlpkg.URL, location string) (*urlpkg.URL, error) {
	if location == "" {
		return nil, errors.New("redirect response missing Location header")
	}
	ref, err := urlpkg.Parse(location)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid Location %q", location)
	}
	next := u.ResolveReference(ref)
	if next.Path == "" {
		next.Path = "/"
	}
	return next, nil
}
