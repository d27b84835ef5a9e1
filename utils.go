package main

import (
	"net/http"
	urlpkg "net/url"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/gurl-http/gurl/internal/httpx"
)

func parseURL(url string) (*urlpkg.URL, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, errors.Errorf("no host in URL %q", url)
	}
	if _, ok := httpx.ParsePort(u.Scheme, u.Port()); !ok {
		return nil, errors.Errorf("invalid port in URL %q", url)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}

func sortHeaders(h http.Header) []keyValues {
	s := make([]keyValues, 0, len(h))
	for k, vs := range h {
		s = append(s, keyValues{key: k, values: vs})
	}
	slices.SortFunc(s, func(a, b keyValues) int { return strings.Compare(a.key, b.key) })
	return s
}

type keyValues struct {
	key    string
	values []string
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
