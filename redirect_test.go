package main

import (
	urlpkg "net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurl-http/gurl/internal/httpx"
)

func TestIsRedirect(t *testing.T) {
	for _, code := range []int{301, 302, 303, 307, 308} {
		assert.True(t, isRedirect(code), "%d", code)
	}
	for _, code := range []int{200, 204, 300, 304, 400, 404, 500} {
		assert.False(t, isRedirect(code), "%d", code)
	}
}

func TestRedirectMethod(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		method   httpx.Method
		want     httpx.Method
		dropBody bool
	}{
		{name: "301 POST becomes GET", code: 301, method: httpx.MethodPost, want: httpx.MethodGet, dropBody: true},
		{name: "302 POST becomes GET", code: 302, method: httpx.MethodPost, want: httpx.MethodGet, dropBody: true},
		{name: "301 PUT preserved", code: 301, method: httpx.MethodPut, want: httpx.MethodPut},
		{name: "302 GET preserved", code: 302, method: httpx.MethodGet, want: httpx.MethodGet},
		{name: "303 POST becomes GET", code: 303, method: httpx.MethodPost, want: httpx.MethodGet, dropBody: true},
		{name: "303 PUT becomes GET", code: 303, method: httpx.MethodPut, want: httpx.MethodGet, dropBody: true},
		{name: "303 HEAD stays HEAD", code: 303, method: httpx.MethodHead, want: httpx.MethodHead, dropBody: true},
		{name: "307 POST preserved", code: 307, method: httpx.MethodPost, want: httpx.MethodPost},
		{name: "308 PUT preserved", code: 308, method: httpx.MethodPut, want: httpx.MethodPut},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dropBody := redirectMethod(tt.code, tt.method)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.dropBody, dropBody)
		})
	}
}

func TestResolveLocation(t *testing.T) {
	base, err := urlpkg.Parse("https://example.com/a/b?q=1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		location string
		want     string
		wantErr  bool
	}{
		{name: "absolute", location: "https://other.test/x", want: "https://other.test/x"},
		{name: "absolute path", location: "/login", want: "https://example.com/login"},
		{name: "relative path", location: "c", want: "https://example.com/a/c"},
		{name: "scheme change", location: "http://example.com/", want: "http://example.com/"},
		{name: "host only gets root path", location: "https://other.test", want: "https://other.test/"},
		{name: "missing", location: "", wantErr: true},
		{name: "unparsable", location: "http://%zz", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveLocation(base, tt.location)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
