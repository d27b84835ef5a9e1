package main

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyBuffer(t *testing.T) {
	var buf [64]byte

	var dst bytes.Buffer
	n, err := copyBuffer(&dst, strings.NewReader("hello world"), buf[:], true)
	require.NoError(t, err)
	assert.EqualValues(t, 11, n)
	assert.Equal(t, "hello world", dst.String())

	dst.Reset()
	_, err = copyBuffer(&dst, bytes.NewReader([]byte{0xff, 0xfe, 0x00}), buf[:], true)
	require.Error(t, err, "binary refused when guarding stdout")

	dst.Reset()
	n, err = copyBuffer(&dst, bytes.NewReader([]byte{0xff, 0xfe, 0x00}), buf[:], false)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func compressedResponse(t *testing.T, encoding string, body string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	switch encoding {
	case "gzip":
		zw := gzip.NewWriter(&buf)
		_, err := zw.Write([]byte(body))
		require.NoError(t, err)
		require.NoError(t, zw.Close())
	case "zstd":
		zw, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		_, err = zw.Write([]byte(body))
		require.NoError(t, err)
		require.NoError(t, zw.Close())
	case "br":
		zw := brotli.NewWriter(&buf)
		_, err := zw.Write([]byte(body))
		require.NoError(t, err)
		require.NoError(t, zw.Close())
	default:
		buf.WriteString(body)
	}
	h := http.Header{}
	if encoding != "" {
		h.Set("Content-Encoding", encoding)
	}
	return &http.Response{Header: h, Body: io.NopCloser(&buf)}
}

func TestDecodeBody(t *testing.T) {
	prev := *flagCompressed
	defer func() { *flagCompressed = prev }()

	const body = "payload payload payload"

	for _, encoding := range []string{"gzip", "zstd", "br", ""} {
		t.Run("compressed "+encoding, func(t *testing.T) {
			*flagCompressed = true
			resp := compressedResponse(t, encoding, body)
			r, done, err := decodeBody(resp)
			require.NoError(t, err)
			defer done()
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, body, string(got))
		})
	}

	t.Run("flag off leaves body alone", func(t *testing.T) {
		*flagCompressed = false
		resp := compressedResponse(t, "gzip", body)
		r, done, err := decodeBody(resp)
		require.NoError(t, err)
		defer done()
		got, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.NotEqual(t, body, string(got), "gzip bytes pass through undecoded")
	})
}

func TestOpenOutput(t *testing.T) {
	prev := *flagOutput
	defer func() { *flagOutput = prev }()

	tests := []struct {
		name      string
		output    string
		want      io.Writer
		printable bool
	}{
		{name: "default stdout guards binary", output: "", want: os.Stdout, printable: true},
		{name: "dash is unguarded stdout", output: "-", want: os.Stdout},
		{name: "dev stdout", output: "/dev/stdout", want: os.Stdout},
		{name: "dev stderr", output: "/dev/stderr", want: os.Stderr},
		{name: "dev null discards", output: "/dev/null", want: io.Discard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			*flagOutput = tt.output
			w, printable := openOutput()
			require.NoError(t, w.Close())
			assert.Equal(t, tt.printable, printable)
			nc, ok := w.(nopCloser)
			require.True(t, ok, "standard streams must not be closeable")
			assert.Equal(t, tt.want, nc.Writer)
		})
	}

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "body.bin")
		*flagOutput = path
		w, printable := openOutput()
		assert.False(t, printable, "file output never guards binary")
		_, err := w.Write([]byte{0xff, 0x00, 0x01})
		require.NoError(t, err)
		require.NoError(t, w.Close())
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xff, 0x00, 0x01}, got)
	})
}

func TestWriteResponseHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("Content-Type", "text/plain")
	h.Set("Server", "unit")
	resp := &http.Response{
		Status:     "301 Moved Permanently",
		StatusCode: 301,
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     h,
	}

	var buf bytes.Buffer
	writeResponseHeaders(&buf, resp)
	assert.Equal(t,
		"HTTP/1.1 301 Moved Permanently\r\n"+
			"Content-Type: text/plain\r\n"+
			"Server: unit\r\n"+
			"\r\n",
		buf.String())

	buf.Reset()
	resp.ProtoMajor, resp.ProtoMinor = 2, 0
	resp.Status = "200 OK"
	writeResponseHeaders(&buf, resp)
	assert.True(t, strings.HasPrefix(buf.String(), "HTTP/2 200 OK\r\n"))
}
