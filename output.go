package main

import (
	"io"
	"net/http"
	"os"
	"unicode/utf8"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}

// openOutput resolves -o. The second return enables the printable guard:
// only a bare default stdout refuses binary output, same as curl without -o.
func openOutput() (io.WriteCloser, bool) {
	switch *flagOutput {
	case "":
		return nopCloser{os.Stdout}, true
	case "-", "/dev/stdout":
		return nopCloser{os.Stdout}, false
	case "/dev/stderr":
		return nopCloser{os.Stderr}, false
	case "/dev/null":
		return nopCloser{io.Discard}, false
	}
	return must(os.Create(*flagOutput)), false
}

// decodeBody wraps the response body in a decoder when --compressed is on.
// The transport runs with DisableCompression so Content-Encoding arrives
// intact and the decode stays visible here.
func decodeBody(r *http.Response) (io.Reader, func(), error) {
	if !*flagCompressed {
		return r.Body, func() {}, nil
	}
	switch r.Header.Get("Content-Encoding") {
	case "gzip":
		zr, err := gzip.NewReader(r.Body)
		if err != nil {
			return nil, nil, errors.Wrap(err, "gzip")
		}
		return zr, func() { zr.Close() }, nil
	case "zstd":
		zr, err := zstd.NewReader(r.Body)
		if err != nil {
			return nil, nil, errors.Wrap(err, "zstd")
		}
		return zr, zr.Close, nil
	case "br":
		return brotli.NewReader(r.Body), func() {}, nil
	}
	return r.Body, func() {}, nil
}

func copyBuffer(dst io.Writer, src io.Reader, buf []byte, onlyPrintable bool) (written int64, err error) {
	for {
		nr, er := src.Read(buf)
		if nr > 0 {
			if onlyPrintable && !utf8.Valid(buf[0:nr]) {
				return written, errors.New("binary output can mess up your terminal, use --output to redirect")
			}
			nw, ew := dst.Write(buf[0:nr])
			if nw < 0 || nr < nw {
				nw = 0
				if ew == nil {
					ew = errors.New("invalid write result")
				}
			}
			written += int64(nw)
			if ew != nil {
				err = ew
				break
			}
			if nr != nw {
				err = io.ErrShortWrite
				break
			}
		}
		if er != nil {
			if er != io.EOF {
				err = er
			}
			break
		}
	}
	return written, err
}
