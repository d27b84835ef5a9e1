package main

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
)

var stderr = bufio.NewWriter(os.Stderr)

// wireTrace reports whether the curl-style "> ", "< " and "* " lines are on.
// The first -v enables them; further -v's only raise the log level.
func wireTrace() bool {
	return *flagVerbose > 0
}

func tracef(format string, args ...any) {
	fmt.Fprintf(stderr, format, args...)
	stderr.WriteByte('\n')
	stderr.Flush()
}

func dumpRequest(r *http.Request) {
	if !wireTrace() {
		return
	}
	if r.ProtoMajor == 1 {
		fmt.Fprintf(stderr, "> %s %s HTTP/%d.%d\r\n", r.Method, r.URL.RequestURI(), r.ProtoMajor, r.ProtoMinor)
	} else {
		fmt.Fprintf(stderr, "> %s %s HTTP/%d\r\n", r.Method, r.URL.RequestURI(), r.ProtoMajor)
	}
	stderr.WriteString("> Host: ")
	stderr.WriteString(r.Host)
	stderr.WriteString("\r\n")

	if r.ContentLength > 0 {
		fmt.Fprintf(stderr, "> Content-Length: %d\r\n", r.ContentLength)
	}

	for _, kvs := range sortHeaders(r.Header) {
		for _, v := range kvs.values {
			stderr.WriteString("> ")
			stderr.WriteString(kvs.key)
			stderr.WriteString(": ")
			stderr.WriteString(v)
			stderr.WriteString("\r\n")
		}
	}
	stderr.WriteString("> \r\n")
	if r.ContentLength > 0 {
		fmt.Fprintf(stderr, "* upload completely sent off: %d bytes\n", r.ContentLength)
	} else {
		stderr.WriteString("* Request completely sent off\n")
	}
	stderr.Flush()
}

func dumpResponseHeaders(r *http.Response) {
	if !wireTrace() {
		return
	}
	if r.ProtoMajor == 1 {
		fmt.Fprintf(stderr, "< HTTP/%d.%d %s\r\n", r.ProtoMajor, r.ProtoMinor, r.Status)
	} else {
		fmt.Fprintf(stderr, "< HTTP/%d %s\r\n", r.ProtoMajor, r.Status)
	}
	for _, kvs := range sortHeaders(r.Header) {
		for _, v := range kvs.values {
			stderr.WriteString("< ")
			stderr.WriteString(kvs.key)
			stderr.WriteString(": ")
			stderr.WriteString(v)
			stderr.WriteString("\r\n")
		}
	}
	stderr.WriteString("< \r\n")
	stderr.Flush()
}

// writeResponseHeaders prints the status line and headers into the output
// stream, the -i/-I rendition. Printed once per hop when following
// redirects with -i, matching curl.
func writeResponseHeaders(w io.Writer, r *http.Response) {
	if r.ProtoMajor == 1 {
		fmt.Fprintf(w, "HTTP/%d.%d %s\r\n", r.ProtoMajor, r.ProtoMinor, r.Status)
	} else {
		fmt.Fprintf(w, "HTTP/%d %s\r\n", r.ProtoMajor, r.Status)
	}
	for _, kvs := range sortHeaders(r.Header) {
		for _, v := range kvs.values {
			fmt.Fprintf(w, "%s: %s\r\n", kvs.key, v)
		}
	}
	io.WriteString(w, "\r\n")
}
