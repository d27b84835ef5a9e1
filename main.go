package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/gurl-http/gurl/internal/httpx"
	"github.com/gurl-http/gurl/internal/log"
)

func main() {
	os.Exit(run())
}

func run() int {
	parseArgs()

	if *flagHelp {
		program.SetOutput(os.Stdout)
		program.Usage()
		return 0
	}

	log.SetVerbosity(*flagVerbose, *flagSilent)

	urls := program.Args()
	if len(urls) == 0 {
		fmt.Fprintf(os.Stderr, "%s: try %s --help\n", program.Name(), program.Name())
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if *flagMaxTime > 0 {
		var tcancel context.CancelFunc
		ctx, tcancel = context.WithTimeout(ctx, time.Duration(*flagMaxTime*float64(time.Second)))
		defer tcancel()
	}

	var tr http.RoundTripper
	switch {
	case *flagHTTP3Only:
		tr = http3Transport()
	case *flagHTTP3:
		tr = bothTransport()
	default:
		tr = httpTransport()
	}

	headers := make(http.Header)
	headers.Set("Accept", "*/*")
	headers.Set("User-Agent", fmt.Sprintf("%s/1.0", program.Name()))

	if *flagCompressed {
		headers.Set("Accept-Encoding", "gzip, zstd, br")
	}
	if *flagUserAgent != "" {
		headers.Set("User-Agent", *flagUserAgent)
	}
	if *flagReferer != "" {
		headers.Set("Referer", *flagReferer)
	}

	data := *flagData
	if *flagJSON != "" {
		if data != "" {
			return usage("--json cannot be combined with --data")
		}
		data = *flagJSON
		headers.Set("Content-Type", "application/json")
		headers.Set("Accept", "application/json")
	}

	if *flagUser != "" {
		username, password, found := strings.Cut(*flagUser, ":")
		if !found {
			return usage("--user must be <user:password>")
		}
		headers.Set(
			"Authorization",
			"Basic "+base64.StdEncoding.EncodeToString([]byte(username+":"+password)),
		)
	}

	for _, header := range *flagHeader {
		h, err := httpx.ParseHeader(header)
		if err != nil {
			return usage(err.Error())
		}
		headers.Set(h.Name, h.Value)
	}

	method := httpx.ParseMethod(*flagMethod)
	if data != "" {
		if *flagMethod == "" {
			method = httpx.MethodPost
		}
		if headers.Get("Content-Type") == "" {
			headers.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if *flagHead {
		method = httpx.MethodHead
	}

	cookies, err := newCookieState(*flagCookieJar != "")
	if err != nil {
		return fail(err)
	}
	if err := cookies.load(*flagCookie); err != nil {
		return fail(err)
	}

	out, onlyPrintable := openOutput()
	defer out.Close()

	log.Debug().
		Str("method", method.String()).
		Strs("urls", urls).
		Bool("follow", *flagLocation).
		Int("verbosity", *flagVerbose).
		Msg("parsed arguments")

	exit := 0
	for _, target := range urls {
		u, err := parseURL(target)
		if err != nil {
			return usage(err.Error())
		}
		if err := fetch(ctx, tr, u, method, headers, data, cookies, out, onlyPrintable); err != nil {
			exit = fail(err)
		}
	}

	if err := cookies.save(*flagCookieJar); err != nil {
		exit = fail(err)
	}
	return exit
}

// fetch performs one request and, with -L, walks its redirect chain,
// reprinting each hop's headers along the way. The transport owns every
// protocol concern; this loop only decides the next hop.
func fetch(
	ctx context.Context,
	tr http.RoundTripper,
	u *urlpkg.URL,
	method httpx.Method,
	headers http.Header,
	data string,
	cookies *cookieState,
	out io.Writer,
	onlyPrintable bool,
) error {
	var body io.ReadCloser
	var contentLength int64
	var stringReader *strings.Reader
	if data != "" {
		stringReader = strings.NewReader(data)
		body = io.NopCloser(stringReader)
		contentLength = int64(len(data))
	}

	for redirects := 0; ; redirects++ {
		if stringReader != nil {
			stringReader.Seek(0, io.SeekStart)
		}

		cookies.apply(headers, u)

		req := &http.Request{
			Method:        method.String(),
			URL:           u,
			ProtoMajor:    1,
			ProtoMinor:    1,
			Header:        headers,
			Body:          body,
			Host:          u.Host,
			ContentLength: contentLength,
		}

		if *flagHTTP3Only {
			req.ProtoMajor = 3
			req.ProtoMinor = 0
		} else if *flagHTTP2Prior {
			req.ProtoMajor = 2
			req.ProtoMinor = 0
		}

		dumpRequest(req)

		resp, err := tr.RoundTrip(req.WithContext(ctx))
		if err != nil {
			return errors.Wrapf(err, "%s %s", method, u)
		}

		dumpResponseHeaders(resp)
		cookies.store(u, resp)

		if *flagLocation && isRedirect(resp.StatusCode) {
			if redirects >= *flagMaxRedirs {
				resp.Body.Close()
				return errors.Errorf("maximum (%d) redirects followed", *flagMaxRedirs)
			}

			if *flagInclude {
				writeResponseHeaders(out, resp)
			}

			next, err := resolveLocation(u, resp.Header.Get("Location"))
			if err != nil {
				resp.Body.Close()
				return err
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			if wireTrace() {
				tracef("* Redirecting to %q\n", next.String())
			}
			log.Info().
				Int("status", resp.StatusCode).
				Str("location", next.String()).
				Msg("following redirect")

			nextMethod, dropBody := redirectMethod(resp.StatusCode, method)
			if dropBody {
				body = nil
				stringReader = nil
				contentLength = 0
			}
			method = nextMethod
			u = next
			continue
		}

		return writeResult(out, resp, method, onlyPrintable)
	}
}

func writeResult(out io.Writer, resp *http.Response, method httpx.Method, onlyPrintable bool) error {
	defer resp.Body.Close()

	if *flagFail && resp.StatusCode >= 400 {
		io.Copy(io.Discard, resp.Body)
		return errors.Errorf("the requested URL returned error: %d", resp.StatusCode)
	}

	if *flagInclude || *flagHead {
		writeResponseHeaders(out, resp)
	}

	if method == httpx.MethodHead {
		return nil
	}

	if resp.StatusCode >= 400 && !*flagSilent {
		// Body is still printed, only the status is flagged.
		log.Error().Int("status", resp.StatusCode).Msg("request failed")
	}

	body, done, err := decodeBody(resp)
	if err != nil {
		return err
	}
	defer done()

	var buf [32 * 1024]byte
	_, err = copyBuffer(out, body, buf[:], onlyPrintable)
	return err
}

func usage(msg string) int {
	fmt.Fprintf(os.Stderr, "%s: %s\n", program.Name(), msg)
	return 2
}

func fail(err error) int {
	if !*flagSilent {
		fmt.Fprintf(os.Stderr, "%s: %v\n", program.Name(), err)
	}
	return 1
}
