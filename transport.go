package main

import (
	"cmp"
	"context"
	"crypto/tls"
	"net/http"
	"sync"
	"time"

	"github.com/quic-go/quic-go"
	"github.com/quic-go/quic-go/http3"

	"github.com/gurl-http/gurl/internal/netx"
)

func tlsConfig() *tls.Config {
	if !*flagInsecure {
		return nil
	}
	return &tls.Config{InsecureSkipVerify: true}
}

func dialTimeout() time.Duration {
	if *flagConnectTimeout > 0 {
		return time.Duration(*flagConnectTimeout * float64(time.Second))
	}
	return 30 * time.Second
}

func httpTransport() *http.Transport {
	protocols := new(http.Protocols)
	protocols.SetHTTP1(*flagHTTP1)
	protocols.SetHTTP2(*flagHTTP2)
	protocols.SetUnencryptedHTTP2(*flagHTTP2Prior)

	dialer := &netx.Dialer{
		Timeout:   dialTimeout(),
		KeepAlive: 30 * time.Second,
	}
	if wireTrace() {
		dialer.Trace = tracef
	}

	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSClientConfig:       tlsConfig(),
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   1,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		Protocols:             protocols,
		DisableCompression:    true,
	}
}

func http3Transport() *http3.Transport {
	return &http3.Transport{
		TLSClientConfig: tlsConfig(),
		QUICConfig: &quic.Config{
			HandshakeIdleTimeout: dialTimeout(),
			MaxIdleTimeout:       30 * time.Second,
		},
		DisableCompression: true,
	}
}

// Transport races the TCP-based transport against QUIC for https URLs and
// returns whichever answers first, canceling the loser. Plain http never
// goes over QUIC.
type Transport struct {
	tcp  http.RoundTripper
	quic http.RoundTripper
}

func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.URL.Scheme == "http" {
		return t.tcp.RoundTrip(r)
	}

	ctx := r.Context()
	ctx1, cancel1 := context.WithCancel(ctx)
	ctx2, cancel2 := context.WithCancel(ctx)

	type result struct {
		r   *http.Response
		err error
	}

	var results [2]result
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		resp, err := t.tcp.RoundTrip(r.WithContext(ctx1))
		results[0] = result{resp, err}
		if err == nil {
			cancel2()
		}
	}()

	go func() {
		defer wg.Done()
		resp, err := t.quic.RoundTrip(r.WithContext(ctx2))
		results[1] = result{resp, err}
		if err == nil {
			cancel1()
		}
	}()

	wg.Wait()

	if results[0].r != nil {
		// Both legs can win their dial; only one response is returned.
		if results[1].r != nil {
			results[1].r.Body.Close()
		}
		return results[0].r, nil
	}
	if results[1].r != nil {
		return results[1].r, nil
	}
	return nil, cmp.Or(results[0].err, results[1].err)
}

func bothTransport() *Transport {
	return &Transport{
		tcp:  httpTransport(),
		quic: http3Transport(),
	}
}
