// Package netx wraps the dial path so verbose runs can narrate name
// resolution and connection setup the way curl does, without touching how
// net/http actually manages connections.
package netx

import (
	"context"
	"net"
	"net/netip"
	"time"

	"github.com/pkg/errors"
)

func Lookup(ctx context.Context, host string) ([]netip.Addr, error) {
	return net.DefaultResolver.LookupNetIP(ctx, "ip", host)
}

// TraceFunc receives curl-style "* " chatter. A nil TraceFunc disables the
// extra resolver round and makes the dialer equivalent to a plain net.Dialer.
type TraceFunc func(format string, args ...any)

type Dialer struct {
	Timeout   time.Duration
	KeepAlive time.Duration
	Trace     TraceFunc
}

func (d *Dialer) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	nd := &net.Dialer{
		Timeout:   d.Timeout,
		KeepAlive: d.KeepAlive,
	}
	if d.Trace == nil {
		return nd.DialContext(ctx, network, addr)
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid address %q", addr)
	}

	if _, perr := netip.ParseAddr(host); perr != nil {
		if addrs, lerr := Lookup(ctx, host); lerr == nil {
			for _, a := range addrs {
				d.Trace("* Host %s:%s was resolved to %s", host, port, a)
			}
		}
	}

	d.Trace("* Trying %s...", addr)
	conn, err := nd.DialContext(ctx, network, addr)
	if err != nil {
		d.Trace("* Failed to connect to %s: %v", host, err)
		return nil, err
	}
	d.Trace("* Connected to %s (%s) port %s", host, conn.RemoteAddr(), port)
	return conn, nil
}
