package transport

import (
	"fmt"
	"net/url"
	"strings"
)

// endpoint is a parsed tcp:// address. Bind is true for tcp://*:port
// (listen on all interfaces, the ZeroMQ-style "server" side of a socket
// pair) and false for tcp://host:port (dial out, the "client" side).
type endpoint struct {
	Bind     bool
	ListenOn string // host:port suitable for net.Listen, only set when Bind
	DialURL  string // ws://host:port suitable for websocket.Dial, only set when !Bind
}

// parseAddress parses spec.md §4.F addresses: tcp://*:port to bind,
// tcp://host:port to connect.
func parseAddress(addr string) (endpoint, error) {
	u, err := url.Parse(addr)
	if err != nil {
		return endpoint{}, fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
	if u.Scheme != "tcp" {
		return endpoint{}, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	host := u.Hostname()
	port := u.Port()
	if host == "" || port == "" {
		return endpoint{}, fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}

	if host == "*" {
		return endpoint{Bind: true, ListenOn: ":" + port}, nil
	}
	return endpoint{Bind: false, DialURL: "ws://" + host + ":" + port}, nil
}

// wsPath is the single HTTP path every bound endpoint serves its upgrader
// on; traeger addresses carry no path component of their own.
const wsPath = "/"

func dialURLWithPath(base string) string {
	return strings.TrimRight(base, "/") + wsPath
}
