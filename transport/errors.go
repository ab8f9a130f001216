package transport

import "errors"

// Namespace prefixes every sentinel error this package returns.
const Namespace = "transport"

var (
	// ErrInvalidAddress is returned when an address does not parse as
	// tcp://host:port or tcp://*:port.
	ErrInvalidAddress = errors.New(Namespace + ": address must look like tcp://host:port or tcp://*:port")

	// ErrUnsupportedScheme is returned for any scheme other than tcp.
	ErrUnsupportedScheme = errors.New(Namespace + ": only the tcp scheme is supported")

	// ErrClosed is returned by operations attempted after Close.
	ErrClosed = errors.New(Namespace + ": endpoint is closed")

	// ErrMalformedFrame is returned when a decoded wire message does not
	// have the shape Request/Reply/Publish require.
	ErrMalformedFrame = errors.New(Namespace + ": malformed wire frame")
)
