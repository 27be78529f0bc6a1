package hub

import "errors"

var (
	// ErrInvalidURL is returned for hub URLs that are not http(s) or ws(s).
	ErrInvalidURL = errors.New("invalid hub url")

	// ErrNegotiate is returned when the negotiate request fails.
	ErrNegotiate = errors.New("negotiation failed")

	// ErrNoWebSockets is returned when the server does not offer WebSockets.
	ErrNoWebSockets = errors.New("server does not support WebSockets")

	// ErrTooManyRedirects is returned when negotiate redirects loop.
	ErrTooManyRedirects = errors.New("too many negotiate redirects")

	// ErrHandshake is returned when the server rejects the handshake.
	ErrHandshake = errors.New("handshake failed")

	// ErrNotConnected is returned by Invoke and Send while disconnected.
	ErrNotConnected = errors.New("not connected")

	// ErrAlreadyConnected is returned by Connect on a live client.
	ErrAlreadyConnected = errors.New("already connected")

	// ErrInvocation wraps the error reported by a hub method.
	ErrInvocation = errors.New("invocation failed")

	// ErrConnectionLost fails invocations pending when the connection drops.
	ErrConnectionLost = errors.New("connection lost")

	// ErrClosed fails invocations pending when the client is closed.
	ErrClosed = errors.New("client closed")

	// ErrReconnectFailed is returned once every reconnect attempt failed.
	ErrReconnectFailed = errors.New("reconnect failed")
)

// CloseError is reported when the server sends a close message.
type CloseError struct {
	Message        string
	AllowReconnect bool
}

func (e *CloseError) Error() string {
	if e.Message == "" {
		return "server closed the connection"
	}
	return "server closed the connection: " + e.Message
}
