// Package hub is a minimal client for SignalR hubs speaking the JSON hub
// protocol over WebSockets.
//
// A connection starts with a negotiate request, then a WebSocket upgrade
// and a handshake. Every message on the wire is a JSON record terminated by
// the 0x1e record separator. After an unexpected drop the client reconnects
// with exponential backoff until the configured attempts are exhausted.
package hub
