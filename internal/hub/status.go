package hub

// State is the connection state of a Client.
type State int

// Connection states.
const (
	Disconnected State = iota
	Connecting
	Connected
	Reconnecting
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	case Reconnecting:
		return "Reconnecting"
	default:
		return "Disconnected"
	}
}

// Status lines shown to the user.
const (
	StatusConnected    = "Connected"
	StatusDisconnected = "Disconnected"
	StatusMessageSent  = "Message sent!"
)

// ConnectionFailed is the status line for a failed connect.
func ConnectionFailed(err error) string {
	return "Connection failed: " + err.Error()
}

// SendFailed is the status line for a failed invocation.
func SendFailed(err error) string {
	return "Failed to send message: " + err.Error()
}
