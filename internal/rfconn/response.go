package rfconn

import "net/http"

// bodyReadLimit caps how much of a response body a connection will buffer,
// matching the original client's fixed read-body limit. A body larger than
// this fails the read: Do closes the connection and returns the bytes read
// up to the limit together with an ErrorRead error.
const bodyReadLimit = 128 * 1024

// staticBufferSize is the size of the single reusable read buffer each
// connection keeps for draining the socket.
const staticBufferSize = 4096

// Response is a plain value, not a *http.Response: a zero Response is a
// valid "nothing happened yet" value, matching the rule that a failed
// request produces a default-constructed response rather than a nil one.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
	KeepAlive  bool
}
