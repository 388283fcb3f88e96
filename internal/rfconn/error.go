package rfconn

import "github.com/sabouaram/redpath/errors"

const (
	ErrorResolve errors.CodeError = iota + errors.MinPkgRfConn
	ErrorConnect
	ErrorTLSHandshake
	ErrorWrite
	ErrorRead
	ErrorTimeout
	ErrorClosed
	ErrorBodyTooLarge
)

func init() {
	errors.RegisterIdFctMessage(ErrorResolve, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case ErrorResolve:
		return "error resolving destination host"
	case ErrorConnect:
		return "error establishing tcp connection"
	case ErrorTLSHandshake:
		return "error performing tls handshake"
	case ErrorWrite:
		return "error writing request to connection"
	case ErrorRead:
		return "error reading response from connection"
	case ErrorTimeout:
		return "connection operation timed out"
	case ErrorClosed:
		return "connection is closed"
	case ErrorBodyTooLarge:
		return "response body exceeds the read limit"
	}

	return ""
}
