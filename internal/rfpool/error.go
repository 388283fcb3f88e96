package rfpool

import "github.com/sabouaram/redpath/errors"

const (
	ErrorQueueFull errors.CodeError = iota + errors.MinPkgRfPool
	ErrorCancelled
	ErrorClosed
)

func init() {
	errors.RegisterIdFctMessage(ErrorQueueFull, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case ErrorQueueFull:
		return "pool overflow queue is full, request dropped"
	case ErrorCancelled:
		return "request cancelled before a connection became available"
	case ErrorClosed:
		return "pool is closed"
	}

	return ""
}
