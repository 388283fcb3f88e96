package rfclient

import "github.com/sabouaram/redpath/errors"

const (
	ErrorBadURI errors.CodeError = iota + errors.MinPkgRfClient
	ErrorRequestBuild
)

func init() {
	errors.RegisterIdFctMessage(ErrorBadURI, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case ErrorBadURI:
		return "destination uri could not be parsed"
	case ErrorRequestBuild:
		return "error building http request"
	}

	return ""
}
