package rfconfig

import "github.com/sabouaram/redpath/errors"

const (
	ErrorValidate errors.CodeError = iota + errors.MinPkgRfConfig
	ErrorMissingHost
)

func init() {
	errors.RegisterIdFctMessage(ErrorValidate, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case ErrorValidate:
		return "connection configuration failed validation"
	case ErrorMissingHost:
		return "host is required"
	}

	return ""
}
