package redpath

import "github.com/sabouaram/redpath/errors"

const (
	ErrorEmptyPath errors.CodeError = iota + errors.MinPkgRedpath
	ErrorEmptyComponent
	ErrorInvalidKeyName
	ErrorInvalidFilter
	ErrorUnexpectedEnd
	ErrorTrailingSlash
)

func init() {
	errors.RegisterIdFctMessage(ErrorEmptyPath, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case ErrorEmptyPath:
		return "redpath is empty"
	case ErrorEmptyComponent:
		return "redpath component is empty"
	case ErrorInvalidKeyName:
		return "key name must start with an uppercase letter followed by letters or digits"
	case ErrorInvalidFilter:
		return "only the '*' filter is supported inside a key filter"
	case ErrorUnexpectedEnd:
		return "unexpected end of redpath"
	case ErrorTrailingSlash:
		return "redpath has a trailing or duplicated '/'"
	}

	return ""
}
