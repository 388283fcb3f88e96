package sax

import "github.com/sabouaram/redpath/errors"

const (
	ErrUnexpectedToken errors.CodeError = iota + errors.MinPkgSax
	ErrInvalidEscape
	ErrInvalidNumber
	ErrTruncated
	ErrExtraData
)

func init() {
	errors.RegisterIdFctMessage(ErrUnexpectedToken, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case ErrUnexpectedToken:
		return "unexpected token in json body"
	case ErrInvalidEscape:
		return "invalid string escape sequence"
	case ErrInvalidNumber:
		return "invalid json number literal"
	case ErrTruncated:
		return "json body ended before the document was complete"
	case ErrExtraData:
		return "bytes remaining after the json document ended"
	}

	return ""
}
