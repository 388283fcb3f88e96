// Package sax implements a streaming, SAX-style JSON scanner that walks a
// response body byte by byte without ever materializing it into a document
// tree, tracking a running "/"-delimited key path and recording the value
// of any property whose key path matches a redpath.
//
// The scanner is fed incrementally via Write, mirroring the original
// parser's incremental write(data, size) interface: a body may be split
// across any number of Write calls, and the scanner resumes mid-token across
// calls. rfclient.Walk hands it the whole buffered response body in a single
// Write.
package sax

import (
	"strconv"
	"strings"

	"github.com/sabouaram/redpath/internal/redpath"
)

// MatchedProperty is one property whose key path matched the target
// redpath's head component followed by "/@odata.id".
type MatchedProperty struct {
	KeyPath string
	Value   string
}

type frame struct {
	isObject bool
	resume   state
}

type state int

const (
	stValue state = iota
	stObjKeyOrEnd
	stObjColon
	stObjCommaOrEnd
	stArrValOrEnd
	stArrCommaOrEnd
	stString
	stStringEsc
	stStringUnicode
	stNumber
	stLiteral
	stDone
)

// Matcher is the streaming matcher for a single target redpath. The match
// rule is intentionally shallow: it compares the running current-key string
// against just the redpath's head component plus "/@odata.id" — it does not
// verify the rest of the path against nested containers, so a document with
// the same key name appearing at more than one place in the tree can
// produce a spurious match. This mirrors the original matcher and is not
// fixed here.
type Matcher struct {
	head string

	stack []frame
	st    state

	currentKey    string
	value         strings.Builder
	inString      bool
	stringIsKey   bool
	escapeUnicode strings.Builder

	numBuf strings.Builder

	litWant string
	litGot  strings.Builder

	matches []MatchedProperty

	done bool
}

// New creates a Matcher for the given target path. Only the path's head
// component is used by the match rule (see Matcher doc comment).
func New(path redpath.Path) *Matcher {
	head := ""
	if h, ok := path.Head(); ok {
		head = h.Key
	}

	return &Matcher{
		head: head,
		st:   stValue,
	}
}

// Matches returns every property recorded so far.
func (m *Matcher) Matches() []MatchedProperty {
	return m.matches
}

// Write feeds the next chunk of the response body to the scanner. It
// returns the number of bytes consumed (always len(p) unless the document
// is already complete) and an error if the bytes are not valid JSON
// continuing the current state.
func (m *Matcher) Write(p []byte) (int, error) {
	for i := 0; i < len(p); i++ {
		if m.done {
			return i, ErrExtraData.Error(nil)
		}

		c := p[i]

		if err := m.step(c); err != nil {
			return i, err
		}
	}

	return len(p), nil
}

// Finish signals end of input. It reports an error if the document ended
// mid-token or with unclosed containers. A stream-truncated body is not
// itself treated as a connection failure by the caller (see rfconn); it is
// surfaced here so the caller can decide.
func (m *Matcher) Finish() error {
	if !m.done {
		return ErrTruncated.Error(nil)
	}

	return nil
}

func (m *Matcher) step(c byte) error {
	switch m.st {
	case stString, stStringEsc, stStringUnicode:
		return m.stepString(c)
	case stNumber:
		return m.stepNumber(c)
	case stLiteral:
		return m.stepLiteral(c)
	}

	if isSpace(c) {
		return nil
	}

	switch m.st {
	case stValue:
		return m.stepValueStart(c)
	case stObjKeyOrEnd:
		if c == '}' {
			return m.popContainer()
		}
		if c == '"' {
			m.beginString(true)
			return nil
		}
		return ErrUnexpectedToken.Error(nil)
	case stObjColon:
		if c == ':' {
			m.st = stValue
			return nil
		}
		return ErrUnexpectedToken.Error(nil)
	case stObjCommaOrEnd:
		if c == ',' {
			m.st = stObjKeyOrEnd
			return nil
		}
		if c == '}' {
			return m.popContainer()
		}
		return ErrUnexpectedToken.Error(nil)
	case stArrValOrEnd:
		if c == ']' {
			return m.popContainer()
		}
		return m.stepValueStart(c)
	case stArrCommaOrEnd:
		if c == ',' {
			m.st = stArrValOrEnd
			return nil
		}
		if c == ']' {
			return m.popContainer()
		}
		return ErrUnexpectedToken.Error(nil)
	}

	return ErrUnexpectedToken.Error(nil)
}

func (m *Matcher) stepValueStart(c byte) error {
	switch {
	case c == '"':
		m.beginString(false)
		return nil
	case c == '{':
		m.pushContainer(true)
		return nil
	case c == '[':
		m.pushContainer(false)
		return nil
	case c == 't':
		m.beginLiteral("true")
		return nil
	case c == 'f':
		m.beginLiteral("false")
		return nil
	case c == 'n':
		m.beginLiteral("null")
		return nil
	case c == '-' || (c >= '0' && c <= '9'):
		m.numBuf.Reset()
		m.numBuf.WriteByte(c)
		m.st = stNumber
		return nil
	}

	return ErrUnexpectedToken.Error(nil)
}

func (m *Matcher) beginString(isKey bool) {
	m.inString = true
	m.stringIsKey = isKey
	m.value.Reset()
	m.st = stString
}

func (m *Matcher) beginLiteral(want string) {
	m.litWant = want
	m.litGot.Reset()
	m.st = stLiteral
	// the first character was already consumed by the caller's switch; feed it.
	_ = m.stepLiteral(want[0])
}

func (m *Matcher) stepLiteral(c byte) error {
	m.litGot.WriteByte(c)
	got := m.litGot.String()

	if len(got) > len(m.litWant) || m.litWant[:len(got)] != got {
		return ErrUnexpectedToken.Error(nil)
	}

	if got == m.litWant {
		switch m.litWant {
		case "true":
			m.onBool(true)
		case "false":
			m.onBool(false)
		case "null":
			m.onNull()
		}
		return m.afterValue()
	}

	return nil
}

func (m *Matcher) stepNumber(c byte) error {
	if c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E' || (c >= '0' && c <= '9') {
		m.numBuf.WriteByte(c)
		return nil
	}

	if err := m.completeNumber(); err != nil {
		return err
	}

	return m.step(c)
}

func (m *Matcher) completeNumber() error {
	s := m.numBuf.String()

	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ErrInvalidNumber.Error(nil)
		}
		m.onDouble(f)
	} else if strings.HasPrefix(s, "-") {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return ErrInvalidNumber.Error(nil)
		}
		m.onInt64(n)
	} else {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return ErrInvalidNumber.Error(nil)
		}
		m.onUint64(n)
	}

	return m.afterValue()
}

func (m *Matcher) stepString(c byte) error {
	switch m.st {
	case stStringEsc:
		switch c {
		case '"', '\\', '/':
			m.value.WriteByte(c)
		case 'b':
			m.value.WriteByte('\b')
		case 'f':
			m.value.WriteByte('\f')
		case 'n':
			m.value.WriteByte('\n')
		case 'r':
			m.value.WriteByte('\r')
		case 't':
			m.value.WriteByte('\t')
		case 'u':
			m.escapeUnicode.Reset()
			m.st = stStringUnicode
			return nil
		default:
			return ErrInvalidEscape.Error(nil)
		}
		m.st = stString
		return nil

	case stStringUnicode:
		m.escapeUnicode.WriteByte(c)
		if m.escapeUnicode.Len() == 4 {
			n, err := strconv.ParseUint(m.escapeUnicode.String(), 16, 32)
			if err != nil {
				return ErrInvalidEscape.Error(nil)
			}
			m.value.WriteRune(rune(n))
			m.st = stString
		}
		return nil
	}

	switch c {
	case '"':
		return m.endString()
	case '\\':
		m.st = stStringEsc
		return nil
	default:
		m.value.WriteByte(c)
		return nil
	}
}

func (m *Matcher) endString() error {
	s := m.value.String()

	if m.stringIsKey {
		m.onKey(s)
		m.st = stObjColon
		return nil
	}

	m.onString(s)
	return m.afterValue()
}

func (m *Matcher) pushContainer(isObject bool) {
	var resume state
	if len(m.stack) == 0 {
		resume = stDone
	} else if m.inArrayTop() {
		resume = stArrCommaOrEnd
	} else {
		resume = stObjCommaOrEnd
	}

	m.stack = append(m.stack, frame{isObject: isObject, resume: resume})

	if isObject {
		m.st = stObjKeyOrEnd
	} else {
		m.st = stArrValOrEnd
	}
}

func (m *Matcher) inArrayTop() bool {
	if len(m.stack) == 0 {
		return false
	}
	return !m.stack[len(m.stack)-1].isObject
}

func (m *Matcher) popContainer() error {
	if len(m.stack) == 0 {
		return ErrUnexpectedToken.Error(nil)
	}

	top := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]

	if top.isObject {
		m.onObjectEnd()
	}

	if len(m.stack) == 0 {
		m.done = true
		m.st = stDone
		return nil
	}

	m.st = top.resume
	return nil
}

func (m *Matcher) afterValue() error {
	if len(m.stack) == 0 {
		m.done = true
		m.st = stDone
		return nil
	}

	if m.inArrayTop() {
		m.st = stArrCommaOrEnd
	} else {
		m.st = stObjCommaOrEnd
	}

	return nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
