package sax

import (
	"strconv"
	"strings"
)

// onKey records a completed object key onto the running current-key
// pointer. Keys are appended with a trailing "/", mirroring the original
// parser's bookkeeping; array elements never contribute a segment (there
// are no array indices in the key path).
func (m *Matcher) onKey(key string) {
	m.currentKey += key + "/"
}

// onString handles a completed string value: checks it against the match
// rule, records it if it matches, then pops one key segment.
func (m *Matcher) onString(s string) {
	m.checkMatch(s)
	m.popValue()
}

func (m *Matcher) onBool(b bool) {
	if b {
		m.checkMatch("true")
	} else {
		m.checkMatch("false")
	}
	m.popValue()
}

func (m *Matcher) onInt64(n int64) {
	m.checkMatch(strconv.FormatInt(n, 10))
	m.popValue()
}

func (m *Matcher) onUint64(n uint64) {
	m.checkMatch(strconv.FormatUint(n, 10))
	m.popValue()
}

func (m *Matcher) onDouble(f float64) {
	m.checkMatch(strconv.FormatFloat(f, 'g', -1, 64))
	m.popValue()
}

func (m *Matcher) onNull() {
	m.checkMatch("")
	m.popValue()
}

// onObjectEnd pops one key segment, same as completing a scalar value: the
// object just closed was itself the value of its enclosing key.
func (m *Matcher) onObjectEnd() {
	m.popValue()
}

// checkMatch compares the current key pointer against the target's head
// component plus "/@odata.id" — the shallow, head-only match rule.
func (m *Matcher) checkMatch(value string) {
	if m.head == "" {
		return
	}

	want := m.head + "/@odata.id"
	if m.currentKey == want+"/" {
		m.matches = append(m.matches, MatchedProperty{KeyPath: want, Value: value})
	}
}

// popValue trims one trailing key segment from the current-key pointer;
// trimming the outermost segment leaves it empty. If there is no '/' at all
// the call is a no-op, matching the original implementation's behavior for
// values seen before any key was pushed.
func (m *Matcher) popValue() {
	if idx := strings.LastIndexByte(m.currentKey, '/'); idx >= 0 {
		m.currentKey = m.currentKey[:idx]
	} else {
		return
	}

	if idx := strings.LastIndexByte(m.currentKey, '/'); idx >= 0 {
		m.currentKey = m.currentKey[:idx+1]
	} else {
		m.currentKey = ""
	}
}
