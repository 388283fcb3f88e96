/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package duration

import (
	"strconv"
	"strings"
	"time"
)

// parseString parses the "NdNhNmNs"-style notation String produces. The "Nd"
// prefix is not a unit time.ParseDuration understands, so a leading day
// count is split off and converted to hours before delegating the rest to
// time.ParseDuration.
func parseString(s string) (Duration, error) {
	s = strings.Replace(s, "\"", "", -1)
	s = strings.Replace(s, "'", "", -1)

	var days int64

	if i := strings.IndexByte(s, 'd'); i >= 0 {
		n, e := strconv.ParseInt(s[:i], 10, 64)
		if e != nil {
			return 0, e
		}
		days = n
		s = s[i+1:]
	}

	var rest time.Duration
	if s != "" {
		v, e := time.ParseDuration(s)
		if e != nil {
			return 0, e
		}
		rest = v
	}

	return Duration(time.Duration(days)*24*time.Hour + rest), nil
}

func (d *Duration) parseString(s string) error {
	if v, e := parseString(s); e != nil {
		return e
	} else {
		*d = v
		return nil
	}
}

func (d *Duration) unmarshall(val []byte) error {
	if tmp, err := ParseByte(val); err != nil {
		return err
	} else {
		*d = tmp
		return nil
	}
}
