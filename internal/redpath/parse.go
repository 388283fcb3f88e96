package redpath

import (
	liberr "github.com/sabouaram/redpath/errors"
)

// Parse parses a redpath string such as "Chassis[*]/Thermal/Temperatures[*]"
// into its AST. On failure it reports the unconsumed tail of the input, in
// the same spirit as the original parser's "Parsing failed" diagnostic.
func Parse(s string) (Path, liberr.Error) {
	if len(s) == 0 {
		return Path{}, ErrorEmptyPath.Error(nil)
	}

	var (
		comps []Component
		rest  = s
		first = true
	)

	for {
		if len(rest) == 0 {
			if first {
				return Path{}, ErrorEmptyComponent.Error(nil)
			}
			return Path{}, ErrorTrailingSlash.Error(nil)
		}

		comp, tail, err := parseComponent(rest)
		if err != nil {
			return Path{}, err
		}

		comps = append(comps, comp)
		first = false

		if len(tail) == 0 {
			break
		}

		if tail[0] != '/' {
			return Path{}, ErrorUnexpectedEnd.Error(nil)
		}

		rest = tail[1:]
	}

	return Path{Components: comps}, nil
}

// parseComponent consumes one path_component (key_name or key_filter) from
// the front of s and returns it along with the unconsumed remainder.
func parseComponent(s string) (Component, string, liberr.Error) {
	name, rest, err := parseKeyName(s)
	if err != nil {
		return Component{}, s, err
	}

	if len(rest) == 0 || rest[0] != '[' {
		return Component{Key: name}, rest, nil
	}

	// key_filter: "[" "*" "]"
	if len(rest) < 3 || rest[1] != '*' || rest[2] != ']' {
		return Component{}, s, ErrorInvalidFilter.Error(nil)
	}

	return Component{Key: name, Filter: "*"}, rest[3:], nil
}

// parseKeyName consumes one key_name: an uppercase ASCII letter followed by
// any run of ASCII letters or digits.
func parseKeyName(s string) (string, string, liberr.Error) {
	if len(s) == 0 || !isUpper(s[0]) {
		return "", s, ErrorInvalidKeyName.Error(nil)
	}

	i := 1
	for i < len(s) && isAlnum(s[i]) {
		i++
	}

	return s[:i], s[i:], nil
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func isAlnum(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}
