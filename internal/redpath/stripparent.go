package redpath

// StripParent drops the head component of a path, returning what remains
// and true. If the path has nothing beyond its head, it returns the zero
// Path and false: there is no follow-up path to resolve, matching the
// original rule that a path with no trailing components strips to nothing.
//
//	StripParent(parse("Chassis[*]/Sensors")) == (parse("Sensors"), true)
func StripParent(p Path) (Path, bool) {
	if len(p.Components) <= 1 {
		return Path{}, false
	}

	return Path{Components: p.Components[1:]}, true
}

// ForMemberRefetch composes StripParent with the "Members" fan-out rule: a
// Redfish collection enumerates its items under a "Members" array, so once
// a wildcard component has resolved to a collection URI the continuation
// must walk "Members[*]/..." rather than the bare stripped path. Returns
// false when the path has nothing beyond its head (see StripParent) — there
// is no follow-up to resolve.
//
// "Members" is inserted whenever the head is a key_filter (wildcard) whose
// key is not itself "Members"; this check does not look ahead at what
// follows the head. When the head is not a wildcard, or the head is
// "Members" already, the head is simply dropped.
func ForMemberRefetch(p Path) (Path, bool) {
	tail, ok := StripParent(p)
	if !ok {
		return Path{}, false
	}

	head, _ := p.Head()

	if head.IsWildcard() && head.Key != "Members" {
		out := make([]Component, 0, len(tail.Components)+1)
		out = append(out, Component{Key: "Members", Filter: "*"})
		out = append(out, tail.Components...)
		return Path{Components: out}, true
	}

	return tail, true
}
