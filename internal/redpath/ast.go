// Package redpath implements the Redfish path grammar: parsing, AST,
// round-trip stringification, and the "strip parent" rewrite used to turn a
// matched wildcard collection into the follow-up path for its members.
//
//	path            = path_component, { "/", path_component } ;
//	path_component  = key_filter | key_name ;
//	key_filter      = key_name, "[", "*", "]" ;
//	key_name        = uppercase letter, { letter | digit } ;
package redpath

import "strings"

// Component is one segment of a redpath. A bare key_name has an empty
// Filter; a key_filter carries the literal "*" (the grammar supports no
// other filter expression).
type Component struct {
	Key    string
	Filter string
}

// IsWildcard reports whether this component is a key_filter (e.g. "A[*]").
func (c Component) IsWildcard() bool {
	return c.Filter != ""
}

// String renders the component back to redpath syntax.
func (c Component) String() string {
	if c.IsWildcard() {
		return c.Key + "[" + c.Filter + "]"
	}

	return c.Key
}

// Path is a sequence of components separated by "/".
type Path struct {
	Components []Component
}

// String renders the path back to redpath syntax. Parsing a path and then
// calling String on the result always yields the original input.
func (p Path) String() string {
	parts := make([]string, 0, len(p.Components))

	for _, c := range p.Components {
		parts = append(parts, c.String())
	}

	return strings.Join(parts, "/")
}

// Head returns the first component of the path and true, or the zero
// Component and false if the path is empty.
func (p Path) Head() (Component, bool) {
	if len(p.Components) == 0 {
		return Component{}, false
	}

	return p.Components[0], true
}

// Len returns the number of components in the path.
func (p Path) Len() int {
	return len(p.Components)
}
