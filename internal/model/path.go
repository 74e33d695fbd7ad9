package model

import "strings"

// PathSeparator separates instance names in a hierarchical path.
const PathSeparator = " "

// Path is a hierarchical scope or item name, e.g. "top cpu alu".
// The empty path denotes the implicit root scope.
type Path string

// RootPath is the path of the anonymous top scope.
const RootPath Path = ""

// IsRoot reports whether p is the root scope path.
func (p Path) IsRoot() bool {
	return p == RootPath
}

// Segments splits the path into instance names.
func (p Path) Segments() []string {
	if p.IsRoot() {
		return nil
	}

	return strings.Split(string(p), PathSeparator)
}

// Join appends a child name to the path.
func (p Path) Join(name string) Path {
	if p.IsRoot() {
		return Path(name)
	}

	return Path(string(p) + PathSeparator + name)
}

// Parent returns the enclosing scope path. The parent of a top-level
// instance is the root path.
func (p Path) Parent() Path {
	idx := strings.LastIndex(string(p), PathSeparator)
	if idx < 0 {
		return RootPath
	}

	return p[:idx]
}

// Name returns the last segment of the path.
func (p Path) Name() string {
	idx := strings.LastIndex(string(p), PathSeparator)
	if idx < 0 {
		return string(p)
	}

	return string(p[idx+1:])
}

// Contains reports whether other lies at or below p in the hierarchy.
func (p Path) Contains(other Path) bool {
	if p.IsRoot() {
		return true
	}

	return other == p || strings.HasPrefix(string(other), string(p)+PathSeparator)
}
