package domain

import (
	"strings"
	"unique"
)

const (
	pathSeparator     = "/"
	propertySeparator = "."
)

// AbsoluteRoot is the path of the pseudo-root prim.
var AbsoluteRoot = NewPath(pathSeparator)

// Path is an interned scene path such as /World/Ball or /World/Ball.radius.
// Paths are compared and hashed by handle, so they are cheap map keys.
type Path struct {
	h unique.Handle[string]
}

// NewPath interns s as a Path. No validation is performed.
func NewPath(s string) Path {
	if s == "" {
		return Path{}
	}
	return Path{h: unique.Make(s)}
}

// NewPaths interns every string in s.
func NewPaths(s []string) []Path {
	res := make([]Path, len(s))
	for i, p := range s {
		res[i] = NewPath(p)
	}
	return res
}

// String returns the textual form of the path.
func (p Path) String() string {
	if p.IsEmpty() {
		return ""
	}
	return p.h.Value()
}

// IsEmpty reports whether p is the zero path.
func (p Path) IsEmpty() bool {
	return p == Path{}
}

// IsAbsoluteRoot reports whether p is "/".
func (p Path) IsAbsoluteRoot() bool {
	return p == AbsoluteRoot
}

// IsPropertyPath reports whether p names a property.
func (p Path) IsPropertyPath() bool {
	s := p.String()
	i := strings.LastIndex(s, pathSeparator)
	return i >= 0 && strings.Contains(s[i:], propertySeparator)
}

// IsAbsolutePrimPath reports whether p is a syntactically valid absolute
// path to a prim. The pseudo-root is not a prim path.
func (p Path) IsAbsolutePrimPath() bool {
	return IsAbsolutePrimPath(p.String())
}

// IsAbsolutePrimPath reports whether s is a syntactically valid absolute
// prim path: one or more "/identifier" elements.
func IsAbsolutePrimPath(s string) bool {
	if len(s) < 2 || !strings.HasPrefix(s, pathSeparator) {
		return false
	}
	for _, elem := range strings.Split(s[1:], pathSeparator) {
		if !isIdentifier(elem) {
			return false
		}
	}
	return true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// PrimPath strips a trailing property name, if any.
func (p Path) PrimPath() Path {
	if !p.IsPropertyPath() {
		return p
	}
	s := p.String()
	return NewPath(s[:strings.LastIndex(s, propertySeparator)])
}

// Name returns the final element of the path: the prim name or property name.
func (p Path) Name() string {
	s := p.String()
	if p.IsPropertyPath() {
		return s[strings.LastIndex(s, propertySeparator)+1:]
	}
	return s[strings.LastIndex(s, pathSeparator)+1:]
}

// Parent returns the parent path. The parent of a property path is its prim.
// The parent of a root-level prim is AbsoluteRoot; the root has no parent.
func (p Path) Parent() Path {
	if p.IsEmpty() || p.IsAbsoluteRoot() {
		return Path{}
	}
	if p.IsPropertyPath() {
		return p.PrimPath()
	}
	s := p.String()
	i := strings.LastIndex(s, pathSeparator)
	if i <= 0 {
		return AbsoluteRoot
	}
	return NewPath(s[:i])
}

// AppendChild returns the path of the named child prim.
func (p Path) AppendChild(name string) Path {
	if p.IsAbsoluteRoot() {
		return NewPath(pathSeparator + name)
	}
	return NewPath(p.String() + pathSeparator + name)
}

// AppendProperty returns the path of the named property on prim p.
func (p Path) AppendProperty(name string) Path {
	return NewPath(p.String() + propertySeparator + name)
}

// HasPrefix reports whether prefix is p or an ancestor of p.
func (p Path) HasPrefix(prefix Path) bool {
	if prefix.IsEmpty() || p.IsEmpty() {
		return false
	}
	if p == prefix || prefix.IsAbsoluteRoot() {
		return true
	}
	s, pre := p.String(), prefix.String()
	if !strings.HasPrefix(s, pre) {
		return false
	}
	rest := s[len(pre):]
	return strings.HasPrefix(rest, pathSeparator) || strings.HasPrefix(rest, propertySeparator)
}

// ReplacePrefix replaces the leading oldPrefix of p with newPrefix. If p
// does not start with oldPrefix it is returned unchanged.
func (p Path) ReplacePrefix(oldPrefix, newPrefix Path) Path {
	if !p.HasPrefix(oldPrefix) {
		return p
	}
	if p == oldPrefix {
		return newPrefix
	}
	rest := p.String()[len(oldPrefix.String()):]
	if oldPrefix.IsAbsoluteRoot() {
		rest = pathSeparator + rest
	}
	if newPrefix.IsAbsoluteRoot() {
		return NewPath(rest)
	}
	return NewPath(newPrefix.String() + rest)
}

// MarshalText implements encoding.TextMarshaler.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(text []byte) error {
	*p = NewPath(string(text))
	return nil
}
