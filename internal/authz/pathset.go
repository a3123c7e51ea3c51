package authz

import "strings"

// PathSet is an allow-list of exact request paths.
type PathSet map[string]struct{}

func NewPathSet(paths ...string) PathSet {
	s := make(PathSet, len(paths))
	for _, p := range paths {
		s[clean(p)] = struct{}{}
	}
	return s
}

// Union returns a new set holding the paths of s plus extra.
func (s PathSet) Union(extra ...string) PathSet {
	out := make(PathSet, len(s)+len(extra))
	for p := range s {
		out[p] = struct{}{}
	}
	for _, p := range extra {
		out[clean(p)] = struct{}{}
	}
	return out
}

func (s PathSet) Contains(path string) bool {
	_, ok := s[clean(path)]
	return ok
}

func clean(p string) string {
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}
