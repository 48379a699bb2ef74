package pathset

// Set is an immutable-by-convention collection of access patterns.
// The zero value (nil) is a valid empty set that grants nothing.
type Set struct {
	patterns []string
}

// New builds a Set from the given patterns, normalizing them
// (deduplicated, sorted) so two sets built from the same patterns compare equal.
func New(patterns ...string) Set {
	return Set{patterns: Normalize(patterns)}
}

// Union returns a new Set containing the patterns of both sets.
func (s Set) Union(other Set) Set {
	if len(other.patterns) == 0 {
		return s
	}
	if len(s.patterns) == 0 {
		return other
	}
	merged := make([]string, 0, len(s.patterns)+len(other.patterns))
	merged = append(merged, s.patterns...)
	merged = append(merged, other.patterns...)
	return Set{patterns: Normalize(merged)}
}

// Has reports whether the set grants access to the given path.
func (s Set) Has(path string) bool {
	return Has(s.patterns, path)
}

// HasAll reports whether the set grants access to every given path.
func (s Set) HasAll(paths ...string) bool {
	return HasAll(s.patterns, paths)
}

// HasAny reports whether the set grants access to at least one given path.
func (s Set) HasAny(paths ...string) bool {
	return HasAny(s.patterns, paths)
}

// List returns the normalized patterns. Callers must not modify the result.
func (s Set) List() []string {
	return s.patterns
}

// Len returns the number of patterns in the set.
func (s Set) Len() int {
	return len(s.patterns)
}

// IsEmpty reports whether the set grants nothing.
func (s Set) IsEmpty() bool {
	return len(s.patterns) == 0
}

// Equal reports whether both sets contain the same patterns.
func (s Set) Equal(other Set) bool {
	return Equal(s.patterns, other.patterns)
}
