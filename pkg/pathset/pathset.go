package pathset

import (
	"slices"
	"sort"
	"strings"
)

const (
	// Separator is used to separate multiple paths in a string.
	Separator = " "

	// Wildcard matches any path when used alone, or any descendant
	// when used as the last segment of a pattern (e.g. "/admin/*").
	Wildcard = "*"

	// Delimiter separates path segments.
	Delimiter = "/"
)

// Parse converts a space-separated string of resource paths into a slice.
//
// Trims spaces and removes empty entries. Returns nil for empty input.
//
// Example:
//
//	paths := pathset.Parse("/dashboard /admin/users /reports/*")
//	// Returns: []string{"/dashboard", "/admin/users", "/reports/*"}
func Parse(pathsStr string) []string {
	pathsStr = strings.TrimSpace(pathsStr)
	if pathsStr == "" {
		return nil
	}

	parts := strings.Split(pathsStr, Separator)
	paths := make([]string, 0, len(parts))

	for i := range parts {
		if parts[i] = strings.TrimSpace(parts[i]); parts[i] != "" {
			paths = append(paths, parts[i])
		}
	}

	return paths
}

// Join converts a slice of paths back to a space-separated string.
func Join(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	return strings.Join(paths, Separator)
}

// Matches checks if a single path matches a pattern.
//
// Pattern matching rules:
//   - Direct match: "/reports" matches "/reports"
//   - Global wildcard: "*" matches any path
//   - Subtree wildcard: "/admin/*" matches any path strictly under "/admin/"
func Matches(path, pattern string) bool {
	if path == pattern || pattern == Wildcard {
		return true
	}

	if strings.HasSuffix(pattern, Wildcard) {
		prefix := strings.TrimSuffix(pattern, Wildcard)
		prefix = strings.TrimSuffix(prefix, Delimiter)
		return strings.HasPrefix(path, prefix+Delimiter)
	}

	return false
}

// Has checks if any of the given patterns grants access to path.
//
// Example:
//
//	ok := pathset.Has([]string{"/admin/*", "/dashboard"}, "/admin/users")
//	// Returns: true (because "/admin/*" matches "/admin/users")
func Has(patterns []string, path string) bool {
	for _, p := range patterns {
		if Matches(path, p) {
			return true
		}
	}
	return false
}

func hasGlobalWildcard(patterns []string) bool {
	return slices.Contains(patterns, Wildcard)
}

// HasAll checks if the patterns grant access to every path in required.
//
// Returns true if required is empty or patterns include the global wildcard.
func HasAll(patterns, required []string) bool {
	if len(required) == 0 {
		return true
	}
	if len(patterns) == 0 {
		return false
	}
	if hasGlobalWildcard(patterns) {
		return true
	}

	for _, req := range required {
		if !Has(patterns, req) {
			return false
		}
	}
	return true
}

// HasAny checks if the patterns grant access to at least one path in required.
//
// Returns true if required is empty or patterns include the global wildcard.
func HasAny(patterns, required []string) bool {
	if len(required) == 0 {
		return true
	}
	if len(patterns) == 0 {
		return false
	}
	if hasGlobalWildcard(patterns) {
		return true
	}

	for _, req := range required {
		if Has(patterns, req) {
			return true
		}
	}
	return false
}

// Normalize removes duplicate paths and sorts them alphabetically.
// Returns nil for empty input.
func Normalize(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}

	unique := make(map[string]struct{}, len(paths))
	for i := range paths {
		unique[paths[i]] = struct{}{}
	}

	normalized := make([]string, 0, len(unique))
	for p := range unique {
		normalized = append(normalized, p)
	}
	sort.Strings(normalized)

	return normalized
}

// Equal checks if two path collections contain the same paths, regardless of order.
func Equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	counts := make(map[string]int, len(a))
	for _, p := range a {
		counts[p]++
	}
	for _, p := range b {
		count, exists := counts[p]
		if !exists || count == 0 {
			return false
		}
		counts[p]--
	}

	return true
}
