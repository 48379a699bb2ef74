package pathset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gatekit/gatekit/pkg/pathset"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  nil,
		},
		{
			name:  "single path",
			input: "/dashboard",
			want:  []string{"/dashboard"},
		},
		{
			name:  "multiple paths",
			input: "/dashboard /admin/users /reports/*",
			want:  []string{"/dashboard", "/admin/users", "/reports/*"},
		},
		{
			name:  "extra whitespace between paths",
			input: "  /a   /b  ",
			want:  []string{"/a", "/b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pathset.Parse(tt.input))
		})
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", pathset.Join(nil))
	assert.Equal(t, "/a /b", pathset.Join([]string{"/a", "/b"}))
}

func TestMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		pattern string
		want    bool
	}{
		{
			name:    "exact match",
			path:    "/reports",
			pattern: "/reports",
			want:    true,
		},
		{
			name:    "global wildcard",
			path:    "/anything/at/all",
			pattern: "*",
			want:    true,
		},
		{
			name:    "subtree wildcard matches child",
			path:    "/admin/users",
			pattern: "/admin/*",
			want:    true,
		},
		{
			name:    "subtree wildcard matches deep descendant",
			path:    "/admin/users/42/edit",
			pattern: "/admin/*",
			want:    true,
		},
		{
			name:    "subtree wildcard does not match the prefix itself",
			path:    "/admin",
			pattern: "/admin/*",
			want:    false,
		},
		{
			name:    "subtree wildcard does not match sibling",
			path:    "/administration",
			pattern: "/admin/*",
			want:    false,
		},
		{
			name:    "no match",
			path:    "/billing",
			pattern: "/reports",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pathset.Matches(tt.path, tt.pattern))
		})
	}
}

func TestHas(t *testing.T) {
	t.Parallel()

	patterns := []string{"/dashboard", "/admin/*"}

	assert.True(t, pathset.Has(patterns, "/dashboard"))
	assert.True(t, pathset.Has(patterns, "/admin/users"))
	assert.False(t, pathset.Has(patterns, "/billing"))
	assert.False(t, pathset.Has(nil, "/dashboard"))
}

func TestHasAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		patterns []string
		required []string
		want     bool
	}{
		{
			name:     "empty required always allowed",
			patterns: []string{"/a"},
			required: nil,
			want:     true,
		},
		{
			name:     "empty patterns denies",
			patterns: nil,
			required: []string{"/a"},
			want:     false,
		},
		{
			name:     "global wildcard allows everything",
			patterns: []string{"*"},
			required: []string{"/a", "/b/c"},
			want:     true,
		},
		{
			name:     "all covered",
			patterns: []string{"/admin/*", "/reports"},
			required: []string{"/admin/users", "/reports"},
			want:     true,
		},
		{
			name:     "one missing",
			patterns: []string{"/admin/*"},
			required: []string{"/admin/users", "/reports"},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pathset.HasAll(tt.patterns, tt.required))
		})
	}
}

func TestHasAny(t *testing.T) {
	t.Parallel()

	assert.True(t, pathset.HasAny([]string{"/reports"}, []string{"/billing", "/reports"}))
	assert.False(t, pathset.HasAny([]string{"/reports"}, []string{"/billing"}))
	assert.True(t, pathset.HasAny([]string{"*"}, []string{"/whatever"}))
	assert.True(t, pathset.HasAny([]string{"/a"}, nil))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Nil(t, pathset.Normalize(nil))
	assert.Equal(t,
		[]string{"/a", "/b", "/c"},
		pathset.Normalize([]string{"/c", "/a", "/b", "/a"}),
	)
}

func TestEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, pathset.Equal([]string{"/a", "/b"}, []string{"/b", "/a"}))
	assert.False(t, pathset.Equal([]string{"/a"}, []string{"/b"}))
	assert.False(t, pathset.Equal([]string{"/a", "/a"}, []string{"/a", "/b"}))
	assert.True(t, pathset.Equal(nil, nil))
}
