package pathset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gatekit/gatekit/pkg/pathset"
)

func TestSet_Has(t *testing.T) {
	t.Parallel()

	set := pathset.New("/dashboard", "/admin/*")

	assert.True(t, set.Has("/dashboard"))
	assert.True(t, set.Has("/admin/settings"))
	assert.False(t, set.Has("/billing"))
}

func TestSet_ZeroValue(t *testing.T) {
	t.Parallel()

	var set pathset.Set

	assert.True(t, set.IsEmpty())
	assert.False(t, set.Has("/anything"))
	assert.Equal(t, 0, set.Len())
	assert.Nil(t, set.List())
}

func TestSet_Normalized(t *testing.T) {
	t.Parallel()

	set := pathset.New("/b", "/a", "/b")

	assert.Equal(t, []string{"/a", "/b"}, set.List())
	assert.Equal(t, 2, set.Len())
}

func TestSet_Union(t *testing.T) {
	t.Parallel()

	a := pathset.New("/a", "/shared")
	b := pathset.New("/b", "/shared")

	union := a.Union(b)
	assert.Equal(t, []string{"/a", "/b", "/shared"}, union.List())

	// union with empty set returns the other side unchanged
	assert.True(t, a.Union(pathset.New()).Equal(a))
	assert.True(t, pathset.New().Union(b).Equal(b))
}

func TestSet_Equal(t *testing.T) {
	t.Parallel()

	assert.True(t, pathset.New("/a", "/b").Equal(pathset.New("/b", "/a")))
	assert.False(t, pathset.New("/a").Equal(pathset.New("/b")))
	assert.True(t, pathset.New().Equal(pathset.Set{}))
}

func TestSet_HasAllHasAny(t *testing.T) {
	t.Parallel()

	set := pathset.New("/admin/*", "/reports")

	assert.True(t, set.HasAll("/admin/users", "/reports"))
	assert.False(t, set.HasAll("/admin/users", "/billing"))
	assert.True(t, set.HasAny("/billing", "/reports"))
	assert.False(t, set.HasAny("/billing", "/settings"))
}
