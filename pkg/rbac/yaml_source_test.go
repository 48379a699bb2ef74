package rbac_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatekit/gatekit/pkg/rbac"
)

func TestFileRoleSource_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "roles.yaml")
	content := `
viewer:
  paths: ["/dashboard", "/reports"]
editor:
  paths: ["/content/*"]
  inherits: [viewer]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	source := rbac.NewFileRoleSource(path)
	roles, err := source.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, roles, 2)
	assert.Equal(t, []string{"/dashboard", "/reports"}, roles["viewer"].Paths)
	assert.Equal(t, []string{"viewer"}, roles["editor"].Inherits)

	auth, err := rbac.NewAuthorizer(context.Background(), source)
	require.NoError(t, err)
	assert.NoError(t, auth.Can("editor", "/reports"))
}

func TestFileRoleSource_MissingFile(t *testing.T) {
	t.Parallel()

	source := rbac.NewFileRoleSource(filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := source.Load(context.Background())
	assert.ErrorIs(t, err, rbac.ErrInvalidRoleFile)
}

func TestFileRoleSource_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "roles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("viewer: [not a role"), 0o600))

	source := rbac.NewFileRoleSource(path)
	_, err := source.Load(context.Background())
	assert.ErrorIs(t, err, rbac.ErrInvalidRoleFile)
}

func TestRole_Grants(t *testing.T) {
	t.Parallel()

	role := rbac.Role{Paths: []string{"/admin/*", "/dashboard"}}

	assert.True(t, role.Grants("/dashboard"))
	assert.True(t, role.Grants("/admin/users"))
	assert.False(t, role.Grants("/billing"))
}
