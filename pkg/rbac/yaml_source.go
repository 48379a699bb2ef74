package rbac

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileRoleSource loads role definitions from a YAML file.
// The file maps role names to their paths and inherited roles:
//
//	viewer:
//	  paths: ["/dashboard", "/reports"]
//	editor:
//	  paths: ["/content/*"]
//	  inherits: [viewer]
type fileRoleSource struct {
	path string
}

// NewFileRoleSource creates a RoleSource that reads roles from the YAML
// file at the given path. The file is read on every Load so a rebuilt
// authorizer picks up edits without a process restart.
func NewFileRoleSource(path string) RoleSource {
	return &fileRoleSource{path: path}
}

// Load parses the YAML file and returns the role map.
func (s *fileRoleSource) Load(ctx context.Context) (map[string]Role, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrInvalidRoleFile, fmt.Errorf("read %s: %w", s.path, err))
	}

	var roles map[string]Role
	if err := yaml.Unmarshal(data, &roles); err != nil {
		return nil, errors.Join(ErrInvalidRoleFile, fmt.Errorf("parse %s: %w", s.path, err))
	}

	return roles, nil
}
