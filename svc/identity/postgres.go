package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is a RoleStore backed by the user_roles and role_paths
// tables; see the migrations directory for the schema.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a RoleStore over the given connection pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) UserRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT role_name FROM user_roles WHERE user_id = $1 ORDER BY role_name`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query user roles: %w", err)
	}

	roles, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect user roles: %w", err)
	}
	return roles, nil
}

func (s *PostgresStore) PathsForRoles(ctx context.Context, roles []string) ([]string, error) {
	if len(roles) == 0 {
		return nil, nil
	}

	rows, err := s.db.Query(ctx,
		`SELECT DISTINCT path FROM role_paths WHERE role_name = ANY($1) ORDER BY path`,
		roles)
	if err != nil {
		return nil, fmt.Errorf("query role paths: %w", err)
	}

	paths, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect role paths: %w", err)
	}
	return paths, nil
}

// AssignRole adds a role to a user's assignments. Assigning an already held
// role is a no-op.
func (s *PostgresStore) AssignRole(ctx context.Context, userID uuid.UUID, role string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_name) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, role)
	if err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}

// RevokeRole removes a role from a user's assignments.
func (s *PostgresStore) RevokeRole(ctx context.Context, userID uuid.UUID, role string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM user_roles WHERE user_id = $1 AND role_name = $2`,
		userID, role)
	if err != nil {
		return fmt.Errorf("revoke role: %w", err)
	}
	return nil
}

// GrantPath adds a path to a role's grants.
func (s *PostgresStore) GrantPath(ctx context.Context, role, path string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO role_paths (role_name, path) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		role, path)
	if err != nil {
		return fmt.Errorf("grant path: %w", err)
	}
	return nil
}

// RevokePath removes a path from a role's grants.
func (s *PostgresStore) RevokePath(ctx context.Context, role, path string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM role_paths WHERE role_name = $1 AND path = $2`,
		role, path)
	if err != nil {
		return fmt.Errorf("revoke path: %w", err)
	}
	return nil
}

var _ RoleStore = (*PostgresStore)(nil)
