package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	userRolesCollection = "user_roles"
	rolesCollection     = "roles"
)

// MongoStore is a RoleStore backed by MongoDB. Assignments live in one
// document per user, role definitions in one document per role.
type MongoStore struct {
	assignments *mongo.Collection
	roles       *mongo.Collection
}

// NewMongoStore creates a RoleStore over the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		assignments: db.Collection(userRolesCollection),
		roles:       db.Collection(rolesCollection),
	}
}

type assignmentDoc struct {
	UserID string   `bson:"_id"`
	Roles  []string `bson:"roles"`
}

type roleDoc struct {
	Name  string   `bson:"_id"`
	Paths []string `bson:"paths"`
}

func (s *MongoStore) UserRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var doc assignmentDoc
	err := s.assignments.FindOne(ctx, bson.M{"_id": userID.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user roles: %w", err)
	}
	return doc.Roles, nil
}

func (s *MongoStore) PathsForRoles(ctx context.Context, roles []string) ([]string, error) {
	if len(roles) == 0 {
		return nil, nil
	}

	cursor, err := s.roles.Find(ctx, bson.M{"_id": bson.M{"$in": roles}})
	if err != nil {
		return nil, fmt.Errorf("query role paths: %w", err)
	}

	var docs []roleDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode role paths: %w", err)
	}

	var paths []string
	for _, doc := range docs {
		paths = append(paths, doc.Paths...)
	}
	return paths, nil
}

// AssignRole adds a role to a user's assignments, creating the assignment
// document on first use.
func (s *MongoStore) AssignRole(ctx context.Context, userID uuid.UUID, role string) error {
	_, err := s.assignments.UpdateOne(ctx,
		bson.M{"_id": userID.String()},
		bson.M{"$addToSet": bson.M{"roles": role}},
		options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}

// RevokeRole removes a role from a user's assignments.
func (s *MongoStore) RevokeRole(ctx context.Context, userID uuid.UUID, role string) error {
	_, err := s.assignments.UpdateOne(ctx,
		bson.M{"_id": userID.String()},
		bson.M{"$pull": bson.M{"roles": role}})
	if err != nil {
		return fmt.Errorf("revoke role: %w", err)
	}
	return nil
}

// SetRolePaths replaces the paths granted by a role.
func (s *MongoStore) SetRolePaths(ctx context.Context, role string, paths []string) error {
	_, err := s.roles.ReplaceOne(ctx,
		bson.M{"_id": role},
		roleDoc{Name: role, Paths: paths},
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("set role paths: %w", err)
	}
	return nil
}

var _ RoleStore = (*MongoStore)(nil)
