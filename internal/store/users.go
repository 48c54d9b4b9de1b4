package store

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"coffeeshop/internal/models"
)

// FindUserByCredentials returns the user whose username matches and whose
// stored hash accepts password. A wrong password is reported as not found so
// callers cannot tell unknown users from bad passwords.
func (s *Store) FindUserByCredentials(ctx context.Context, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, notFound("user")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var user models.User
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, notFound("user")
	}
	if err != nil {
		return models.User{}, storeErr("find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, notFound("user")
	}
	return user, nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, notFound("user")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var user models.User
	err = s.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, notFound("user")
	}
	if err != nil {
		return models.User{}, storeErr("find user", err)
	}
	return user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cursor, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr("list users", err)
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, storeErr("decode users", err)
	}
	return users, nil
}

// CreateUser registers a new account. The username must be unused; the
// unique index catches races the pre-check cannot.
func (s *Store) CreateUser(ctx context.Context, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if err := s.checkFields(
		required("username", username),
		required("password", password),
	); err != nil {
		return models.User{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	count, err := s.users.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return models.User{}, storeErr("count users", err)
	}
	if count > 0 {
		return models.User{}, duplicateUsername()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return models.User{}, &ValidationError{Fields: []string{"password"}, Reason: err.Error()}
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.timestamp(),
	}
	if err := s.checkStruct(user); err != nil {
		return models.User{}, err
	}

	res, err := s.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return models.User{}, duplicateUsername()
	}
	if err != nil {
		return models.User{}, storeErr("insert user", err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return user, nil
}

func duplicateUsername() error {
	return &ValidationError{
		Fields:    []string{"username"},
		Duplicate: true,
		Reason:    "username already exists",
	}
}
