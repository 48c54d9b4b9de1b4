package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"golang.org/x/crypto/bcrypt"
)

const usersNS = "SDP.users"

func newTestStore(mt *mtest.T) *Store {
	return New(mt.DB, Options{
		Timeout:  time.Second,
		HashCost: bcrypt.MinCost,
		Now:      func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) },
	})
}

func userDoc(t testing.TB, id primitive.ObjectID, username, password string) bson.D {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "username", Value: username},
		{Key: "passwordHash", Value: string(hash)},
		{Key: "createdAt", Value: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
	}
}

func TestCreateUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unused username", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		user, err := newTestStore(mt).CreateUser(context.Background(), " alice ", "pw1")
		require.NoError(mt, err)
		require.False(mt, user.ID.IsZero())
		require.Equal(mt, "alice", user.Username)
		require.NotEqual(mt, "pw1", user.PasswordHash)
		require.NoError(mt, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")))
	})

	mt.Run("username taken", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: 1},
				{Key: "n", Value: 1},
			}),
		)

		_, err := newTestStore(mt).CreateUser(context.Background(), "alice", "pw2")
		require.Error(mt, err)
		require.True(mt, IsValidation(err))
		require.True(mt, IsDuplicate(err))
	})

	mt.Run("unique index rejects insert", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error collection: SDP.users index: username_unique",
			}),
		)

		_, err := newTestStore(mt).CreateUser(context.Background(), "alice", "pw2")
		require.True(mt, IsDuplicate(err))
	})

	mt.Run("missing fields", func(mt *mtest.T) {
		_, err := newTestStore(mt).CreateUser(context.Background(), "  ", "")
		require.True(mt, IsValidation(err))
		require.False(mt, IsDuplicate(err))

		var verr *ValidationError
		require.ErrorAs(mt, err, &verr)
		require.ElementsMatch(mt, []string{"username", "password"}, verr.Fields)
	})

	mt.Run("store failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
			Name:    "BadValue",
		}))

		_, err := newTestStore(mt).CreateUser(context.Background(), "alice", "pw1")
		require.True(mt, IsStore(err))
		require.False(mt, IsValidation(err))
	})
}

func TestFindUserByCredentials(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID()

	mt.Run("match", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, userDoc(mt, id, "alice", "pw1")))

		user, err := newTestStore(mt).FindUserByCredentials(context.Background(), "alice", "pw1")
		require.NoError(mt, err)
		require.Equal(mt, id, user.ID)
		require.Equal(mt, "alice", user.Username)
	})

	mt.Run("wrong password", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, userDoc(mt, id, "alice", "pw1")))

		_, err := newTestStore(mt).FindUserByCredentials(context.Background(), "alice", "wrong")
		require.True(mt, IsNotFound(err))
	})

	mt.Run("unknown user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))

		_, err := newTestStore(mt).FindUserByCredentials(context.Background(), "bob", "pw1")
		require.True(mt, IsNotFound(err))
	})

	mt.Run("empty credentials skip the store", func(mt *mtest.T) {
		_, err := newTestStore(mt).FindUserByCredentials(context.Background(), "", "")
		require.True(mt, IsNotFound(err))
	})

	mt.Run("store failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "boom", Name: "BadValue"}))

		_, err := newTestStore(mt).FindUserByCredentials(context.Background(), "alice", "pw1")
		require.True(mt, IsStore(err))
		require.False(mt, IsNotFound(err))
	})
}

func TestFindUserByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID()

	mt.Run("found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, userDoc(mt, id, "alice", "pw1")))

		user, err := newTestStore(mt).FindUserByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		require.Equal(mt, "alice", user.Username)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		_, err := newTestStore(mt).FindUserByID(context.Background(), "nope")
		require.True(mt, IsNotFound(err))
	})
}

func TestListUsers(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("all users", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch,
			userDoc(mt, primitive.NewObjectID(), "alice", "pw1"),
			userDoc(mt, primitive.NewObjectID(), "bob", "pw2"),
		))

		users, err := newTestStore(mt).ListUsers(context.Background())
		require.NoError(mt, err)
		require.Len(mt, users, 2)
		require.Equal(mt, "alice", users[0].Username)
		require.Equal(mt, "bob", users[1].Username)
	})

	mt.Run("empty collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))

		users, err := newTestStore(mt).ListUsers(context.Background())
		require.NoError(mt, err)
		require.NotNil(mt, users)
		require.Empty(mt, users)
	})

	mt.Run("store failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "boom", Name: "BadValue"}))

		_, err := newTestStore(mt).ListUsers(context.Background())
		require.True(mt, IsStore(err))
	})
}
