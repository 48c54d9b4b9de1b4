package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection(UsersCollection).Indexes()

	usernameIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}},
		Options: options.Index().
			SetName("username_unique").
			SetUnique(true),
	}

	zap.L().Info("creating index", zap.String("collection", UsersCollection), zap.String("index", "username_unique"))
	if _, err := indexes.CreateOne(ctx, usernameIndex); err != nil {
		zap.L().Error("index creation failed", zap.String("index", "username_unique"), zap.Error(err))
		return err
	}
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection(OrdersCollection).Indexes()

	orderedDateIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "orderedDate", Value: -1}},
		Options: options.Index().SetName("orderedDate_desc"),
	}

	zap.L().Info("creating index", zap.String("collection", OrdersCollection), zap.String("index", "orderedDate_desc"))
	if _, err := indexes.CreateOne(ctx, orderedDateIndex); err != nil {
		zap.L().Error("index creation failed", zap.String("index", "orderedDate_desc"), zap.Error(err))
		return err
	}
	return nil
}

// EnsureIndexes creates every index the service relies on. The username index
// backs the uniqueness check in the store.
func EnsureIndexes(db *mongo.Database) error {
	if err := EnsureUserIndexes(db); err != nil {
		return err
	}
	return EnsureOrderIndexes(db)
}
