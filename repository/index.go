package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	notesCollection := db.Collection("notes")
	usersCollection := db.Collection("users")

	noteIndexes := []mongo.IndexModel{
		// Owner listing by display rank
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "order", Value: -1},
			},
			Options: options.Index().
				SetName("user_notes_order"),
		},
		// Collaborator membership lookups
		{
			Keys: bson.D{{Key: "collaborators", Value: 1}},
			Options: options.Index().
				SetName("collaborators_index"),
		},
		// Share tokens must never collide across notes. Sparse so private
		// notes without a token are not all competing for the same null.
		{
			Keys: bson.D{{Key: "share_token", Value: 1}},
			Options: options.Index().
				SetName("share_token_unique").
				SetUnique(true).
				SetSparse(true),
		},
		// Archive listing
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_archived", Value: 1},
				{Key: "updated_at", Value: -1},
			},
			Options: options.Index().
				SetName("user_archived_notes"),
		},
		// Tag filters
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "tags", Value: 1},
			},
			Options: options.Index().
				SetName("user_tags"),
		},
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "username", Value: 1}},
			Options: options.Index().
				SetName("username_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("email_unique").
				SetUnique(true),
		},
	}

	if _, err := notesCollection.Indexes().CreateMany(ctx, noteIndexes); err != nil {
		return fmt.Errorf("failed to create notes indexes: %w", err)
	}

	if _, err := usersCollection.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create users indexes: %w", err)
	}

	log.Println("Successfully created all indexes")
	return nil
}
