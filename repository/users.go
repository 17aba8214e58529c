package repository

import (
	"context"
	"errors"
	"log"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UsersRepo struct {
	MongoCollection *mongo.Collection
}

func GetUsersRepo(client *mongo.Client) *UsersRepo {
	return &UsersRepo{
		MongoCollection: client.Database(utils.GetEnvAsString("MONGO_DB", "notes")).Collection("users"),
	}
}

func (r *UsersRepo) AddUser(ctx context.Context, user *model.User) error {
	if user.Username == "" || user.Password == "" {
		return errors.New("username and password required")
	}

	if _, err := r.MongoCollection.InsertOne(ctx, user); err != nil {
		return errors.New("failed to add user to database")
	}
	return nil
}

// FindUserByUsername returns nil, nil when no user matches.
func (r *UsersRepo) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		log.Println("Error finding user:", err)
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail returns nil, nil when no user matches. Emails are stored
// lower-cased at registration.
func (r *UsersRepo) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		log.Println("Error finding user:", err)
		return nil, err
	}
	return &user, nil
}

func (r *UsersRepo) FindUser(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.D{{Key: "user_id", Value: userID}}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
