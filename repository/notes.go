package repository

import (
	"context"
	"errors"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNoteNotFound is returned for a missing document. Callers above this
// layer fold "exists but not yours" into the same error.
var ErrNoteNotFound = errors.New("note not found")

type NotesRepo struct {
	MongoCollection *mongo.Collection
	// EncryptionKey is the fixed process-wide content secret, injected at
	// startup. Every content write/read in this repo passes through the
	// hooks in content_hooks.go with it.
	EncryptionKey string
}

func GetNotesRepo(client *mongo.Client, encryptionKey string) *NotesRepo {
	return &NotesRepo{
		MongoCollection: client.Database(utils.GetEnvAsString("MONGO_DB", "notes")).Collection("notes"),
		EncryptionKey:   encryptionKey,
	}
}

// SearchOptions narrows FindAccessible. Query and Tags filter, Archived and
// Pinned are tri-state via pointers.
type SearchOptions struct {
	Query    string
	Tags     []string
	Archived *bool
	Pinned   *bool
	Page     int
	PageSize int
}

// accessibleFilter matches notes the principal owns or collaborates on.
func accessibleFilter(userID, email string) bson.M {
	return bson.M{
		"$or": []bson.M{
			{"user_id": userID},
			{"collaborators": email},
		},
	}
}

// CreateNote inserts the note, encrypting content first. The inserted
// document keeps ciphertext; the in-memory note is handed back decrypted so
// the caller's read-back shows plaintext.
func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	if note.UserID == "" {
		return errors.New("user ID is required")
	}

	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt

	plaintext := note.Content
	EncryptNoteContent(note, r.EncryptionKey)

	if _, err := r.MongoCollection.InsertOne(ctx, note); err != nil {
		return err
	}

	note.Content = plaintext
	return nil
}

// GetNoteByID fetches a note by id alone. Access decisions happen above
// this layer, which needs the full document either way.
func (r *NotesRepo) GetNoteByID(ctx context.Context, noteID string) (*model.Note, error) {
	var note model.Note
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": noteID}).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	DecryptNoteContent(&note, r.EncryptionKey)
	return &note, nil
}

// GetNoteByShareToken fetches a note by its share token, public or not.
// The caller decides whether the public flag admits the request.
func (r *NotesRepo) GetNoteByShareToken(ctx context.Context, token string) (*model.Note, error) {
	var note model.Note
	err := r.MongoCollection.FindOne(ctx, bson.M{"share_token": token}).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	DecryptNoteContent(&note, r.EncryptionKey)
	return &note, nil
}

// FindAccessible lists notes owned by or shared with the principal, pinned
// first then most recently edited.
func (r *NotesRepo) FindAccessible(ctx context.Context, userID, email string, opts SearchOptions) ([]*model.Note, int64, error) {
	filter := accessibleFilter(userID, email)

	if opts.Archived != nil {
		filter["is_archived"] = *opts.Archived
	}
	if opts.Pinned != nil {
		filter["is_pinned"] = *opts.Pinned
	}
	if opts.Query != "" {
		filter["$and"] = []bson.M{{
			"$or": []bson.M{
				{"title": bson.M{"$regex": opts.Query, "$options": "i"}},
				{"content": bson.M{"$regex": opts.Query, "$options": "i"}},
				{"tags": bson.M{"$regex": opts.Query, "$options": "i"}},
			},
		}}
	}
	if len(opts.Tags) > 0 {
		filter["tags"] = bson.M{"$in": opts.Tags}
	}

	total, err := r.MongoCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSort(bson.D{
			{Key: "is_pinned", Value: -1},
			{Key: "order", Value: -1},
			{Key: "updated_at", Value: -1},
		})
	if opts.PageSize > 0 {
		page := opts.Page
		if page < 1 {
			page = 1
		}
		findOpts = findOpts.
			SetSkip(int64((page - 1) * opts.PageSize)).
			SetLimit(int64(opts.PageSize))
	}

	cursor, err := r.MongoCollection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var notes []*model.Note
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, 0, err
	}

	DecryptNotesContent(notes, r.EncryptionKey)
	return notes, total, nil
}

// UpdateNote applies a $set of the updatable fields. Content is encrypted
// on the way in unless it is already ciphertext-shaped.
func (r *NotesRepo) UpdateNote(ctx context.Context, noteID string, updates *model.Note) error {
	updates.UpdatedAt = time.Now()
	EncryptNoteContent(updates, r.EncryptionKey)

	update := bson.M{
		"$set": bson.M{
			"title":      updates.Title,
			"content":    updates.Content,
			"color":      updates.Color,
			"tags":       updates.Tags,
			"reminders":  updates.Reminders,
			"updated_at": updates.UpdatedAt,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"_id": noteID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// SetFields applies an arbitrary partial update and bumps updated_at.
// Used for the single-field mutations: pin/archive toggles, public flag,
// share token, collaborators, order.
func (r *NotesRepo) SetFields(ctx context.Context, noteID string, fields bson.M) error {
	fields["updated_at"] = time.Now()

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"_id": noteID}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// DeleteNote removes the note owned by userID.
func (r *NotesRepo) DeleteNote(ctx context.Context, noteID, userID string) error {
	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": noteID, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// MaxOrder returns the highest order value among the user's notes, or -1
// when the user has none, so the first note gets order 0.
func (r *NotesRepo) MaxOrder(ctx context.Context, userID string) (int, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "order", Value: -1}}).
		SetProjection(bson.M{"order": 1})

	var note model.Note
	err := r.MongoCollection.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return -1, nil
		}
		return 0, err
	}
	return note.Order, nil
}

// SetOrder updates a single note's display rank. Reorder issues one of
// these per note; the batch as a whole is not atomic.
func (r *NotesRepo) SetOrder(ctx context.Context, noteID, userID string, order int) error {
	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": noteID, "user_id": userID},
		bson.M{"$set": bson.M{"order": order, "updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// CountUserNotes counts the notes a user owns.
func (r *NotesRepo) CountUserNotes(ctx context.Context, userID string) (int, error) {
	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
