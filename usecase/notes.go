package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// shareTokenAttempts bounds the retry loop on a share-token collision.
// Collisions are a 128-bit coincidence, so the loop exists only to satisfy
// the unique index.
const shareTokenAttempts = 3

type NotesService struct {
	NotesRepo *repository.NotesRepo
}

// Searching/Filtering options for notes
type NoteSearchOptions struct {
	Query    string
	Tags     []string
	Archived *bool
	Pinned   *bool
	Page     int
	PageSize int
}

func (svc *NotesService) validateNote(note *model.Note) error {
	note.Title = strings.TrimSpace(note.Title)
	if note.Title == "" {
		return errors.New("note title is required")
	}
	if len(note.Title) > 200 {
		return errors.New("note title exceeds maximum length")
	}

	if note.Content == "" {
		return errors.New("note content is required")
	}
	if len(note.Content) > 50000 {
		return errors.New("note content exceeds maximum length")
	}

	// Normalize tags
	normalizedTags := make([]string, 0)
	for _, tag := range note.Tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			normalizedTags = append(normalizedTags, trimmed)
		}
	}
	note.Tags = normalizedTags
	if len(note.Tags) > 10 {
		return errors.New("maximum 10 tags allowed")
	}

	for i := range note.Reminders {
		if !utils.ValidateReminderTime(note.Reminders[i].DateTime) {
			return errors.New("reminder date must be a valid ISO timestamp")
		}
		if note.Reminders[i].ID == "" {
			note.Reminders[i].ID = utils.GenerateID()
		}
	}

	return nil
}

// CreateNote stores a new note for the principal, who becomes its owner.
// The id and the display rank (one above the owner's current maximum) are
// assigned here, never by the client.
func (svc *NotesService) CreateNote(ctx context.Context, p Principal, note *model.Note) error {
	if p.IsAnonymous() {
		return errors.New("user ID is required")
	}

	if err := svc.validateNote(note); err != nil {
		return err
	}

	count, err := svc.NotesRepo.CountUserNotes(ctx, p.UserID)
	if err != nil {
		return err
	}
	if count >= 100 {
		return errors.New("user has reached maximum note limit")
	}

	maxOrder, err := svc.NotesRepo.MaxOrder(ctx, p.UserID)
	if err != nil {
		return err
	}

	note.ID = utils.GenerateID()
	note.UserID = p.UserID
	note.Order = maxOrder + 1
	note.IsPublic = false
	note.ShareToken = ""
	note.Collaborators = nil

	return svc.NotesRepo.CreateNote(ctx, note)
}

// GetNote returns the note when the principal is its owner or a
// collaborator; otherwise the uniform not-found error.
func (svc *NotesService) GetNote(ctx context.Context, p Principal, noteID string) (*model.Note, error) {
	note, err := svc.NotesRepo.GetNoteByID(ctx, noteID)
	if err != nil {
		if err == repository.ErrNoteNotFound {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	if err := requireRead(note, p); err != nil {
		return nil, err
	}
	return note, nil
}

// ListNotes returns the notes the principal owns plus those shared with
// them.
func (svc *NotesService) ListNotes(ctx context.Context, p Principal, opts NoteSearchOptions) ([]*model.Note, int64, error) {
	if p.IsAnonymous() {
		return nil, 0, errors.New("user ID is required")
	}

	repoOpts := repository.SearchOptions{
		Tags:     opts.Tags,
		Archived: opts.Archived,
		Pinned:   opts.Pinned,
		Page:     opts.Page,
		PageSize: opts.PageSize,
	}

	notes, total, err := svc.NotesRepo.FindAccessible(ctx, p.UserID, p.Email, repoOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, total, nil
}

// SearchNotes is ListNotes with a text query over title/content/tags.
func (svc *NotesService) SearchNotes(ctx context.Context, p Principal, opts NoteSearchOptions) ([]*model.Note, int64, error) {
	if p.IsAnonymous() {
		return nil, 0, errors.New("user ID is required")
	}
	if opts.Query != "" && len(opts.Query) < 2 {
		return nil, 0, errors.New("search query must be at least 2 characters")
	}

	repoOpts := repository.SearchOptions{
		Query:    opts.Query,
		Tags:     opts.Tags,
		Archived: opts.Archived,
		Pinned:   opts.Pinned,
		Page:     opts.Page,
		PageSize: opts.PageSize,
	}

	notes, total, err := svc.NotesRepo.FindAccessible(ctx, p.UserID, p.Email, repoOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search notes: %w", err)
	}
	return notes, total, nil
}

// UpdateNote lets the owner or a collaborator replace content and
// metadata. Ownership, flags and the share state are preserved.
func (svc *NotesService) UpdateNote(ctx context.Context, p Principal, noteID string, updates *model.Note) (*model.Note, error) {
	existing, err := svc.GetNote(ctx, p, noteID)
	if err != nil {
		return nil, err
	}
	if !CanWriteNote(existing, p) {
		return nil, ErrNoteNotFound
	}

	if err := svc.validateNote(updates); err != nil {
		return nil, err
	}

	if err := svc.NotesRepo.UpdateNote(ctx, noteID, updates); err != nil {
		return nil, err
	}

	// Read-back so the caller sees the stored note with plaintext content
	return svc.NotesRepo.GetNoteByID(ctx, noteID)
}

// TogglePin flips the pinned flag. Owner only.
func (svc *NotesService) TogglePin(ctx context.Context, p Principal, noteID string) error {
	note, err := svc.ownedNote(ctx, p, noteID)
	if err != nil {
		return err
	}
	return svc.NotesRepo.SetFields(ctx, noteID, bson.M{"is_pinned": !note.IsPinned})
}

// ToggleArchive flips the archived flag. Owner only.
func (svc *NotesService) ToggleArchive(ctx context.Context, p Principal, noteID string) error {
	note, err := svc.ownedNote(ctx, p, noteID)
	if err != nil {
		return err
	}
	return svc.NotesRepo.SetFields(ctx, noteID, bson.M{"is_archived": !note.IsArchived})
}

// DeleteNote removes the note. Owner only; collaborators never delete.
func (svc *NotesService) DeleteNote(ctx context.Context, p Principal, noteID string) error {
	if _, err := svc.ownedNote(ctx, p, noteID); err != nil {
		return err
	}
	return svc.NotesRepo.DeleteNote(ctx, noteID, p.UserID)
}

// AddCollaborator grants read/write access to an email. The address is
// lower-cased before storage so membership checks can stay exact-match.
func (svc *NotesService) AddCollaborator(ctx context.Context, p Principal, noteID, email string) (*model.Note, error) {
	note, err := svc.ownedNote(ctx, p, noteID)
	if err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("collaborator email is required")
	}

	if !note.HasCollaborator(email) {
		collaborators := append(note.Collaborators, email)
		if err := svc.NotesRepo.SetFields(ctx, noteID, bson.M{"collaborators": collaborators}); err != nil {
			return nil, err
		}
	}

	return svc.NotesRepo.GetNoteByID(ctx, noteID)
}

// RemoveCollaborator revokes access for an email.
func (svc *NotesService) RemoveCollaborator(ctx context.Context, p Principal, noteID, email string) (*model.Note, error) {
	note, err := svc.ownedNote(ctx, p, noteID)
	if err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	remaining := make([]string, 0, len(note.Collaborators))
	for _, c := range note.Collaborators {
		if c != email {
			remaining = append(remaining, c)
		}
	}

	if err := svc.NotesRepo.SetFields(ctx, noteID, bson.M{"collaborators": remaining}); err != nil {
		return nil, err
	}
	return svc.NotesRepo.GetNoteByID(ctx, noteID)
}

// SetPublic toggles anonymous read access. Going public assigns a share
// token if the note never had one; going private keeps the token so the
// same link works again on the next toggle.
func (svc *NotesService) SetPublic(ctx context.Context, p Principal, noteID string, public bool) (*model.Note, error) {
	note, err := svc.ownedNote(ctx, p, noteID)
	if err != nil {
		return nil, err
	}

	fields := bson.M{"is_public": public}
	if public && note.ShareToken == "" {
		if err := svc.setFreshShareToken(ctx, noteID, fields); err != nil {
			return nil, err
		}
	} else if err := svc.NotesRepo.SetFields(ctx, noteID, fields); err != nil {
		return nil, err
	}

	return svc.NotesRepo.GetNoteByID(ctx, noteID)
}

// RegenerateShareToken replaces the token; the previous link stops
// resolving immediately. Owner only.
func (svc *NotesService) RegenerateShareToken(ctx context.Context, p Principal, noteID string) (*model.Note, error) {
	if _, err := svc.ownedNote(ctx, p, noteID); err != nil {
		return nil, err
	}

	if err := svc.setFreshShareToken(ctx, noteID, bson.M{}); err != nil {
		return nil, err
	}
	return svc.NotesRepo.GetNoteByID(ctx, noteID)
}

// setFreshShareToken writes fields plus a newly generated token, retrying
// on the unique-index violation a random collision would cause.
func (svc *NotesService) setFreshShareToken(ctx context.Context, noteID string, fields bson.M) error {
	var lastErr error
	for attempt := 0; attempt < shareTokenAttempts; attempt++ {
		token, err := services.GenerateShareToken()
		if err != nil {
			return err
		}
		fields["share_token"] = token

		lastErr = svc.NotesRepo.SetFields(ctx, noteID, fields)
		if lastErr == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(lastErr) {
			return lastErr
		}
	}
	return fmt.Errorf("failed to assign a unique share token: %w", lastErr)
}

// GetPublicNote resolves an anonymous share-token request. The note must
// currently be public; a token of a re-privatized note resolves to
// not-found until the owner toggles it public again.
func (svc *NotesService) GetPublicNote(ctx context.Context, token string) (*model.Note, error) {
	if token == "" {
		return nil, ErrNoteNotFound
	}

	note, err := svc.NotesRepo.GetNoteByShareToken(ctx, token)
	if err != nil {
		if err == repository.ErrNoteNotFound {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	if !note.IsPublic {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

// ReorderNotes rewrites display ranks from a full list of the owner's note
// ids, first id ranked highest. Each note is a separate single-document
// update issued concurrently; a failure mid-batch leaves the other updates
// in place.
func (svc *NotesService) ReorderNotes(ctx context.Context, p Principal, noteIDs []string) error {
	if p.IsAnonymous() {
		return errors.New("user ID is required")
	}
	if len(noteIDs) == 0 {
		return errors.New("note ids are required")
	}

	var wg sync.WaitGroup
	errs := make([]error, len(noteIDs))
	for i, noteID := range noteIDs {
		wg.Add(1)
		go func(i int, noteID string) {
			defer wg.Done()
			errs[i] = svc.NotesRepo.SetOrder(ctx, noteID, p.UserID, OrderForPosition(i, len(noteIDs)))
		}(i, noteID)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("reorder incomplete: %w", err)
		}
	}
	return nil
}

// OrderForPosition maps a display position to an order value: position 0
// (displayed first) gets the highest value.
func OrderForPosition(position, total int) int {
	return total - 1 - position
}

// ownedNote loads a note and enforces ownership, folding every failure
// into the uniform not-found error.
func (svc *NotesService) ownedNote(ctx context.Context, p Principal, noteID string) (*model.Note, error) {
	note, err := svc.NotesRepo.GetNoteByID(ctx, noteID)
	if err != nil {
		if err == repository.ErrNoteNotFound {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	if err := requireOwner(note, p); err != nil {
		return nil, err
	}
	return note, nil
}
