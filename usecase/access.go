package usecase

import (
	"errors"
	"log"

	"main/model"
)

// ErrNoteNotFound is the single error surfaced for a note that does not
// exist and for a note the principal has no rights to. Collapsing the two
// keeps responses from disclosing which ids exist.
var ErrNoteNotFound = errors.New("note not found")

// Principal is the acting identity on a request: the authenticated user's
// id and email, or the zero value for anonymous share-token requests.
type Principal struct {
	UserID string
	Email  string
}

func (p Principal) IsAnonymous() bool {
	return p.UserID == ""
}

// CanReadNote: the owner and every listed collaborator may read.
// Anonymous access goes through the share-token path, never here.
func CanReadNote(note *model.Note, p Principal) bool {
	if p.IsAnonymous() {
		return false
	}
	return note.UserID == p.UserID || note.HasCollaborator(p.Email)
}

// CanWriteNote: content/metadata updates are open to owner and
// collaborators alike.
func CanWriteNote(note *model.Note, p Principal) bool {
	return CanReadNote(note, p)
}

// IsNoteOwner gates the destructive and administrative operations: delete,
// pin/archive toggles, collaborator management, public toggle and token
// regeneration.
func IsNoteOwner(note *model.Note, p Principal) bool {
	return !p.IsAnonymous() && note.UserID == p.UserID
}

// requireRead maps a failed read check to the uniform not-found error.
func requireRead(note *model.Note, p Principal) error {
	if !CanReadNote(note, p) {
		return ErrNoteNotFound
	}
	return nil
}

// requireOwner maps a failed owner check to the uniform not-found error.
// The real reason is logged; the caller's response must not distinguish
// "absent" from "not owner".
func requireOwner(note *model.Note, p Principal) error {
	if !IsNoteOwner(note, p) {
		log.Printf("access denied: user %s is not the owner of note %s", p.UserID, note.ID)
		return ErrNoteNotFound
	}
	return nil
}
