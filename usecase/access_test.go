package usecase

import (
	"testing"

	"main/model"
)

func sharedNote() *model.Note {
	return &model.Note{
		ID:            "note-1",
		UserID:        "owner-1",
		Title:         "Shared",
		Content:       "body",
		Collaborators: []string{"collab@example.com"},
	}
}

func TestAccessMatrix(t *testing.T) {
	owner := Principal{UserID: "owner-1", Email: "owner@example.com"}
	collaborator := Principal{UserID: "collab-1", Email: "collab@example.com"}
	stranger := Principal{UserID: "other-1", Email: "other@example.com"}
	anonymous := Principal{}

	note := sharedNote()

	cases := []struct {
		name      string
		principal Principal
		read      bool
		write     bool
		owns      bool
	}{
		{"owner", owner, true, true, true},
		{"collaborator", collaborator, true, true, false},
		{"stranger", stranger, false, false, false},
		{"anonymous", anonymous, false, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanReadNote(note, tc.principal); got != tc.read {
				t.Errorf("CanReadNote = %v, want %v", got, tc.read)
			}
			if got := CanWriteNote(note, tc.principal); got != tc.write {
				t.Errorf("CanWriteNote = %v, want %v", got, tc.write)
			}
			if got := IsNoteOwner(note, tc.principal); got != tc.owns {
				t.Errorf("IsNoteOwner = %v, want %v", got, tc.owns)
			}
		})
	}
}

func TestCollaboratorEmailIsExactMatch(t *testing.T) {
	note := sharedNote()

	// Addresses are lower-cased when stored, so the check stays exact
	upper := Principal{UserID: "collab-1", Email: "COLLAB@EXAMPLE.COM"}
	if CanReadNote(note, upper) {
		t.Error("mixed-case email matched a lower-cased collaborator entry")
	}
}

func TestRequireReadUniformError(t *testing.T) {
	note := sharedNote()
	stranger := Principal{UserID: "other-1", Email: "other@example.com"}

	if err := requireRead(note, stranger); err != ErrNoteNotFound {
		t.Fatalf("requireRead error = %v, want ErrNoteNotFound", err)
	}
}

func TestRequireOwnerUniformError(t *testing.T) {
	note := sharedNote()
	collaborator := Principal{UserID: "collab-1", Email: "collab@example.com"}

	// A collaborator can read but must be refused owner operations with
	// the same error an absent note produces
	if err := requireOwner(note, collaborator); err != ErrNoteNotFound {
		t.Fatalf("requireOwner error = %v, want ErrNoteNotFound", err)
	}
	if err := requireOwner(note, Principal{UserID: "owner-1"}); err != nil {
		t.Fatalf("owner refused: %v", err)
	}
}

func TestAnonymousNeverReadsDirectly(t *testing.T) {
	public := sharedNote()
	public.IsPublic = true
	public.ShareToken = "abcdef0123456789abcdef0123456789"

	// Public visibility grants access only through the share-token path
	if CanReadNote(public, Principal{}) {
		t.Error("anonymous principal passed the direct read check on a public note")
	}
}
