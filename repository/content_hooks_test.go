package repository

import (
	"strings"
	"testing"

	"main/model"
	"main/services"
)

const hookTestKey = "content-hooks-test-key"

func TestEncryptNoteContent(t *testing.T) {
	note := &model.Note{ID: "n1", Content: "my secret note"}

	EncryptNoteContent(note, hookTestKey)

	if note.Content == "my secret note" {
		t.Fatal("content was not encrypted")
	}
	if !services.LooksEncrypted(note.Content) {
		t.Fatalf("stored content %q is not ciphertext-shaped", note.Content)
	}
}

func TestEncryptNoteContentSkipsEmpty(t *testing.T) {
	note := &model.Note{ID: "n1", Content: ""}
	EncryptNoteContent(note, hookTestKey)
	if note.Content != "" {
		t.Fatalf("empty content was modified to %q", note.Content)
	}
}

func TestEncryptNoteContentIdempotentSkip(t *testing.T) {
	note := &model.Note{ID: "n1", Content: "write me once"}

	EncryptNoteContent(note, hookTestKey)
	firstSave := note.Content

	// A re-save of the already-encrypted value must not encrypt again
	EncryptNoteContent(note, hookTestKey)
	if note.Content != firstSave {
		t.Fatal("already-encrypted content was encrypted a second time")
	}
}

func TestDecryptNoteContentRoundTrip(t *testing.T) {
	note := &model.Note{ID: "n1", Content: "round trip body"}
	EncryptNoteContent(note, hookTestKey)

	DecryptNoteContent(note, hookTestKey)
	if note.Content != "round trip body" {
		t.Fatalf("round trip mismatch: %q", note.Content)
	}
}

func TestDecryptNoteContentWrongKeyKeepsStoredValue(t *testing.T) {
	note := &model.Note{ID: "n1", Content: "under the right key"}
	EncryptNoteContent(note, hookTestKey)

	// A wrong key can occasionally unpad into valid UTF-8 garbage, so the
	// only firm invariant is that the plaintext never comes back.
	DecryptNoteContent(note, "some-other-key")
	if note.Content == "under the right key" {
		t.Fatal("wrong key recovered the plaintext")
	}
}

func TestDecryptNoteContentLeavesPlaintextAlone(t *testing.T) {
	note := &model.Note{ID: "n1", Content: "never encrypted"}
	DecryptNoteContent(note, hookTestKey)
	if note.Content != "never encrypted" {
		t.Fatalf("plaintext was modified to %q", note.Content)
	}
}

func TestLiteralPrefixCollision(t *testing.T) {
	// A note whose content genuinely starts with the ciphertext marker is
	// misclassified as already encrypted: the write hook skips it and the
	// read hook fails to decrypt it, surfacing the literal text unchanged.
	literal := "U2FsdGVk... this is actually my plaintext note"
	note := &model.Note{ID: "n1", Content: literal}

	EncryptNoteContent(note, hookTestKey)
	if note.Content != literal {
		t.Fatal("literal-prefix plaintext was encrypted on write")
	}

	DecryptNoteContent(note, hookTestKey)
	if note.Content != literal {
		t.Fatalf("literal-prefix plaintext was altered on read: %q", note.Content)
	}
}

func TestDecryptNotesContentToleratesBadNote(t *testing.T) {
	good := &model.Note{ID: "good", Content: "readable"}
	EncryptNoteContent(good, hookTestKey)

	bad := &model.Note{ID: "bad", Content: "U2FsdGVk" + strings.Repeat("x", 40)}

	DecryptNotesContent([]*model.Note{good, bad}, hookTestKey)

	if good.Content != "readable" {
		t.Fatalf("good note not decrypted: %q", good.Content)
	}
	if !strings.HasPrefix(bad.Content, "U2FsdGVk") {
		t.Fatalf("bad note content was altered: %q", bad.Content)
	}
}
