package repository

import (
	"log"

	"main/model"
	"main/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Decryption failures surface to clients as garbled content, never as
// errors; this counter is where they become visible in aggregate.
var contentDecryptFailures = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "note_content_decrypt_failures_total",
		Help: "Total number of note reads whose content failed to decrypt",
	},
)

// Explicit wrappers around the cipher, applied at every repository
// write/read that touches note content. Writes encrypt before the document
// reaches Mongo, reads decrypt before the note leaves this layer. Failures
// are tolerated on both sides: an unencryptable value is stored as-is, an
// undecryptable value is returned as-is. Neither ever fails the operation.

// EncryptNoteContent replaces plaintext content with ciphertext. Content
// that is empty or already ciphertext-shaped is left untouched, which keeps
// re-saves of stored ciphertext from being encrypted twice.
func EncryptNoteContent(note *model.Note, key string) {
	if note == nil || note.Content == "" {
		return
	}
	if services.LooksEncrypted(note.Content) {
		return
	}

	encrypted, err := services.Encrypt(note.Content, key)
	if err != nil {
		log.Printf("warning: failed to encrypt content for note %s, storing as provided: %v", note.ID, err)
		return
	}
	note.Content = encrypted
}

// DecryptNoteContent replaces ciphertext-shaped content with plaintext. On
// failure the stored value is kept and a warning logged; the client sees
// garbled content rather than an error.
func DecryptNoteContent(note *model.Note, key string) {
	if note == nil || !services.LooksEncrypted(note.Content) {
		return
	}

	decrypted, err := services.Decrypt(note.Content, key)
	if err != nil {
		contentDecryptFailures.Inc()
		log.Printf("warning: failed to decrypt content for note %s, returning stored value: %v", note.ID, err)
		return
	}
	// Decrypt returns its input when it could not transform the data
	if decrypted == note.Content {
		contentDecryptFailures.Inc()
		log.Printf("warning: decryption left content for note %s unchanged, returning stored value", note.ID)
		return
	}
	note.Content = decrypted
}

// DecryptNotesContent applies DecryptNoteContent to every note of a bulk
// read. One bad note never blocks the rest of the result.
func DecryptNotesContent(notes []*model.Note, key string) {
	for _, note := range notes {
		DecryptNoteContent(note, key)
	}
}
