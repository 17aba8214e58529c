package model

import (
	"time"
)

// Reminder is a single dated reminder attached to a note. Entries are
// independent of each other; DateTime is an ISO-8601 timestamp string.
type Reminder struct {
	ID       string `bson:"id" json:"id"`
	DateTime string `bson:"date_time" json:"date_time" binding:"required"`
	Text     string `bson:"text" json:"text" binding:"required"`
}

type Note struct {
	ID      string `bson:"_id,omitempty" json:"id"`
	UserID  string `bson:"user_id" json:"user_id"`
	Title   string `bson:"title" json:"title" binding:"required"`
	Content string `bson:"content" json:"content" binding:"required"`
	// Order is the display rank among the owner's notes, higher first.
	// Assigned as max+1 on creation, rewritten by reorder.
	Order      int        `bson:"order" json:"order"`
	Color      string     `bson:"color,omitempty" json:"color,omitempty" binding:"omitempty,hexcolor"`
	Tags       []string   `bson:"tags,omitempty" json:"tags,omitempty"`
	Reminders  []Reminder `bson:"reminders,omitempty" json:"reminders,omitempty"`
	IsPinned   bool       `bson:"is_pinned" json:"is_pinned"`
	IsArchived bool       `bson:"is_archived" json:"is_archived"`
	// Collaborators holds the emails granted read/write (never delete)
	// access. Insertion order is kept for display, membership is a set test.
	Collaborators []string `bson:"collaborators,omitempty" json:"collaborators,omitempty"`
	IsPublic      bool     `bson:"is_public" json:"is_public"`
	// ShareToken is set the first time the note goes public and survives
	// later public/private toggles until explicitly regenerated.
	ShareToken  string    `bson:"share_token,omitempty" json:"share_token,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
	SearchScore float64   `bson:"score,omitempty" json:"search_score,omitempty"`
}

// HasCollaborator reports whether email is in the collaborator set.
// Exact string match; emails are lower-cased when added.
func (n *Note) HasCollaborator(email string) bool {
	for _, c := range n.Collaborators {
		if c == email {
			return true
		}
	}
	return false
}
