package dto

import (
	"time"

	"main/model"
)

type NoteLink struct {
	Href   string `json:"href"`
	Method string `json:"method,omitempty"` // Optional: GET, POST, PUT, PATCH, DELETE
}

type NoteResponse struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Content       string           `json:"content"`
	Order         int              `json:"order"`
	Color         string           `json:"color,omitempty"`
	Tags          []string         `json:"tags,omitempty"`
	Reminders     []model.Reminder `json:"reminders,omitempty"`
	IsPinned      bool             `json:"is_pinned"`
	IsArchived    bool             `json:"is_archived"`
	Collaborators []string         `json:"collaborators,omitempty"`
	IsPublic      bool             `json:"is_public"`
	ShareURL      string           `json:"share_url,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// PublicNoteResponse is the reduced projection served to anonymous
// share-link holders. It deliberately has no owner id, collaborators or
// order fields; a public link must not reveal who owns or works on a note.
type PublicNoteResponse struct {
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Color      string    `json:"color,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	IsPublic   bool      `json:"is_public"`
	ShareToken string    `json:"share_token"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type NotesPageResponse struct {
	Notes       []NoteResponse `json:"notes"`
	TotalCount  int64          `json:"total_count"`
	PageCount   int64          `json:"page_count"`
	CurrentPage int            `json:"current_page"`
}

// ShareURL composes the public link for a note that has a token. The
// public path segment is fixed as /public/.
func ShareURL(baseURL, shareToken string) string {
	if shareToken == "" {
		return ""
	}
	return baseURL + "/public/" + shareToken
}

// ToNoteResponse renders a note for its owner or a collaborator. The share
// URL is only included while the note is public.
func ToNoteResponse(note *model.Note, baseURL string) NoteResponse {
	response := NoteResponse{
		ID:            note.ID,
		Title:         note.Title,
		Content:       note.Content,
		Order:         note.Order,
		Color:         note.Color,
		Tags:          note.Tags,
		Reminders:     note.Reminders,
		IsPinned:      note.IsPinned,
		IsArchived:    note.IsArchived,
		Collaborators: note.Collaborators,
		IsPublic:      note.IsPublic,
		CreatedAt:     note.CreatedAt,
		UpdatedAt:     note.UpdatedAt,
	}

	if note.IsPublic {
		response.ShareURL = ShareURL(baseURL, note.ShareToken)
	}

	return response
}

// ToPublicNoteResponse renders the anonymous projection.
func ToPublicNoteResponse(note *model.Note) PublicNoteResponse {
	return PublicNoteResponse{
		Title:      note.Title,
		Content:    note.Content,
		Color:      note.Color,
		Tags:       note.Tags,
		IsPublic:   note.IsPublic,
		ShareToken: note.ShareToken,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}
}

func NewNotesPageResponse(notes []*model.Note, total int64, page, pageSize int, baseURL string) *NotesPageResponse {
	responses := make([]NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = ToNoteResponse(note, baseURL)
	}

	pageCount := int64(1)
	if pageSize > 0 {
		pageCount = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	if page < 1 {
		page = 1
	}

	return &NotesPageResponse{
		Notes:       responses,
		TotalCount:  total,
		PageCount:   pageCount,
		CurrentPage: page,
	}
}
