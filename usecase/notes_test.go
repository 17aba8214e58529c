package usecase

import (
	"strings"
	"testing"

	"main/model"
)

func TestOrderForPosition(t *testing.T) {
	// First id in the list displays first, so it must rank highest
	ids := []string{"n1", "n2", "n3"}
	o1 := OrderForPosition(0, len(ids))
	o2 := OrderForPosition(1, len(ids))
	o3 := OrderForPosition(2, len(ids))

	if !(o1 > o2 && o2 > o3) {
		t.Fatalf("orders not strictly descending: %d, %d, %d", o1, o2, o3)
	}
	if o3 != 0 {
		t.Fatalf("last position order = %d, want 0", o3)
	}
	if o1 != len(ids)-1 {
		t.Fatalf("first position order = %d, want %d", o1, len(ids)-1)
	}
}

func TestOrderForPositionSingle(t *testing.T) {
	if got := OrderForPosition(0, 1); got != 0 {
		t.Fatalf("single-note order = %d, want 0", got)
	}
}

func TestValidateNote(t *testing.T) {
	svc := &NotesService{}

	cases := []struct {
		name    string
		note    model.Note
		wantErr bool
	}{
		{"valid", model.Note{Title: "A title", Content: "some content"}, false},
		{"missing title", model.Note{Content: "content"}, true},
		{"whitespace title", model.Note{Title: "   ", Content: "content"}, true},
		{"title too long", model.Note{Title: strings.Repeat("a", 201), Content: "content"}, true},
		{"missing content", model.Note{Title: "title"}, true},
		{"content too long", model.Note{Title: "title", Content: strings.Repeat("a", 50001)}, true},
		{"too many tags", model.Note{Title: "title", Content: "content", Tags: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"}}, true},
		{"bad reminder time", model.Note{Title: "title", Content: "content", Reminders: []model.Reminder{{DateTime: "tomorrow"}}}, true},
		{"valid reminder", model.Note{Title: "title", Content: "content", Reminders: []model.Reminder{{DateTime: "2026-09-01T10:00:00Z"}}}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.validateNote(&tc.note)
			if tc.wantErr && err == nil {
				t.Fatal("expected an error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateNoteNormalizesTags(t *testing.T) {
	svc := &NotesService{}
	note := model.Note{
		Title:   "title",
		Content: "content",
		Tags:    []string{" work ", "", "ideas", "   "},
	}

	if err := svc.validateNote(&note); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(note.Tags) != 2 || note.Tags[0] != "work" || note.Tags[1] != "ideas" {
		t.Fatalf("tags not normalized: %v", note.Tags)
	}
}

func TestValidateNoteAssignsReminderIDs(t *testing.T) {
	svc := &NotesService{}
	note := model.Note{
		Title:   "title",
		Content: "content",
		Reminders: []model.Reminder{
			{DateTime: "2026-09-01T10:00:00Z", Text: "check in"},
		},
	}

	if err := svc.validateNote(&note); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.Reminders[0].ID == "" {
		t.Fatal("reminder id was not assigned")
	}
}
