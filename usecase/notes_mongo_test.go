package usecase

import (
	"context"
	"testing"
	"time"

	"main/model"
	"main/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func newNotesService(t *testing.T) (*NotesService, func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx,
		options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Skipf("mongo unavailable: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		t.Skipf("mongo unavailable: %v", err)
	}

	coll := client.Database("tonotes_test").Collection("testServiceNotes")
	repo := &repository.NotesRepo{MongoCollection: coll, EncryptionKey: "service-test-key"}

	cleanup := func() {
		coll.Drop(context.Background())
		client.Disconnect(context.Background())
	}
	return &NotesService{NotesRepo: repo}, cleanup
}

func TestShareLifecycle(t *testing.T) {
	svc, cleanup := newNotesService(t)
	defer cleanup()

	ctx := context.Background()
	owner := Principal{UserID: uuid.New().String(), Email: "owner@example.com"}

	note := &model.Note{Title: "Share me", Content: "link-visible body"}
	if err := svc.CreateNote(ctx, owner, note); err != nil {
		t.Fatal("create failed", err)
	}

	t.Run("PrivateByDefault", func(t *testing.T) {
		if note.IsPublic || note.ShareToken != "" {
			t.Fatalf("fresh note is shared: public=%v token=%q", note.IsPublic, note.ShareToken)
		}
	})

	var firstToken string
	t.Run("ShareAssignsToken", func(t *testing.T) {
		shared, err := svc.SetPublic(ctx, owner, note.ID, true)
		if err != nil {
			t.Fatal("share failed", err)
		}
		if !shared.IsPublic {
			t.Fatal("note not public after share")
		}
		if len(shared.ShareToken) != 32 {
			t.Fatalf("token length = %d, want 32", len(shared.ShareToken))
		}
		firstToken = shared.ShareToken
	})

	t.Run("PublicLookup", func(t *testing.T) {
		got, err := svc.GetPublicNote(ctx, firstToken)
		if err != nil {
			t.Fatal("public lookup failed", err)
		}
		if got.Content != "link-visible body" {
			t.Fatalf("public content = %q", got.Content)
		}
	})

	t.Run("UnshareKeepsTokenButBlocksLookup", func(t *testing.T) {
		private, err := svc.SetPublic(ctx, owner, note.ID, false)
		if err != nil {
			t.Fatal("unshare failed", err)
		}
		if private.ShareToken != firstToken {
			t.Fatalf("token changed on unshare: %q", private.ShareToken)
		}
		if _, err := svc.GetPublicNote(ctx, firstToken); err != ErrNoteNotFound {
			t.Fatalf("private lookup error = %v, want ErrNoteNotFound", err)
		}
	})

	t.Run("ReshareReusesToken", func(t *testing.T) {
		reshared, err := svc.SetPublic(ctx, owner, note.ID, true)
		if err != nil {
			t.Fatal("reshare failed", err)
		}
		if reshared.ShareToken != firstToken {
			t.Fatalf("token changed on reshare: %q", reshared.ShareToken)
		}
		if _, err := svc.GetPublicNote(ctx, firstToken); err != nil {
			t.Fatal("lookup after reshare failed", err)
		}
	})

	t.Run("RegenerateInvalidatesOldLink", func(t *testing.T) {
		regenerated, err := svc.RegenerateShareToken(ctx, owner, note.ID)
		if err != nil {
			t.Fatal("regenerate failed", err)
		}
		if regenerated.ShareToken == firstToken {
			t.Fatal("token unchanged after regeneration")
		}
		if _, err := svc.GetPublicNote(ctx, firstToken); err != ErrNoteNotFound {
			t.Fatalf("old token error = %v, want ErrNoteNotFound", err)
		}
		if _, err := svc.GetPublicNote(ctx, regenerated.ShareToken); err != nil {
			t.Fatal("new token lookup failed", err)
		}
	})

	t.Run("OnlyOwnerManagesSharing", func(t *testing.T) {
		stranger := Principal{UserID: uuid.New().String(), Email: "other@example.com"}
		if _, err := svc.SetPublic(ctx, stranger, note.ID, false); err != ErrNoteNotFound {
			t.Fatalf("stranger share error = %v, want ErrNoteNotFound", err)
		}
	})
}

func TestReorderNotes(t *testing.T) {
	svc, cleanup := newNotesService(t)
	defer cleanup()

	ctx := context.Background()
	owner := Principal{UserID: uuid.New().String(), Email: "owner@example.com"}

	ids := make([]string, 3)
	for i, title := range []string{"alpha", "beta", "gamma"} {
		note := &model.Note{Title: title, Content: "body"}
		if err := svc.CreateNote(ctx, owner, note); err != nil {
			t.Fatal("create failed", err)
		}
		ids[i] = note.ID
	}

	// Display gamma first, then alpha, then beta
	if err := svc.ReorderNotes(ctx, owner, []string{ids[2], ids[0], ids[1]}); err != nil {
		t.Fatal("reorder failed", err)
	}

	orders := make(map[string]int)
	for _, id := range ids {
		note, err := svc.GetNote(ctx, owner, id)
		if err != nil {
			t.Fatal("get failed", err)
		}
		orders[id] = note.Order
	}

	if !(orders[ids[2]] > orders[ids[0]] && orders[ids[0]] > orders[ids[1]]) {
		t.Fatalf("orders do not reflect requested display order: %v", orders)
	}
}

func TestGetNoteUniformNotFound(t *testing.T) {
	svc, cleanup := newNotesService(t)
	defer cleanup()

	ctx := context.Background()
	owner := Principal{UserID: uuid.New().String(), Email: "owner@example.com"}
	stranger := Principal{UserID: uuid.New().String(), Email: "other@example.com"}

	note := &model.Note{Title: "Mine", Content: "body"}
	if err := svc.CreateNote(ctx, owner, note); err != nil {
		t.Fatal("create failed", err)
	}

	// Absent note and foreign note surface the same error
	_, absentErr := svc.GetNote(ctx, owner, uuid.New().String())
	_, foreignErr := svc.GetNote(ctx, stranger, note.ID)

	if absentErr != ErrNoteNotFound {
		t.Fatalf("absent error = %v, want ErrNoteNotFound", absentErr)
	}
	if foreignErr != absentErr {
		t.Fatalf("foreign error %v differs from absent error %v", foreignErr, absentErr)
	}
}
