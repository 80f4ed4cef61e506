package content_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/studyhall/studyhall/internal/content"
	"github.com/studyhall/studyhall/internal/platform/httpx"
	_ "github.com/studyhall/studyhall/testing"
)

func writeFixture(t *testing.T, base, rel, data string) {
	t.Helper()
	path := filepath.Join(base, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func fixtureStore(t *testing.T) *content.Store {
	t.Helper()
	base := t.TempDir()
	writeFixture(t, base, "class_8/maths.json", `{"chapters":["Algebra","Geometry"]}`)
	writeFixture(t, base, "class_8/quiz/maths_quiz.json", `{"questions":[{"q":"2+2?"}]}`)
	writeFixture(t, base, "images/images.json",
		`{"class_subject_images":{"8":{"maths":"https://img/8/maths.png","science":""}}}`)
	return content.NewStore(base)
}

func TestContentLookup(t *testing.T) {
	store := fixtureStore(t)
	ctx := context.Background()

	doc, err := store.Content(ctx, 8, "maths")
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	if string(doc) != `{"chapters":["Algebra","Geometry"]}` {
		t.Fatalf("unexpected document: %s", doc)
	}

	if _, err := store.Content(ctx, 8, "history"); err != httpx.ErrNotFound {
		t.Fatalf("expected not found for missing subject, got %v", err)
	}
	if _, err := store.Content(ctx, 9, "maths"); err != httpx.ErrNotFound {
		t.Fatalf("expected not found for missing class, got %v", err)
	}
}

func TestContentRejectsTraversal(t *testing.T) {
	store := fixtureStore(t)
	ctx := context.Background()

	for _, subject := range []string{"../images/images", "..", "Maths", "ma ths", "maths.json"} {
		if _, err := store.Content(ctx, 8, subject); err != httpx.ErrNotFound {
			t.Fatalf("subject %q: expected not found, got %v", subject, err)
		}
	}
}

func TestQuizLookup(t *testing.T) {
	store := fixtureStore(t)
	ctx := context.Background()

	doc, err := store.Quiz(ctx, 8, "maths")
	if err != nil {
		t.Fatalf("quiz: %v", err)
	}
	if string(doc) != `{"questions":[{"q":"2+2?"}]}` {
		t.Fatalf("unexpected document: %s", doc)
	}
	if _, err := store.Quiz(ctx, 8, "science"); err != httpx.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestImageURL(t *testing.T) {
	store := fixtureStore(t)
	ctx := context.Background()

	url, err := store.ImageURL(ctx, "8", "maths")
	if err != nil {
		t.Fatalf("image: %v", err)
	}
	if url != "https://img/8/maths.png" {
		t.Fatalf("unexpected url: %s", url)
	}

	// Empty entries and missing keys both read as absent.
	if _, err := store.ImageURL(ctx, "8", "science"); err != httpx.ErrNotFound {
		t.Fatalf("expected not found for empty entry, got %v", err)
	}
	if _, err := store.ImageURL(ctx, "9", "maths"); err != httpx.ErrNotFound {
		t.Fatalf("expected not found for missing class, got %v", err)
	}
}

func TestReindexWarmsCache(t *testing.T) {
	base := t.TempDir()
	writeFixture(t, base, "class_8/maths.json", `{"v":1}`)
	writeFixture(t, base, "images/images.json", `{"class_subject_images":{}}`)
	store := content.NewStore(base)
	ctx := context.Background()

	n, err := store.Reindex(ctx)
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 documents, got %d", n)
	}

	// The cached copy survives the file disappearing.
	if err := os.Remove(filepath.Join(base, "class_8", "maths.json")); err != nil {
		t.Fatal(err)
	}
	doc, err := store.Content(ctx, 8, "maths")
	if err != nil {
		t.Fatalf("cached content: %v", err)
	}
	if string(doc) != `{"v":1}` {
		t.Fatalf("unexpected document: %s", doc)
	}

	// A fresh reindex observes the deletion.
	if _, err := store.Reindex(ctx); err != nil {
		t.Fatalf("second reindex: %v", err)
	}
	if _, err := store.Content(ctx, 8, "maths"); err != httpx.ErrNotFound {
		t.Fatalf("expected not found after reindex, got %v", err)
	}
}

func TestReindexRejectsInvalidJSON(t *testing.T) {
	base := t.TempDir()
	writeFixture(t, base, "class_8/maths.json", `{"broken":`)
	store := content.NewStore(base)

	if _, err := store.Reindex(context.Background()); err == nil {
		t.Fatal("expected error for invalid document")
	}
}
