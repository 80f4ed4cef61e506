package content_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/studyhall/studyhall/internal/content"
	_ "github.com/studyhall/studyhall/testing"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := fixtureStore(t)
	handler := content.NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), store)
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestGetContent(t *testing.T) {
	router := newTestRouter(t)

	res := get(t, router, "/class/8/maths/content")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if ct := res.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(res.Body.String(), "Algebra") {
		t.Fatalf("unexpected body: %s", res.Body.String())
	}
}

func TestGetContentNotFound(t *testing.T) {
	router := newTestRouter(t)

	res := get(t, router, "/class/8/history/content")
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "History content for Class 8 not found") {
		t.Fatalf("unexpected body: %s", res.Body.String())
	}
}

func TestGetQuiz(t *testing.T) {
	router := newTestRouter(t)

	res := get(t, router, "/class/8/maths/quiz")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "2+2?") {
		t.Fatalf("unexpected body: %s", res.Body.String())
	}

	res = get(t, router, "/class/8/science/quiz")
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "Science quiz for Class 8 not found") {
		t.Fatalf("unexpected body: %s", res.Body.String())
	}
}

func TestGetContentNonNumericClass(t *testing.T) {
	router := newTestRouter(t)

	// The route only matches numeric class segments.
	res := get(t, router, "/class/eight/maths/content")
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestGetImage(t *testing.T) {
	router := newTestRouter(t)

	res := get(t, router, "/image/8/maths")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	body := res.Body.String()
	for _, want := range []string{`"class":"8"`, `"subject":"maths"`, `"image_url":"https://img/8/maths.png"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in body: %s", want, body)
		}
	}

	res = get(t, router, "/image/8/science")
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "No image found for 8 - science") {
		t.Fatalf("unexpected body: %s", res.Body.String())
	}
}
