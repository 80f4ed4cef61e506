package jobs_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studyhall/studyhall/internal/content"
	"github.com/studyhall/studyhall/jobs"
	_ "github.com/studyhall/studyhall/testing"
)

func TestContentReindexHandler(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "class_8"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "class_8", "maths.json"), []byte(`{"v":1}`), 0o644))
	store := content.NewStore(base)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := jobs.NewContentReindexHandler(store, logger)
	require.NoError(t, handler(context.Background(), jobs.NewContentReindexTask()))

	doc, err := store.Content(context.Background(), 8, "maths")
	require.NoError(t, err)
	require.JSONEq(t, `{"v":1}`, string(doc))
}

func TestContentReindexHandlerSurfacesBadDocuments(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "broken.json"), []byte(`{`), 0o644))
	store := content.NewStore(base)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := jobs.NewContentReindexHandler(store, logger)
	require.Error(t, handler(context.Background(), jobs.NewContentReindexTask()))
}

func TestTaskNames(t *testing.T) {
	require.Equal(t, jobs.TaskSessionsPurge, jobs.NewSessionsPurgeTask().Type())
	require.Equal(t, jobs.TaskContentReindex, jobs.NewContentReindexTask().Type())
}
