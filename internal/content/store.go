// Package content serves the read-only class/subject documents and the
// image lookup table from an on-disk content directory.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/studyhall/studyhall/internal/platform/httpx"
)

// subjectPattern bounds what may appear in a file name derived from the
// request path.
var subjectPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Store reads content documents from a directory tree laid out as
// class_<n>/<subject>.json, class_<n>/quiz/<subject>_quiz.json and
// images/images.json. Loads are cached in process and deduplicated with
// singleflight so a burst of identical requests hits the disk once.
type Store struct {
	base  string
	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]json.RawMessage
}

// NewStore constructs a Store rooted at base.
func NewStore(base string) *Store {
	return &Store{
		base:  base,
		cache: make(map[string]json.RawMessage),
	}
}

// Content returns the subject content document for a class.
func (s *Store) Content(ctx context.Context, classNumber int, subject string) (json.RawMessage, error) {
	if !subjectPattern.MatchString(subject) {
		return nil, httpx.ErrNotFound
	}
	rel := filepath.Join("class_"+strconv.Itoa(classNumber), subject+".json")
	return s.load(ctx, rel)
}

// Quiz returns the subject quiz document for a class.
func (s *Store) Quiz(ctx context.Context, classNumber int, subject string) (json.RawMessage, error) {
	if !subjectPattern.MatchString(subject) {
		return nil, httpx.ErrNotFound
	}
	rel := filepath.Join("class_"+strconv.Itoa(classNumber), "quiz", subject+"_quiz.json")
	return s.load(ctx, rel)
}

type imageIndex struct {
	ClassSubjectImages map[string]map[string]string `json:"class_subject_images"`
}

// ImageURL resolves the image URL for a class/subject pair from
// images/images.json.
func (s *Store) ImageURL(ctx context.Context, className, subject string) (string, error) {
	data, err := s.load(ctx, filepath.Join("images", "images.json"))
	if err != nil {
		return "", err
	}
	var index imageIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return "", fmt.Errorf("content: parse image index: %w", err)
	}
	if url, ok := index.ClassSubjectImages[className][subject]; ok && url != "" {
		return url, nil
	}
	return "", httpx.ErrNotFound
}

// Reindex drops the cache and warms it with every JSON document under
// the content root. Returns the number of documents loaded.
func (s *Store) Reindex(ctx context.Context) (int, error) {
	fresh := make(map[string]json.RawMessage)
	err := filepath.WalkDir(s.base, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !json.Valid(data) {
			return fmt.Errorf("content: invalid JSON in %s", path)
		}
		rel, err := filepath.Rel(s.base, path)
		if err != nil {
			return err
		}
		fresh[rel] = data
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.cache = fresh
	s.mu.Unlock()
	return len(fresh), nil
}

func (s *Store) load(ctx context.Context, rel string) (json.RawMessage, error) {
	s.mu.RLock()
	cached, ok := s.cache[rel]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	resultChan := s.group.DoChan(rel, func() (any, error) {
		data, err := os.ReadFile(filepath.Join(s.base, rel))
		if err != nil {
			if os.IsNotExist(err) {
				return nil, httpx.ErrNotFound
			}
			return nil, fmt.Errorf("content: read %s: %w", rel, err)
		}
		if !json.Valid(data) {
			return nil, fmt.Errorf("content: invalid JSON in %s", rel)
		}
		doc := json.RawMessage(data)
		s.mu.Lock()
		s.cache[rel] = doc
		s.mu.Unlock()
		return doc, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(json.RawMessage), nil
	}
}
