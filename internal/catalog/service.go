package catalog

import (
	"context"
	"errors"

	"github.com/studyhall/studyhall/internal/platform/httpx"
)

// Service handles catalog business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateVideo(ctx context.Context, video Video) (int64, error) {
	return s.repo.CreateVideo(ctx, video)
}

func (s *Service) ListVideos(ctx context.Context) ([]Video, error) {
	return s.repo.ListVideos(ctx)
}

func (s *Service) DeleteVideo(ctx context.Context, id int64) error {
	return notFoundAs(s.repo.DeleteVideo(ctx, id), "Video not found")
}

func (s *Service) CreateQuiz(ctx context.Context, quiz Quiz) (int64, error) {
	return s.repo.CreateQuiz(ctx, quiz)
}

func (s *Service) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	return s.repo.ListQuizzes(ctx)
}

func (s *Service) DeleteQuiz(ctx context.Context, id int64) error {
	return notFoundAs(s.repo.DeleteQuiz(ctx, id), "Quiz not found")
}

func (s *Service) CreateTest(ctx context.Context, test Test) (int64, error) {
	return s.repo.CreateTest(ctx, test)
}

func (s *Service) ListTests(ctx context.Context) ([]Test, error) {
	return s.repo.ListTests(ctx)
}

func (s *Service) DeleteTest(ctx context.Context, id int64) error {
	return notFoundAs(s.repo.DeleteTest(ctx, id), "Test not found")
}

func (s *Service) CreateLMSContent(ctx context.Context, content LMSContent) (int64, error) {
	return s.repo.CreateLMSContent(ctx, content)
}

func (s *Service) ListLMSContent(ctx context.Context) ([]LMSContent, error) {
	return s.repo.ListLMSContent(ctx)
}

func (s *Service) DeleteLMSContent(ctx context.Context, id int64) error {
	return notFoundAs(s.repo.DeleteLMSContent(ctx, id), "Content not found")
}

func notFoundAs(err error, message string) error {
	if errors.Is(err, httpx.ErrNotFound) {
		return httpx.Message(httpx.ErrNotFound, message)
	}
	return err
}
