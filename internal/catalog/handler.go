package catalog

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/studyhall/studyhall/internal/platform/httpx"
	"github.com/studyhall/studyhall/internal/shared"
)

// Handler wires the admin CRUD endpoints. All routes are mounted behind
// the admin gate; identity comes from the session in the request
// context, never from the request body.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers catalog routes on the provided (gated) router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/videos", h.createVideo)
	r.Get("/videos", h.listVideos)
	r.Delete("/videos/{id}", h.deleteVideo)

	r.Post("/quizzes", h.createQuiz)
	r.Get("/quizzes", h.listQuizzes)
	r.Delete("/quizzes/{id}", h.deleteQuiz)

	r.Post("/tests", h.createTest)
	r.Get("/tests", h.listTests)
	r.Delete("/tests/{id}", h.deleteTest)

	r.Post("/lms-content", h.createLMSContent)
	r.Get("/lms-content", h.listLMSContent)
	r.Delete("/lms-content/{id}", h.deleteLMSContent)
}

type messageResponse struct {
	Message string `json:"message"`
}

type videoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
}

type videoResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
}

type questionPayload struct {
	ID            int64  `json:"id,omitempty"`
	QuestionText  string `json:"question_text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption string `json:"correct_option"`
}

type quizRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	TotalMarks  int               `json:"total_marks"`
	Questions   []questionPayload `json:"questions"`
}

type quizResponse struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	TotalMarks  int               `json:"total_marks"`
	Questions   []questionPayload `json:"questions"`
}

type testRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	MaxMarks    int    `json:"max_marks"`
}

type testResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	MaxMarks    int    `json:"max_marks"`
}

type lmsContentRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

type lmsContentResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

func (h *Handler) createVideo(w http.ResponseWriter, r *http.Request) {
	var req videoRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if req.Title == "" || req.VideoURL == "" {
		httpx.Error(w, http.StatusBadRequest, "Title and Video URL are required")
		return
	}
	if _, err := h.service.CreateVideo(r.Context(), Video{
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
	}); err != nil {
		h.respondError(w, "create video", err)
		return
	}
	h.logAdminAction(r, "video created", req.Title)
	httpx.JSON(w, http.StatusCreated, messageResponse{Message: "Video created successfully"})
}

func (h *Handler) listVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.service.ListVideos(r.Context())
	if err != nil {
		h.respondError(w, "list videos", err)
		return
	}
	out := make([]videoResponse, len(videos))
	for i, v := range videos {
		out[i] = videoResponse{ID: v.ID, Title: v.Title, Description: v.Description, VideoURL: v.VideoURL}
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) deleteVideo(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteVideo, "Video deleted successfully")
}

func (h *Handler) createQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if req.Title == "" || req.TotalMarks == 0 {
		httpx.Error(w, http.StatusBadRequest, "Title and Total Marks are required")
		return
	}
	quiz := Quiz{Title: req.Title, Description: req.Description, TotalMarks: req.TotalMarks}
	for _, q := range req.Questions {
		quiz.Questions = append(quiz.Questions, Question{
			QuestionText:  q.QuestionText,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			CorrectOption: q.CorrectOption,
		})
	}
	if _, err := h.service.CreateQuiz(r.Context(), quiz); err != nil {
		h.respondError(w, "create quiz", err)
		return
	}
	h.logAdminAction(r, "quiz created", req.Title)
	httpx.JSON(w, http.StatusCreated, messageResponse{Message: "Quiz and Questions created successfully"})
}

func (h *Handler) listQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.service.ListQuizzes(r.Context())
	if err != nil {
		h.respondError(w, "list quizzes", err)
		return
	}
	out := make([]quizResponse, len(quizzes))
	for i, quiz := range quizzes {
		questions := make([]questionPayload, len(quiz.Questions))
		for j, q := range quiz.Questions {
			questions[j] = questionPayload{
				ID:            q.ID,
				QuestionText:  q.QuestionText,
				OptionA:       q.OptionA,
				OptionB:       q.OptionB,
				OptionC:       q.OptionC,
				OptionD:       q.OptionD,
				CorrectOption: q.CorrectOption,
			}
		}
		out[i] = quizResponse{
			ID:          quiz.ID,
			Title:       quiz.Title,
			Description: quiz.Description,
			TotalMarks:  quiz.TotalMarks,
			Questions:   questions,
		}
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteQuiz, "Quiz deleted successfully")
}

func (h *Handler) createTest(w http.ResponseWriter, r *http.Request) {
	var req testRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if req.Title == "" || req.MaxMarks == 0 {
		httpx.Error(w, http.StatusBadRequest, "Title and Max Marks are required")
		return
	}
	if _, err := h.service.CreateTest(r.Context(), Test{
		Title:       req.Title,
		Description: req.Description,
		MaxMarks:    req.MaxMarks,
	}); err != nil {
		h.respondError(w, "create test", err)
		return
	}
	h.logAdminAction(r, "test created", req.Title)
	httpx.JSON(w, http.StatusCreated, messageResponse{Message: "Test created successfully"})
}

func (h *Handler) listTests(w http.ResponseWriter, r *http.Request) {
	tests, err := h.service.ListTests(r.Context())
	if err != nil {
		h.respondError(w, "list tests", err)
		return
	}
	out := make([]testResponse, len(tests))
	for i, t := range tests {
		out[i] = testResponse{ID: t.ID, Title: t.Title, Description: t.Description, MaxMarks: t.MaxMarks}
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) deleteTest(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteTest, "Test deleted successfully")
}

func (h *Handler) createLMSContent(w http.ResponseWriter, r *http.Request) {
	var req lmsContentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if req.Title == "" || req.Content == "" || req.ContentType == "" {
		httpx.Error(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if _, err := h.service.CreateLMSContent(r.Context(), LMSContent{
		Title:       req.Title,
		Content:     req.Content,
		ContentType: req.ContentType,
	}); err != nil {
		h.respondError(w, "create lms content", err)
		return
	}
	h.logAdminAction(r, "lms content created", req.Title)
	httpx.JSON(w, http.StatusCreated, messageResponse{Message: "LMS Content created successfully"})
}

func (h *Handler) listLMSContent(w http.ResponseWriter, r *http.Request) {
	contents, err := h.service.ListLMSContent(r.Context())
	if err != nil {
		h.respondError(w, "list lms content", err)
		return
	}
	out := make([]lmsContentResponse, len(contents))
	for i, c := range contents {
		out[i] = lmsContentResponse{ID: c.ID, Title: c.Title, Content: c.Content, ContentType: c.ContentType}
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) deleteLMSContent(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, h.service.DeleteLMSContent, "LMS Content deleted successfully")
}

func (h *Handler) deleteByID(w http.ResponseWriter, r *http.Request, del func(ctx context.Context, id int64) error, message string) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Error(w, http.StatusNotFound, "Not found")
		return
	}
	if err := del(r.Context(), id); err != nil {
		h.respondError(w, "delete record", err)
		return
	}
	httpx.JSON(w, http.StatusOK, messageResponse{Message: message})
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	if !httpx.IsClassified(err) {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}

func (h *Handler) logAdminAction(r *http.Request, action, title string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		h.logger.Info(action, slog.Int64("admin_id", sess.AccountID), slog.String("title", title))
	}
}
