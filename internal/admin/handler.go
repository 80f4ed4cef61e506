package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/studyhall/studyhall/internal/platform/httpx"
	"github.com/studyhall/studyhall/internal/shared"
)

// Handler wires HTTP endpoints for admin registration, login and logout.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	sessions *shared.SessionManager
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, sessions *shared.SessionManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:   logger,
		service:  service,
		sessions: sessions,
		validate: shared.NewValidator(),
	}
}

// MountRoutes registers admin auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strongpw"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type adminResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Message string        `json:"message"`
	Admin   adminResponse `json:"admin"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if _, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
		if errors.Is(err, ErrAlreadyRegistered) {
			httpx.Error(w, http.StatusBadRequest, "Admin already registered")
			return
		}
		h.logger.Error("register admin", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, messageResponse{Message: "Admin registered successfully"})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, loginValidationMessage(err))
		return
	}

	admin, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if !httpx.IsClassified(err) {
			h.logger.Error("admin login", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}

	sess, err := h.sessions.Issue(r.Context(), w, admin.ID, shared.RoleAdmin)
	if err != nil {
		h.logger.Error("issue admin session", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	expiresAt := time.Now().Add(h.sessions.TTL())
	if err := h.service.RecordSession(r.Context(), sess.ID, admin.ID, expiresAt, r.RemoteAddr, r.UserAgent()); err != nil {
		h.logger.Warn("record admin session", slog.Any("error", err))
	}

	httpx.JSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		Admin:   adminResponse{ID: admin.ID, Username: admin.Username, Email: admin.Email},
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if sess, err := h.sessions.Resolve(r.Context(), r); err == nil {
		if err := h.service.RemoveSession(r.Context(), sess.ID); err != nil {
			h.logger.Warn("remove session record", slog.Any("error", err))
		}
	}
	// Clear the artifact even when it no longer resolves.
	if err := h.sessions.Destroy(r.Context(), w, h.sessions.Token(r)); err != nil {
		h.logger.Warn("destroy session", slog.Any("error", err))
	}
	httpx.JSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
}

func validationMessage(err error) string {
	for _, fieldErr := range asFieldErrors(err) {
		switch fieldErr.Tag() {
		case "email":
			return "Invalid email format"
		case "strongpw":
			return "Password must meet the requirements"
		}
	}
	return "All fields are required"
}

func loginValidationMessage(err error) string {
	for _, fieldErr := range asFieldErrors(err) {
		if fieldErr.Tag() == "email" {
			return "Invalid email format"
		}
	}
	return "Email and Password are required"
}

func asFieldErrors(err error) validator.ValidationErrors {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		return fieldErrs
	}
	return nil
}
