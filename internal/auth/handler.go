package auth

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/studyhall/studyhall/internal/platform/httpx"
	"github.com/studyhall/studyhall/internal/shared"
)

// Handler wires HTTP endpoints for user registration and login.
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

// MountRoutes registers user auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Get("/user/{id}", h.getUser)
}

type registerRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Age         int    `json:"age" validate:"required,gt=0"`
	UserClass   string `json:"user_class" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,strongpw"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID          int64  `json:"id"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Age         int    `json:"age"`
	Class       string `json:"class"`
	Email       string `json:"email"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

func publicUser(user *User) userResponse {
	return userResponse{
		ID:          user.ID,
		FullName:    user.FullName,
		PhoneNumber: user.PhoneNumber,
		Age:         user.Age,
		Class:       user.Class,
		Email:       user.Email,
	}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, registerValidationMessage(err))
		return
	}

	if _, err := h.service.Register(r.Context(), RegisterInput{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Age:         req.Age,
		Class:       req.UserClass,
		Email:       req.Email,
		Password:    req.Password,
	}); err != nil {
		h.respondError(w, "register user", err)
		return
	}

	httpx.JSON(w, http.StatusCreated, messageResponse{Message: "User registered successfully"})
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

	user, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(w, "login", err)
		return
	}

	sess, err := h.sessions.Issue(r.Context(), w, user.ID, shared.RoleUser)
	if err != nil {
		h.logger.Error("issue session", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	expiresAt := time.Now().Add(h.sessions.TTL())
	if err := h.service.RecordSession(r.Context(), sess.ID, user.ID, expiresAt, r.RemoteAddr, r.UserAgent()); err != nil {
		h.logger.Warn("record session", slog.Any("error", err))
	}

	httpx.JSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		User:    publicUser(user),
	})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Error(w, http.StatusNotFound, "User not found")
		return
	}
	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		h.respondError(w, "get user", err)
		return
	}
	httpx.JSON(w, http.StatusOK, publicUser(user))
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	if !httpx.IsClassified(err) {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}

func registerValidationMessage(err error) string {
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
