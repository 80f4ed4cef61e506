package admin_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/studyhall/studyhall/internal/admin"
	"github.com/studyhall/studyhall/internal/platform/httpx"
	"github.com/studyhall/studyhall/internal/shared"
	_ "github.com/studyhall/studyhall/testing"
)

type stubRepo struct {
	admin    *admin.Admin
	sessions map[string]int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{sessions: make(map[string]int64)}
}

func (s *stubRepo) CreateAdmin(ctx context.Context, a admin.Admin) (int64, error) {
	if s.admin != nil {
		return 0, admin.ErrAlreadyRegistered
	}
	a.ID = 1
	s.admin = &a
	return a.ID, nil
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	if s.admin != nil && s.admin.Email == email {
		return s.admin, nil
	}
	return nil, httpx.ErrNotFound
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*admin.Admin, error) {
	if s.admin != nil && s.admin.ID == id {
		return s.admin, nil
	}
	return nil, httpx.ErrNotFound
}

func (s *stubRepo) CreateSession(ctx context.Context, id string, accountID int64, expiresAt time.Time, ip, ua string) error {
	s.sessions[id] = accountID
	return nil
}

func (s *stubRepo) DeleteSession(ctx context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func newTestSetup(t *testing.T, repo admin.Repository) (http.Handler, *admin.Service, *shared.SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := shared.NewSessionManager(client, "test_session", time.Hour, false)
	service := admin.NewService(repo)
	handler := admin.NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), service, sessions)
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r, service, sessions, mr
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

const registerBody = `{"username":"principal","email":"admin@school.edu","password":"Admin123!"}`

func TestAdminRegisterOnce(t *testing.T) {
	router, _, _, _ := newTestSetup(t, newStubRepo())

	if res := postJSON(t, router, "/register", registerBody); res.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d: %s", res.Code, res.Body.String())
	}

	res := postJSON(t, router, "/register", registerBody)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("second register: expected 400, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), "Admin already registered") {
		t.Fatalf("unexpected body: %s", res.Body.String())
	}
}

func TestAdminRegisterRejectsSecondIdentityToo(t *testing.T) {
	router, _, _, _ := newTestSetup(t, newStubRepo())

	if res := postJSON(t, router, "/register", registerBody); res.Code != http.StatusCreated {
		t.Fatalf("register: %d", res.Code)
	}
	// A different email does not bypass the single-admin policy.
	res := postJSON(t, router, "/register", `{"username":"other","email":"other@school.edu","password":"Admin123!"}`)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestAdminLoginAndLogout(t *testing.T) {
	repo := newStubRepo()
	router, _, sessions, _ := newTestSetup(t, repo)

	if res := postJSON(t, router, "/register", registerBody); res.Code != http.StatusCreated {
		t.Fatalf("register: %d", res.Code)
	}

	res := postJSON(t, router, "/login", `{"email":"admin@school.edu","password":"Admin123!"}`)
	if res.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if strings.Contains(res.Body.String(), "password") {
		t.Fatalf("login response leaks password material: %s", res.Body.String())
	}
	cookies := res.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie")
	}

	probe := httptest.NewRequest(http.MethodGet, "/", nil)
	probe.AddCookie(cookies[0])
	sess, err := sessions.Resolve(context.Background(), probe)
	if err != nil {
		t.Fatalf("resolve admin session: %v", err)
	}
	if sess.Role != shared.RoleAdmin {
		t.Fatalf("expected admin role, got %q", sess.Role)
	}

	logoutReq := httptest.NewRequest(http.MethodPost, "/logout", nil)
	logoutReq.AddCookie(cookies[0])
	logoutRes := httptest.NewRecorder()
	router.ServeHTTP(logoutRes, logoutReq)
	if logoutRes.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", logoutRes.Code)
	}

	if _, err := sessions.Resolve(context.Background(), probe); err != shared.ErrSessionInvalid {
		t.Fatalf("expected session gone after logout, got %v", err)
	}
	if len(repo.sessions) != 0 {
		t.Fatal("audit record not removed on logout")
	}
}

func TestAdminLoginFailureIsUniform(t *testing.T) {
	repo := newStubRepo()
	hash, _ := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
	repo.admin = &admin.Admin{ID: 1, Username: "principal", Email: "admin@school.edu", PasswordHash: string(hash)}
	router, _, _, _ := newTestSetup(t, repo)

	wrongPassword := postJSON(t, router, "/login", `{"email":"admin@school.edu","password":"Wrong123!"}`)
	unknownEmail := postJSON(t, router, "/login", `{"email":"ghost@school.edu","password":"Admin123!"}`)
	if wrongPassword.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPassword.Code, unknownEmail.Code)
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Fatalf("login failures must be indistinguishable: %q vs %q",
			wrongPassword.Body.String(), unknownEmail.Body.String())
	}
}
