package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/internal/config"
	domainUser "storefront/internal/domain/user"
	"storefront/pkg/utils"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*domainUser.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domainUser.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domainUser.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID uuid.UUID) (*domainUser.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]*domainUser.User, error) { return nil, nil }

func (r *fakeUserRepo) Update(_ context.Context, user *domainUser.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdatePassword(context.Context, uuid.UUID, string) error { return nil }

func (r *fakeUserRepo) Delete(_ context.Context, userID uuid.UUID) error {
	delete(r.users, userID)
	return nil
}

func (r *fakeUserRepo) SetResetToken(context.Context, uuid.UUID, string, time.Time) error {
	return nil
}

func (r *fakeUserRepo) ClearResetToken(context.Context, uuid.UUID) error { return nil }

func (r *fakeUserRepo) ConsumeResetToken(context.Context, string, time.Time) (*domainUser.User, error) {
	return nil, domainUser.ErrResetTokenInvalid
}

const testSecret = "test-secret"

func testAuthConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret
	cfg.JWT.ExpiryHours = 1
	return cfg
}

func setupAuthRouter(repo *fakeUserRepo, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := []gin.HandlerFunc{AuthMiddleware(testAuthConfig(), repo)}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": user.ID.String()})
	})

	router.GET("/protected", handlers...)
	return router
}

func seedUser(repo *fakeUserRepo, role string) *domainUser.User {
	user := &domainUser.User{
		ID:    uuid.New(),
		Name:  "Test User",
		Email: "test@example.com",
		Role:  role,
	}
	repo.users[user.ID] = user
	return user
}

func doRequest(router *gin.Engine, cookie, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: cookie})
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	router := setupAuthRouter(newFakeUserRepo())

	w := doRequest(router, "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareAcceptsCookieToken(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(repo, domainUser.RoleUser)
	router := setupAuthRouter(repo)

	token, err := utils.GenerateToken(user.ID, testSecret, 1)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	w := doRequest(router, token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), user.ID.String()) {
		t.Fatalf("resolved identity missing from response: %s", w.Body.String())
	}
}

func TestAuthMiddlewareAcceptsBearerToken(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(repo, domainUser.RoleUser)
	router := setupAuthRouter(repo)

	token, err := utils.GenerateToken(user.ID, testSecret, 1)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	w := doRequest(router, "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareDistinguishesExpiredFromInvalid(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(repo, domainUser.RoleUser)
	router := setupAuthRouter(repo)

	expired, err := utils.GenerateToken(user.ID, testSecret, -1)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	expiredResp := doRequest(router, expired, "")
	garbageResp := doRequest(router, "not-a-jwt", "")

	if expiredResp.Code != http.StatusUnauthorized || garbageResp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for both, got %d and %d", expiredResp.Code, garbageResp.Code)
	}
	if expiredResp.Body.String() == garbageResp.Body.String() {
		t.Fatal("expired and malformed tokens should carry distinct messages")
	}
	if !strings.Contains(expiredResp.Body.String(), "expired") {
		t.Fatalf("expired token message missing: %s", expiredResp.Body.String())
	}
}

func TestAuthMiddlewareRejectsTamperedSignature(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(repo, domainUser.RoleUser)
	router := setupAuthRouter(repo)

	token, err := utils.GenerateToken(user.ID, "wrong-secret", 1)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	w := doRequest(router, token, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareRejectsDeletedUser(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(repo, domainUser.RoleUser)
	router := setupAuthRouter(repo)

	token, err := utils.GenerateToken(user.ID, testSecret, 1)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	// A deleted account invalidates outstanding tokens immediately.
	delete(repo.users, user.ID)

	w := doRequest(router, token, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestAdminOnly(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(repo, domainUser.RoleUser)
	router := setupAuthRouter(repo, AdminOnly())

	token, err := utils.GenerateToken(user.ID, testSecret, 1)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	w := doRequest(router, token, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for role user, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Role (user) is not allowed to access this resource") {
		t.Fatalf("unexpected forbidden message: %s", w.Body.String())
	}

	// Promotion takes effect on the next request with the same token.
	repo.users[user.ID].Role = domainUser.RoleAdmin

	w = doRequest(router, token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 after promotion, got %d: %s", w.Code, w.Body.String())
	}
}
