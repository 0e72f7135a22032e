package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atinyakov/taskboard/internal/models"
	"github.com/atinyakov/taskboard/internal/shared"
)

// dummyHandler is a placeholder that records if it was called and the context it received.
type dummyHandler struct {
	called bool
	ctx    context.Context
}

func (d *dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.called = true
	d.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

// fakeVerifier implements TokenVerifier for testing.
type fakeVerifier struct {
	userID string
	err    error
}

func (f *fakeVerifier) Verify(token string) (string, error) {
	return f.userID, f.err
}

// fakeResolver implements UserResolver for testing.
type fakeResolver struct {
	user *models.User
	err  error
}

func (f *fakeResolver) UserByID(ctx context.Context, id string) (*models.User, error) {
	return f.user, f.err
}

func TestBearerAuth_NoHeader(t *testing.T) {
	dummy := &dummyHandler{}
	h := BearerAuth(&fakeVerifier{}, &fakeResolver{})(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/tasks", nil)
	h.ServeHTTP(rec, req)

	if dummy.called {
		t.Error("did not expect next handler to be called without Authorization header")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", rec.Code)
	}
}

func TestBearerAuth_MalformedHeader(t *testing.T) {
	dummy := &dummyHandler{}
	h := BearerAuth(&fakeVerifier{userID: "u1"}, &fakeResolver{})(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/tasks", nil)
	req.Header.Set("Authorization", "Basic abc123")
	h.ServeHTTP(rec, req)

	if dummy.called {
		t.Error("did not expect next handler to be called with a non-bearer header")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", rec.Code)
	}
}

func TestBearerAuth_InvalidToken(t *testing.T) {
	dummy := &dummyHandler{}
	h := BearerAuth(&fakeVerifier{err: shared.ErrInvalidToken}, &fakeResolver{})(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/tasks", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	h.ServeHTTP(rec, req)

	if dummy.called {
		t.Error("did not expect next handler to be called for an invalid token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", rec.Code)
	}
}

func TestBearerAuth_UserGone(t *testing.T) {
	dummy := &dummyHandler{}
	h := BearerAuth(
		&fakeVerifier{userID: "u1"},
		&fakeResolver{err: errors.New("not found")},
	)(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/tasks", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	h.ServeHTTP(rec, req)

	if dummy.called {
		t.Error("did not expect next handler to be called when the user no longer exists")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", rec.Code)
	}
}

func TestBearerAuth_Valid(t *testing.T) {
	user := &models.User{ID: "u1", Name: "alice", Email: "alice@x.com"}

	dummy := &dummyHandler{}
	h := BearerAuth(&fakeVerifier{userID: "u1"}, &fakeResolver{user: user})(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/tasks", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	h.ServeHTTP(rec, req)

	if !dummy.called {
		t.Error("expected next handler to be called for a valid token")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 OK, got %d", rec.Code)
	}
	// verify context contains the resolved user
	got := GetUserFromContext(dummy.ctx)
	if got == nil || got.ID != "u1" {
		t.Errorf("expected context user 'u1', got %+v", got)
	}
}

func TestGetUserFromContext(t *testing.T) {
	// no value
	if u := GetUserFromContext(context.Background()); u != nil {
		t.Errorf("expected nil for missing user, got %+v", u)
	}
	// with value
	ctx := context.WithValue(context.Background(), userKey, &models.User{ID: "u2"})
	if u := GetUserFromContext(ctx); u == nil || u.ID != "u2" {
		t.Errorf("expected user 'u2', got %+v", u)
	}
}
