package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atinyakov/taskboard/internal/client/session"
	"github.com/atinyakov/taskboard/internal/models"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()
	s := session.New(filepath.Join(t.TempDir(), "session.json"))
	if err := s.Load(); err != nil {
		t.Fatalf("load session: %v", err)
	}
	return s
}

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-123",
			"user":  models.User{ID: "u1", Name: "Jane"},
		})
	}))
	defer srv.Close()

	sess := newSession(t)
	client := New(srv.Client(), srv.URL, sess)

	user, err := client.Login(context.Background(), "jane@x.com", "secret1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("expected user u1, got %+v", user)
	}
	if sess.Token() != "tok-123" {
		t.Errorf("expected session token tok-123, got %q", sess.Token())
	}
}

func TestRequestsCarryBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]models.Task{})
	}))
	defer srv.Close()

	sess := newSession(t)
	if err := sess.Set("tok-xyz"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	client := New(srv.Client(), srv.URL, sess)

	if _, err := client.Tasks(context.Background()); err != nil {
		t.Fatalf("Tasks error: %v", err)
	}
	if gotAuth != "Bearer tok-xyz" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
}

func TestServerMessageSurfacesAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "task not found"})
	}))
	defer srv.Close()

	client := New(srv.Client(), srv.URL, newSession(t))

	_, err := client.DeleteTask(context.Background(), "ghost")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "task not found") {
		t.Errorf("expected server message in error, got %v", err)
	}
}

func TestCreateTask_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var draft models.TaskDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			t.Errorf("decode draft: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.Task{
			ID: "t1", Title: draft.Title, Status: models.StatusTodo,
			Priority: models.PriorityLow, Metadata: draft.Metadata, Author: "u1",
		})
	}))
	defer srv.Close()

	client := New(srv.Client(), srv.URL, newSession(t))

	task, err := client.CreateTask(context.Background(), models.TaskDraft{
		Title: "Write report", Metadata: models.Metadata{"k": "v"},
	})
	if err != nil {
		t.Fatalf("CreateTask error: %v", err)
	}
	if task.ID != "t1" || task.Metadata["k"] != "v" {
		t.Errorf("unexpected task: %+v", task)
	}
}
