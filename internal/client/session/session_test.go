package session

import (
	"path/filepath"
	"testing"
)

func TestLoad_MissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "session.json"))
	if err := s.Load(); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s.Authenticated() {
		t.Error("expected anonymous session for missing file")
	}
}

func TestSetPersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := New(path)
	if err := s.Load(); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if err := s.Set("tok-123"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// a fresh session over the same file restores the token unverified
	restored := New(path)
	if err := restored.Load(); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !restored.Authenticated() {
		t.Fatal("expected restored session to be authenticated")
	}
	if restored.Token() != "tok-123" {
		t.Errorf("expected token tok-123, got %q", restored.Token())
	}
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := New(path)
	if err := s.Set("tok-123"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if s.Authenticated() {
		t.Error("expected anonymous session after Clear")
	}

	restored := New(path)
	if err := restored.Load(); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if restored.Authenticated() {
		t.Error("expected cleared token to persist as anonymous")
	}
}

func TestSubscribe(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "session.json"))

	ch := s.Subscribe()
	if err := s.Set("tok-1"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	select {
	case got := <-ch:
		if got != "tok-1" {
			t.Errorf("expected notification tok-1, got %q", got)
		}
	default:
		t.Fatal("expected a token change notification")
	}

	// a logout is announced as an empty token
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	select {
	case got := <-ch:
		if got != "" {
			t.Errorf("expected empty token notification, got %q", got)
		}
	default:
		t.Fatal("expected a clear notification")
	}
}

func TestSubscribe_SlowSubscriberSeesLatest(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "session.json"))

	ch := s.Subscribe()
	// two changes land before the subscriber reads anything
	if err := s.Set("tok-old"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := s.Set("tok-new"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	select {
	case got := <-ch:
		if got != "tok-new" {
			t.Errorf("expected the newest token, got %q", got)
		}
	default:
		t.Fatal("expected a token change notification")
	}

	// only the latest value is buffered, not the backlog
	select {
	case got := <-ch:
		t.Errorf("expected no further notifications, got %q", got)
	default:
	}
}
