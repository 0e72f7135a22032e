// Package session holds the client's copy of the session token,
// synchronized with a file on disk so the session survives restarts.
package session

import (
	"encoding/json"
	"os"
	"sync"
)

// Session is the client-held session state. An empty token means the
// session is anonymous. Every change is written through to the backing
// file and announced to subscribers.
type Session struct {
	mu    sync.Mutex
	path  string
	token string
	subs  []chan string
}

// New returns a Session backed by the file at path. Call Load to
// restore a previously saved token.
func New(path string) *Session {
	return &Session{path: path}
}

type fileState struct {
	Token string `json:"token"`
}

// Load reads the backing file. A missing file leaves the session
// anonymous. A restored token is treated as valid without verification;
// the first failing API call is the signal to clear it.
func (s *Session) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.token = ""
			return nil
		}
		return err
	}

	var st fileState
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	s.token = st.Token
	return nil
}

// Token returns the current token, or "" when anonymous.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Authenticated reports whether a token is held.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Set stores the token, writes it through to disk, and notifies
// subscribers.
func (s *Session) Set(token string) error {
	s.mu.Lock()
	s.token = token
	err := s.save()
	subs := s.subs
	s.mu.Unlock()

	for _, ch := range subs {
		// Drop an unconsumed older value so the buffered slot always
		// holds the newest token.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- token:
		default:
		}
	}
	return err
}

// Clear discards the held token, returning the session to anonymous.
// This is the only logout there is: the server keeps no session state.
func (s *Session) Clear() error {
	return s.Set("")
}

// Subscribe returns a channel receiving the new token value on every
// change. The channel is buffered and holds only the most recent
// value: a slow subscriber misses intermediate values rather than
// blocking Set.
func (s *Session) Subscribe() <-chan string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan string, 1)
	s.subs = append(s.subs, ch)
	return ch
}

// save writes the current state to disk. Caller must hold mu.
func (s *Session) save() error {
	data, err := json.Marshal(fileState{Token: s.token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
