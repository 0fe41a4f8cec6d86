//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
)

// Answer is one canned reply of the fake answer service
type Answer struct {
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
	From     string   `json:"from"`
	Title    string   `json:"title"`
	Type     string   `json:"type"`
}

// AnswerService is an in-process stand-in for the lookup endpoint
type AnswerService struct {
	srv *httptest.Server

	mu      sync.Mutex
	answers map[string]Answer
	asked   []string
}

// NewAnswerService starts a service that knows the given answers
func NewAnswerService(answers ...Answer) *AnswerService {
	s := &AnswerService{answers: make(map[string]Answer)}
	for _, a := range answers {
		s.answers[a.Question] = a
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func (s *AnswerService) handle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.asked = append(s.asked, req.Question)
	answer, ok := s.answers[req.Question]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": nil, "errno": -1, "message": "not found"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"data": answer, "errno": 0, "message": "ok"})
}

// URL returns the search endpoint
func (s *AnswerService) URL() string {
	return s.srv.URL + "/answer/search"
}

// Asked returns the questions received so far
func (s *AnswerService) Asked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.asked...)
}

// Close stops the service
func (s *AnswerService) Close() {
	s.srv.Close()
}

// UseAnswerService points the app at a fresh fake service
func (tf *TUITestFramework) UseAnswerService(answers ...Answer) *AnswerService {
	tf.service = NewAnswerService(answers...)
	return tf.service
}

// CreateTestWorkspace creates an isolated HOME with its own config directory
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	dir, err := os.MkdirTemp("", "qalookup-e2e-*")
	if err != nil {
		return "", fmt.Errorf("failed to create workspace: %w", err)
	}
	tf.workspace = dir
	return dir, nil
}

// WriteConfig writes a config file into the workspace and returns its path
func (tf *TUITestFramework) WriteConfig(content string) (string, error) {
	path := filepath.Join(tf.workspace, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func (tf *TUITestFramework) env() []string {
	return append(os.Environ(),
		"TERM=xterm-256color",
		"LANG=C.UTF-8",
		"HOME="+tf.workspace,
		"XDG_CONFIG_HOME="+filepath.Join(tf.workspace, ".config"),
		"QALOOKUP_LOG_FILE="+filepath.Join(tf.workspace, "qalookup.log"),
		"QALOOKUP_LOG_LEVEL=debug",
		"QALOOKUP_E2E_TEST=1",
	)
}
