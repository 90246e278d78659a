// SPDX-License-Identifier: GPL-3.0-or-later

package flasharray

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// MockArrayServer is a flash array REST API mock for tests.
type MockArrayServer struct {
	Username string
	Password string
	APIToken string

	Info     ArrayInfo
	Space    ArraySpace
	Perf     ArrayMonitor
	Hardware []Hardware
	Drives   []Drive
	Volumes  []Volume
	VolSpace []VolumeSpace

	mux      sync.Mutex
	sessions map[string]bool
	sessSeq  int
}

// ResetSessions invalidates all open sessions, making the server
// answer 401 to authenticated calls until the next login.
func (s *MockArrayServer) ResetSessions() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.sessions = nil
}

func (s *MockArrayServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/"+APIVersion)

	switch {
	case path == "/auth/apitoken" && r.Method == http.MethodPost:
		s.handleAPIToken(w, r)
	case path == "/auth/session" && r.Method == http.MethodPost:
		s.handleSessionOpen(w, r)
	case path == "/auth/session" && r.Method == http.MethodDelete:
		s.handleSessionClose(w, r)
	default:
		if !s.authenticated(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		s.handleQuery(w, r, path)
	}
}

func (s *MockArrayServer) handleAPIToken(w http.ResponseWriter, r *http.Request) {
	var req struct{ Username, Password string }
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if req.Username != s.Username || req.Password != s.Password {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, map[string]string{"msg": "invalid credentials"})
		return
	}
	writeJSON(w, map[string]string{"api_token": s.APIToken})
}

func (s *MockArrayServer) handleSessionOpen(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIToken string `json:"api_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.APIToken != s.APIToken {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, map[string]string{"msg": "invalid api token"})
		return
	}

	s.mux.Lock()
	if s.sessions == nil {
		s.sessions = make(map[string]bool)
	}
	s.sessSeq++
	id := fmt.Sprintf("session-%d", s.sessSeq)
	s.sessions[id] = true
	s.mux.Unlock()

	http.SetCookie(w, &http.Cookie{Name: "session", Value: id, Path: "/"})
	writeJSON(w, map[string]string{"username": s.Username})
}

func (s *MockArrayServer) handleSessionClose(w http.ResponseWriter, r *http.Request) {
	if !s.authenticated(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if c, err := r.Cookie("session"); err == nil {
		s.mux.Lock()
		delete(s.sessions, c.Value)
		s.mux.Unlock()
	}
	writeJSON(w, map[string]string{"username": s.Username})
}

func (s *MockArrayServer) handleQuery(w http.ResponseWriter, r *http.Request, path string) {
	switch {
	case path == "/array":
		switch {
		case r.URL.Query().Get("space") == "true":
			writeJSON(w, s.Space)
		case r.URL.Query().Get("action") == "monitor":
			writeJSON(w, []ArrayMonitor{s.Perf})
		default:
			writeJSON(w, s.Info)
		}
	case path == "/hardware":
		writeJSON(w, s.Hardware)
	case path == "/drive":
		writeJSON(w, s.Drives)
	case path == "/volume":
		writeJSON(w, s.Volumes)
	case strings.HasPrefix(path, "/volume/"):
		name := strings.TrimPrefix(path, "/volume/")
		for _, vs := range s.VolSpace {
			if vs.Name == name {
				writeJSON(w, vs)
				return
			}
		}
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, map[string]string{"msg": "volume does not exist"})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *MockArrayServer) authenticated(r *http.Request) bool {
	c, err := r.Cookie("session")
	if err != nil {
		return false
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.sessions[c.Value]
}

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}
