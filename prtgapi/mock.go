// SPDX-License-Identifier: GPL-3.0-or-later

package prtgapi

import (
	"fmt"
	"net/http"
	"sync"
)

// MockSensor is the state of one sensor on a MockPRTGServer.
type MockSensor struct {
	Name     string
	ParentID string
	Params   string
	Paused   bool
}

// MockPRTGServer is a PRTG configuration API mock for tests.
type MockPRTGServer struct {
	Username string
	PassHash string

	// FailDelete makes deleteobject calls answer 500 for these ids.
	FailDelete map[string]bool

	mux     sync.Mutex
	sensors map[string]*MockSensor
	idSeq   int
}

// Sensors returns a copy of the current sensor set keyed by object id.
func (s *MockPRTGServer) Sensors() map[string]MockSensor {
	s.mux.Lock()
	defer s.mux.Unlock()

	out := make(map[string]MockSensor, len(s.sensors))
	for id, sensor := range s.sensors {
		out[id] = *sensor
	}
	return out
}

// AddSensor registers an existing sensor and returns its id.
func (s *MockPRTGServer) AddSensor(sensor MockSensor) string {
	s.mux.Lock()
	defer s.mux.Unlock()

	id := s.nextID()
	if s.sensors == nil {
		s.sensors = make(map[string]*MockSensor)
	}
	s.sensors[id] = &sensor
	return id
}

func (s *MockPRTGServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("username") != s.Username || q.Get("passhash") != s.PassHash {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	switch r.URL.Path {
	case "/api/duplicateobject.htm":
		id := s.nextID()
		if s.sensors == nil {
			s.sensors = make(map[string]*MockSensor)
		}
		s.sensors[id] = &MockSensor{
			Name:     q.Get("name"),
			ParentID: q.Get("targetid"),
			Paused:   true,
		}
		w.Header().Set("Location", "/sensor.htm?id="+id)
		w.WriteHeader(http.StatusFound)
	case "/api/setobjectproperty.htm":
		sensor, ok := s.sensors[q.Get("id")]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if q.Get("name") == "exeparams" {
			sensor.Params = q.Get("value")
		}
	case "/api/pause.htm":
		sensor, ok := s.sensors[q.Get("id")]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		sensor.Paused = q.Get("action") != "1"
	case "/api/deleteobject.htm":
		id := q.Get("id")
		if s.FailDelete[id] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if _, ok := s.sensors[id]; !ok || q.Get("approve") != "1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		delete(s.sensors, id)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *MockPRTGServer) nextID() string {
	s.idSeq++
	return fmt.Sprintf("%d", 1000+s.idSeq)
}
