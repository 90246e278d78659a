// SPDX-License-Identifier: GPL-3.0-or-later

// Package sensorstore persists the volume to sensor-id mapping between runs.
// The store is a plain text file, one "volume<TAB>sensorID" line per sensor,
// rewritten atomically on every change.
package sensorstore

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrStoreUnavailable means the state file cannot be read or written.
// Running without state risks duplicate sensors, so callers must abort.
var ErrStoreUnavailable = errors.New("sensor store unavailable")

// Store is the on-disk record of sensors provisioned for one array.
type Store struct {
	path    string
	records map[string]string
}

// Open loads the state file of the named array from dir,
// creating an empty one if it does not exist yet.
func Open(dir, arrayName string) (*Store, error) {
	s := &Store{
		path:    filepath.Join(dir, arrayName+".sensors"),
		records: make(map[string]string),
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if err := s.flush(); err != nil {
			return nil, err
		}
		return s, nil
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		volume, sensorID, ok := strings.Cut(text, "\t")
		if !ok || volume == "" || sensorID == "" {
			return nil, fmt.Errorf("%w: malformed record at %s:%d", ErrStoreUnavailable, s.path, line)
		}
		s.records[volume] = sensorID
	}

	return s, nil
}

// Records returns a copy of the volume to sensor-id mapping.
func (s *Store) Records() map[string]string {
	out := make(map[string]string, len(s.records))
	for volume, id := range s.records {
		out[volume] = id
	}
	return out
}

// Len returns the number of recorded sensors.
func (s *Store) Len() int {
	return len(s.records)
}

// Put records the sensor id of a volume and writes the file through to disk.
func (s *Store) Put(volume, sensorID string) error {
	s.records[volume] = sensorID
	return s.flush()
}

// Remove drops the record of a volume and writes the file through to disk.
func (s *Store) Remove(volume string) error {
	delete(s.records, volume)
	return s.flush()
}

func (s *Store) flush() error {
	volumes := make([]string, 0, len(s.records))
	for volume := range s.records {
		volumes = append(volumes, volume)
	}
	sort.Strings(volumes)

	var buf bytes.Buffer
	for _, volume := range volumes {
		fmt.Fprintf(&buf, "%s\t%s\n", volume, s.records[volume])
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
