package staff

import (
	"strings"

	"golang.org/x/text/cases"
)

// Store is the ordered record collection for one session. It is owned by the
// UI loop and is not safe for concurrent use.
type Store struct {
	records []Record
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Append recomputes the record's score and adds it to the end.
func (s *Store) Append(record Record) Record {
	stored := record.WithScore()
	s.records = append(s.records, stored)
	return stored
}

// All returns a copy of every record in submission order.
func (s *Store) All() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len reports how many records are held.
func (s *Store) Len() int {
	return len(s.records)
}

// FilterByName returns the records whose name contains substring, ignoring
// case. An empty substring returns All.
func (s *Store) FilterByName(substring string) []Record {
	if substring == "" {
		return s.All()
	}
	folder := cases.Fold()
	needle := folder.String(substring)
	out := make([]Record, 0, len(s.records))
	for _, record := range s.records {
		if strings.Contains(folder.String(record.Name), needle) {
			out = append(out, record)
		}
	}
	return out
}

// Clear drops every record and reports how many were removed.
func (s *Store) Clear() int {
	n := len(s.records)
	s.records = nil
	return n
}
