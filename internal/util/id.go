// Package util provides utility functions for foodseed.
package util

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrInvalidSequence is returned when a food ID is not a decimal integer.
var ErrInvalidSequence = errors.New("invalid sequence id")

// NewID generates a new UUIDv7 identifier.
// UUIDv7 provides time-ordered identifiers for better database index locality.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does
		return uuid.New().String()
	}
	return id.String()
}

// IsValidID checks if a string is a valid UUID format.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// SequenceGenerator hands out decimal string IDs that continue an existing
// numbering. Example: after SetLastSequence(42), Next returns "43", "44", ...
type SequenceGenerator struct {
	mu      sync.Mutex
	lastSeq int
}

// NewSequenceGenerator creates a generator whose first ID is last+1.
func NewSequenceGenerator(last int) *SequenceGenerator {
	return &SequenceGenerator{lastSeq: last}
}

// SetLastSequence sets the last used sequence number.
// Call this after loading the highest existing ID.
func (s *SequenceGenerator) SetLastSequence(seq int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeq = seq
}

// Last returns the most recently issued (or seeded) sequence number.
func (s *SequenceGenerator) Last() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeq
}

// Next generates the next ID.
func (s *SequenceGenerator) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeq++
	return strconv.Itoa(s.lastSeq)
}

// ParseSequence extracts the integer value of a decimal string ID.
func ParseSequence(id string) (int, error) {
	trimmed := strings.TrimSpace(id)
	n, err := strconv.Atoi(trimmed)
	if err != nil || trimmed != id {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSequence, id)
	}
	return n, nil
}
