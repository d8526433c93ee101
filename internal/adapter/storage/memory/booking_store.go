// Package memory provides an in-process BookingRepository used when no
// Postgres DSN is configured.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/luckytour/fare-quotation-service/internal/domain"
)

var _ domain.BookingRepository = (*BookingStore)(nil)

// BookingStore keeps bookings as serialized records, so callers never share
// memory with the stored snapshot.
type BookingStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewBookingStore creates an empty store.
func NewBookingStore() *BookingStore {
	return &BookingStore{records: make(map[string][]byte)}
}

// Save stores b under its ID, replacing any previous record.
func (s *BookingStore) Save(ctx context.Context, b *domain.Booking) error {
	if b == nil {
		return errors.New("save booking: nil booking")
	}
	if b.ID == "" {
		return domain.NewValidationError("id", "is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal booking %s: %w", b.ID, err)
	}

	s.mu.Lock()
	s.records[b.ID] = data
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the stored booking or domain.ErrBookingNotFound.
func (s *BookingStore) Get(ctx context.Context, id string) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrBookingNotFound
	}

	var b domain.Booking
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("unmarshal booking %s: %w", id, err)
	}
	return &b, nil
}

// Len returns the number of stored bookings.
func (s *BookingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
