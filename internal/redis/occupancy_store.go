package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OccupiedSlot is cached per occupied slot for quick dashboard lookups.
type OccupiedSlot struct {
	SessionID   int64     `json:"session_id"`
	SlotNumber  int       `json:"slot_number"`
	PlateNumber string    `json:"plate_number"`
	EntryTime   time.Time `json:"entry_time"`
}

// OccupancyStore manages the open-session cache. The database stays the
// source of truth; callers treat every operation as best-effort.
type OccupancyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOccupancyStore returns redis-backed store.
func NewOccupancyStore(client *redis.Client, ttl time.Duration) *OccupancyStore {
	return &OccupancyStore{client: client, ttl: ttl}
}

func (s *OccupancyStore) key(slotNumber int) string {
	return fmt.Sprintf("parking:occupied:%d", slotNumber)
}

// Save caches the session occupying a slot.
func (s *OccupancyStore) Save(ctx context.Context, slot OccupiedSlot) error {
	data, err := json.Marshal(slot)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(slot.SlotNumber), data, s.ttl).Err()
}

// Get returns the cached occupant of a slot.
func (s *OccupancyStore) Get(ctx context.Context, slotNumber int) (*OccupiedSlot, error) {
	result, err := s.client.Get(ctx, s.key(slotNumber)).Result()
	if err != nil {
		return nil, err
	}
	var slot OccupiedSlot
	if err := json.Unmarshal([]byte(result), &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

// Delete removes the cache entry when a slot is released.
func (s *OccupancyStore) Delete(ctx context.Context, slotNumber int) error {
	return s.client.Del(ctx, s.key(slotNumber)).Err()
}
