package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/ManuelReschke/HookFox/app/models"
)

// memoryRepository implements WebhookEventRepository on a process-local map.
// It backs tests and local development; the GORM repository is the durable
// backend. Id allocation is serialized under the write lock so concurrent
// creates never collide.
type memoryRepository struct {
	mu     sync.RWMutex
	events map[uint]models.WebhookEvent
	nextID uint
}

// NewMemoryRepository creates an in-memory webhook event repository.
func NewMemoryRepository() WebhookEventRepository {
	return &memoryRepository{
		events: make(map[uint]models.WebhookEvent),
		nextID: 1,
	}
}

func (r *memoryRepository) Create(event *models.WebhookEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	event.ID = r.nextID
	r.nextID++
	event.Timestamp = time.Now()
	r.events[event.ID] = *event
	return nil
}

func (r *memoryRepository) GetByID(id uint) (*models.WebhookEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	return &event, nil
}

func (r *memoryRepository) GetByReference(reference string) (*models.WebhookEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Map iteration order is random; pick the lowest id for a stable answer.
	// The interface promises no particular winner among duplicates.
	var found *models.WebhookEvent
	for id := range r.events {
		event := r.events[id]
		if event.Reference != reference {
			continue
		}
		if found == nil || event.ID < found.ID {
			found = &event
		}
	}
	if found == nil {
		return nil, ErrEventNotFound
	}
	return found, nil
}

func (r *memoryRepository) List(limit, offset int) ([]models.WebhookEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]models.WebhookEvent, 0, len(r.events))
	for _, event := range r.events {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Timestamp.After(events[j].Timestamp)
		}
		return events[i].ID > events[j].ID
	})

	if offset >= len(events) {
		return []models.WebhookEvent{}, nil
	}
	end := offset + limit
	if end > len(events) {
		end = len(events)
	}
	return events[offset:end], nil
}

func (r *memoryRepository) Update(id uint, update WebhookEventUpdate) (*models.WebhookEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	if update.Status != nil {
		event.Status = *update.Status
	}
	if update.Error != nil {
		event.Error = update.Error
	}
	if update.ResponseTime != nil {
		event.ResponseTime = update.ResponseTime
	}
	r.events[id] = event
	return &event, nil
}

func (r *memoryRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.events)), nil
}

func (r *memoryRepository) CountByStatus(status string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, event := range r.events {
		if event.Status == status {
			count++
		}
	}
	return count, nil
}
