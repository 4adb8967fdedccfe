package storage

import (
	"sort"
	"sync"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
)

// RunStore keeps the runs started over HTTP in memory, keyed by session id.
type RunStore struct {
	runs map[string]*models.Run
	mu   sync.RWMutex
}

func New() *RunStore {
	return &RunStore{
		runs: make(map[string]*models.Run),
	}
}

func (s *RunStore) Get(sessionID string) (*models.Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, exists := s.runs[sessionID]
	return run, exists
}

func (s *RunStore) Set(sessionID string, run *models.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[sessionID] = run
}

// List returns every run, newest first.
func (s *RunStore) List() []*models.Run {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Run, 0, len(s.runs))
	for _, v := range s.runs {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (s *RunStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, sessionID)
}
