package storage

import (
	"testing"
	"time"

	"github.com/muvva-krishna/AI-PPT-Inspector/internal/models"
)

func TestRunStore(t *testing.T) {
	s := New()
	now := time.Now()

	s.Set("old", &models.Run{ID: "old", CreatedAt: now.Add(-time.Minute)})
	s.Set("new", &models.Run{ID: "new", CreatedAt: now})

	run, ok := s.Get("old")
	if !ok || run.ID != "old" {
		t.Fatalf("Expected to find run old, got %v %v", run, ok)
	}

	list := s.List()
	if len(list) != 2 || list[0].ID != "new" || list[1].ID != "old" {
		t.Errorf("Expected newest first, got %+v", list)
	}

	s.Delete("old")
	if _, ok := s.Get("old"); ok {
		t.Error("Expected run to be deleted")
	}
	if len(s.List()) != 1 {
		t.Errorf("Expected 1 run after delete, got %d", len(s.List()))
	}
}
