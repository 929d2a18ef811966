package services

import (
	"context"
	"strings"
	"time"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/apperr"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/models"
	repo "github.com/Ogezi-Emmanuel/campus-planner-backend/internal/repository"
)

type StudyService struct {
	items       repo.StudyItems
	callTimeout time.Duration
	now         func() time.Time
}

func NewStudyService(items repo.StudyItems, callTimeout time.Duration) *StudyService {
	if callTimeout <= 0 {
		callTimeout = 10 * time.Second
	}
	return &StudyService{items: items, callTimeout: callTimeout, now: time.Now}
}

func (s *StudyService) Add(ctx context.Context, userID, title, subject string, dueDate time.Time) (models.StudyItem, error) {
	if strings.TrimSpace(title) == "" {
		return models.StudyItem{}, apperr.Validation("title", "required")
	}
	if strings.TrimSpace(subject) == "" {
		return models.StudyItem{}, apperr.Validation("subject", "required")
	}
	if dueDate.IsZero() {
		return models.StudyItem{}, apperr.Validation("due_date", "required")
	}
	if dueDate.Before(dateOnly(s.now())) {
		return models.StudyItem{}, apperr.Validation("due_date", "cannot be in the past")
	}

	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.items.Insert(ctx, models.StudyItem{
		UserID:  userID,
		Title:   title,
		Subject: subject,
		DueDate: dueDate,
		Status:  models.StudyPending,
	})
}

func (s *StudyService) List(ctx context.Context, userID string) ([]models.StudyItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.items.List(ctx, userID)
}

// ToggleStatus flips an item between pending and completed. Items can
// only be toggled by their owner.
func (s *StudyService) ToggleStatus(ctx context.Context, userID, itemID string) (models.StudyItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return models.StudyItem{}, err
	}
	if item.UserID != userID {
		return models.StudyItem{}, apperr.Validation("id", "not found")
	}
	item.Status = item.Status.Toggled()
	if err := s.items.UpdateStatus(ctx, item.ID, item.Status); err != nil {
		return models.StudyItem{}, err
	}
	return item, nil
}
