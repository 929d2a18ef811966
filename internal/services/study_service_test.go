package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/apperr"
	"github.com/Ogezi-Emmanuel/campus-planner-backend/internal/models"
)

type fakeStudyItems struct {
	rows map[string]models.StudyItem
}

func newFakeStudyItems() *fakeStudyItems {
	return &fakeStudyItems{rows: make(map[string]models.StudyItem)}
}

func (f *fakeStudyItems) Insert(_ context.Context, item models.StudyItem) (models.StudyItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	f.rows[item.ID] = item
	return item, nil
}

func (f *fakeStudyItems) List(_ context.Context, userID string) ([]models.StudyItem, error) {
	var out []models.StudyItem
	for _, it := range f.rows {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeStudyItems) GetByID(_ context.Context, id string) (models.StudyItem, error) {
	it, ok := f.rows[id]
	if !ok {
		return models.StudyItem{}, apperr.Validation("id", "not found")
	}
	return it, nil
}

func (f *fakeStudyItems) UpdateStatus(_ context.Context, id string, status models.StudyStatus) error {
	it := f.rows[id]
	it.Status = status
	f.rows[id] = it
	return nil
}

func newStudyFixture() (*StudyService, *fakeStudyItems) {
	items := newFakeStudyItems()
	return NewStudyService(items, time.Second), items
}

func tomorrow() time.Time {
	return dateOnly(time.Now()).AddDate(0, 0, 1)
}

func TestStudyAdd(t *testing.T) {
	svc, _ := newStudyFixture()

	item, err := svc.Add(context.Background(), "u1", "Revise graphs", "Algorithms", tomorrow())
	require.NoError(t, err)
	assert.Equal(t, models.StudyPending, item.Status)
	assert.NotEmpty(t, item.ID)
}

func TestStudyAddValidation(t *testing.T) {
	svc, items := newStudyFixture()

	tests := []struct {
		name    string
		title   string
		subject string
		due     time.Time
		field   string
	}{
		{"missing title", "", "Math", tomorrow(), "title"},
		{"missing subject", "Sheet 3", "  ", tomorrow(), "subject"},
		{"missing due date", "Sheet 3", "Math", time.Time{}, "due_date"},
		{"past due date", "Sheet 3", "Math", dateOnly(time.Now()).AddDate(0, 0, -1), "due_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(context.Background(), "u1", tt.title, tt.subject, tt.due)
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
	assert.Empty(t, items.rows)
}

func TestStudyAddAcceptsToday(t *testing.T) {
	svc, _ := newStudyFixture()

	_, err := svc.Add(context.Background(), "u1", "Due today", "Math", dateOnly(time.Now()))
	require.NoError(t, err)
}

func TestStudyToggleFlipsBothWays(t *testing.T) {
	svc, _ := newStudyFixture()
	item, err := svc.Add(context.Background(), "u1", "Revise graphs", "Algorithms", tomorrow())
	require.NoError(t, err)

	toggled, err := svc.ToggleStatus(context.Background(), "u1", item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StudyCompleted, toggled.Status)

	back, err := svc.ToggleStatus(context.Background(), "u1", item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StudyPending, back.Status)
}

func TestStudyToggleRejectsForeignItem(t *testing.T) {
	svc, _ := newStudyFixture()
	item, err := svc.Add(context.Background(), "u1", "Revise graphs", "Algorithms", tomorrow())
	require.NoError(t, err)

	_, err = svc.ToggleStatus(context.Background(), "someone-else", item.ID)
	require.Error(t, err)
}
