package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"sentinel", ErrEventNotFound, KindNotFound},
		{"wrapped sentinel", fmt.Errorf("get event: %w", ErrNotOwner), KindUnauthorized},
		{"validation", NewValidationError("title is required"), KindBadRequest},
		{"untagged", errors.New("connection reset"), KindServerError},
		{"nil", nil, KindServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID("4b0c7d84-3a4e-4f43-9d6f-2f0f3c1b9a10"))
	assert.False(t, ValidID("not-an-id"))
	assert.False(t, ValidID(""))
	assert.False(t, ValidID("urn:uuid:4b0c7d84-3a4e-4f43-9d6f-2f0f3c1b9a10"))
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, Category("Music").Valid())
	assert.False(t, Category("sports").Valid(), "matching is case sensitive")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"2025-05-01", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), false},
		{"2025-05-01T18:30", time.Date(2025, 5, 1, 18, 30, 0, 0, time.UTC), false},
		{"2025-05-01T18:30:15", time.Date(2025, 5, 1, 18, 30, 15, 0, time.UTC), false},
		{"2025-05-01T18:30:00+02:00", time.Date(2025, 5, 1, 16, 30, 0, 0, time.UTC), false},
		{" 2025-05-01 ", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), false},
		{"01/05/2025", time.Time{}, true},
		{"", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestDayRange(t *testing.T) {
	start, end := DayRange(time.Date(2025, 5, 1, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), end)
}
