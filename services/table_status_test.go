package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yeremiapane/restaurant-table-manager/models"
)

func TestDeriveTableStatus(t *testing.T) {
	now := int64(10_000_000)

	activeSession := func(endTime int64) *models.DiningSession {
		return &models.DiningSession{TableID: 1, StartTime: 0, EndTime: endTime}
	}

	tests := []struct {
		name    string
		table   models.Table
		session *models.DiningSession
		want    string
	}{
		{
			name:    "no session and active table is idle",
			table:   models.Table{IsActive: 1, Status: models.TableStatusIdle},
			session: nil,
			want:    models.TableStatusIdle,
		},
		{
			name:    "remaining above warning window is dining",
			table:   models.Table{IsActive: 1, Status: models.TableStatusIdle},
			session: activeSession(now + WarningThresholdMs + 1),
			want:    models.TableStatusDining,
		},
		{
			name:    "remaining exactly at warning window is warning",
			table:   models.Table{IsActive: 1, Status: models.TableStatusDining},
			session: activeSession(now + WarningThresholdMs),
			want:    models.TableStatusWarning,
		},
		{
			name:    "one millisecond remaining is still warning",
			table:   models.Table{IsActive: 1, Status: models.TableStatusDining},
			session: activeSession(now + 1),
			want:    models.TableStatusWarning,
		},
		{
			name:    "remaining zero is timeout",
			table:   models.Table{IsActive: 1, Status: models.TableStatusWarning},
			session: activeSession(now),
			want:    models.TableStatusTimeout,
		},
		{
			name:    "overdue session is timeout",
			table:   models.Table{IsActive: 1, Status: models.TableStatusDining},
			session: activeSession(now - 60_000),
			want:    models.TableStatusTimeout,
		},
		{
			name:    "disabled flag overrides session state",
			table:   models.Table{IsActive: 0, Status: models.TableStatusDining},
			session: activeSession(now + 3_600_000),
			want:    models.TableStatusDisabled,
		},
		{
			name:    "disabled status overrides idle derivation",
			table:   models.Table{IsActive: 1, Status: models.TableStatusDisabled},
			session: nil,
			want:    models.TableStatusDisabled,
		},
		{
			name:    "buffer is sticky without a session",
			table:   models.Table{IsActive: 1, Status: models.TableStatusBuffer},
			session: nil,
			want:    models.TableStatusBuffer,
		},
		{
			name:    "completed session counts as no session",
			table:   models.Table{IsActive: 1, Status: models.TableStatusDining},
			session: &models.DiningSession{TableID: 1, EndTime: now - 1, IsCompleted: 1},
			want:    models.TableStatusIdle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveTableStatus(tt.table, tt.session, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPredictQueueOrdering(t *testing.T) {
	now := int64(1_000_000)

	tables := []models.Table{
		{ID: 1, TableNumber: "B2", BufferDuration: 10, Status: models.TableStatusDining, IsActive: 1},
		{ID: 2, TableNumber: "B1", BufferDuration: 15, Status: models.TableStatusIdle, IsActive: 1},
		{ID: 3, TableNumber: "C1", BufferDuration: 5, Status: models.TableStatusWarning, IsActive: 1},
	}
	sessions := []models.DiningSession{
		{ID: 10, TableID: 1, StartTime: 0, EndTime: now + 600_000},
		{ID: 11, TableID: 3, StartTime: 0, EndTime: now + 300_000},
	}

	result := PredictQueue(tables, sessions, now)

	assert.Len(t, result, 3)
	// B1 idle -> now, C1 -> now+300000+5m, B2 -> now+600000+10m
	assert.Equal(t, "B1", result[0].TableNumber)
	assert.Equal(t, now, result[0].AvailableAt)
	assert.Equal(t, "C1", result[1].TableNumber)
	assert.Equal(t, now+300_000+5*millisPerMinute, result[1].AvailableAt)
	assert.Equal(t, "B2", result[2].TableNumber)
	assert.Equal(t, now+600_000+10*millisPerMinute, result[2].AvailableAt)

	// Hasil harus terurut menaik
	for i := 1; i < len(result); i++ {
		assert.LessOrEqual(t, result[i-1].AvailableAt, result[i].AvailableAt)
	}
}

func TestPredictQueueExclusions(t *testing.T) {
	now := int64(1_000_000)

	tables := []models.Table{
		{ID: 1, TableNumber: "A1", Status: models.TableStatusIdle, IsActive: 1},
		{ID: 2, TableNumber: "A2", Status: models.TableStatusDisabled, IsActive: 1},
		{ID: 3, TableNumber: "A3", Status: models.TableStatusIdle, IsActive: 0},
	}

	result := PredictQueue(tables, nil, now)

	assert.Len(t, result, 1)
	assert.Equal(t, "A1", result[0].TableNumber)
}

func TestPredictQueueBufferTableWithoutSession(t *testing.T) {
	now := int64(2_000_000)

	tables := []models.Table{
		{ID: 1, TableNumber: "A1", Status: models.TableStatusBuffer, IsActive: 1},
	}

	result := PredictQueue(tables, nil, now)

	assert.Len(t, result, 1)
	assert.Equal(t, now, result[0].AvailableAt)
	assert.Equal(t, models.TableStatusBuffer, result[0].Status)
}

func TestPredictQueueStableTies(t *testing.T) {
	now := int64(5_000_000)

	tables := []models.Table{
		{ID: 1, TableNumber: "A1", Status: models.TableStatusIdle, IsActive: 1},
		{ID: 2, TableNumber: "A2", Status: models.TableStatusIdle, IsActive: 1},
		{ID: 3, TableNumber: "A3", Status: models.TableStatusIdle, IsActive: 1},
	}

	result := PredictQueue(tables, nil, now)

	// availableAt sama semua; urutan input dipertahankan
	assert.Equal(t, []string{"A1", "A2", "A3"}, []string{
		result[0].TableNumber, result[1].TableNumber, result[2].TableNumber,
	})
}
