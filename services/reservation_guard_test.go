package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yeremiapane/restaurant-table-manager/models"
	"gorm.io/gorm"
)

func baseReservationInput() ReservationInput {
	return ReservationInput{
		ReservationDate: "2024-01-01",
		ReservationTime: "18:30",
		GuestName:       "Budi",
		GuestPhone:      "13800000001",
		PartySize:       4,
		Source:          models.ReservationSourcePhone,
	}
}

func TestCreateReservation(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewReservationService(db)

	reservation, err := svc.Create(baseReservationInput(), 7)
	assert.NoError(t, err)
	assert.Equal(t, models.ReservationStatusPending, reservation.Status)
	assert.Equal(t, uint(7), reservation.CreatedBy)
	assert.Equal(t, uint(7), reservation.UpdatedBy)

	// Audit log ikut tercatat
	var logs []models.OperationLog
	db.Find(&logs)
	assert.Len(t, logs, 1)
	assert.Equal(t, "create", logs[0].OperationType)
	assert.Equal(t, reservation.ID, logs[0].ReservationID)
	assert.Equal(t, uint(7), logs[0].OperatedBy)
	assert.Contains(t, logs[0].Details, "13800000001")
}

func TestCreateReservationBlacklisted(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewReservationService(db)

	db.Create(&models.BlacklistEntry{GuestPhone: "13800000001", Reason: "no-show berulang", CreatedBy: 1})

	_, err := svc.Create(baseReservationInput(), 1)
	assert.ErrorIs(t, err, ErrBlacklisted)

	// Tidak ada reservasi maupun log yang tersimpan
	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateReservationDuplicate(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewReservationService(db)

	_, err := svc.Create(baseReservationInput(), 1)
	assert.NoError(t, err)

	// Telepon + tanggal sama -> konflik, walau jam berbeda
	input := baseReservationInput()
	input.ReservationTime = "20:00"
	_, err = svc.Create(input, 1)
	assert.ErrorIs(t, err, ErrDuplicateReservation)

	// Tanggal lain tetap boleh
	input = baseReservationInput()
	input.ReservationDate = "2024-01-02"
	_, err = svc.Create(input, 1)
	assert.NoError(t, err)
}

func TestDuplicateIgnoresCancelled(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewReservationService(db)

	reservation, err := svc.Create(baseReservationInput(), 1)
	assert.NoError(t, err)

	_, err = svc.Update(reservation.ID, map[string]interface{}{
		"status": models.ReservationStatusCancelled,
	}, 1)
	assert.NoError(t, err)

	// Reservasi batal tidak menghitung sebagai duplikat
	_, err = svc.Create(baseReservationInput(), 1)
	assert.NoError(t, err)
}

func TestUpdateReservationLogsChanges(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewReservationService(db)

	reservation, err := svc.Create(baseReservationInput(), 1)
	assert.NoError(t, err)

	updated, err := svc.Update(reservation.ID, map[string]interface{}{
		"party_size": 6,
		"status":     models.ReservationStatusConfirmed,
	}, 9)
	assert.NoError(t, err)
	assert.Equal(t, 6, updated.PartySize)
	assert.Equal(t, models.ReservationStatusConfirmed, updated.Status)
	assert.Equal(t, uint(9), updated.UpdatedBy)

	var logs []models.OperationLog
	db.Where("operation_type = ?", "update").Find(&logs)
	assert.Len(t, logs, 1)
	assert.Contains(t, logs[0].Details, "party_size")
}

func TestDeleteReservationIsHardDelete(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewReservationService(db)

	reservation, err := svc.Create(baseReservationInput(), 1)
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(reservation.ID, 2))

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.Equal(t, int64(0), count)

	var logs []models.OperationLog
	db.Where("operation_type = ?", "delete").Find(&logs)
	assert.Len(t, logs, 1)
	assert.Equal(t, uint(2), logs[0].OperatedBy)

	assert.ErrorIs(t, svc.Delete(999, 2), gorm.ErrRecordNotFound)
}

func TestCapacityForTimeSlot(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewReservationService(db)

	seed := []models.Reservation{
		{ReservationDate: "2024-01-01", ReservationTime: "18:00", GuestName: "A", GuestPhone: "1", PartySize: 4, Status: models.ReservationStatusPending},
		{ReservationDate: "2024-01-01", ReservationTime: "18:30", GuestName: "B", GuestPhone: "2", PartySize: 2, Status: models.ReservationStatusConfirmed},
		{ReservationDate: "2024-01-01", ReservationTime: "19:00", GuestName: "C", GuestPhone: "3", PartySize: 6, Status: models.ReservationStatusArrived},
		// Di luar slot
		{ReservationDate: "2024-01-01", ReservationTime: "21:00", GuestName: "D", GuestPhone: "4", PartySize: 8, Status: models.ReservationStatusPending},
		// Status batal tidak dihitung
		{ReservationDate: "2024-01-01", ReservationTime: "18:15", GuestName: "E", GuestPhone: "5", PartySize: 10, Status: models.ReservationStatusCancelled},
		// Tanggal lain
		{ReservationDate: "2024-01-02", ReservationTime: "18:00", GuestName: "F", GuestPhone: "6", PartySize: 3, Status: models.ReservationStatusPending},
	}
	for i := range seed {
		assert.NoError(t, db.Create(&seed[i]).Error)
	}

	total, err := svc.CapacityForTimeSlot("2024-01-01", "18:00", "20:00")
	assert.NoError(t, err)
	assert.Equal(t, 12, total)
}

func TestCheckCapacityReport(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewReservationService(db)

	db.Create(&models.Reservation{
		ReservationDate: "2024-01-01", ReservationTime: "18:00",
		GuestName: "A", GuestPhone: "1", PartySize: 45,
		Status: models.ReservationStatusConfirmed,
	})

	report, err := svc.CheckCapacity("2024-01-01", "17:00", "20:00", 50)
	assert.NoError(t, err)
	assert.Equal(t, 45, report.CurrentCapacity)
	assert.Equal(t, 50, report.MaxCapacity)
	assert.False(t, report.IsOverCapacity)
	assert.Equal(t, 5, report.AvailableSeats)

	// Pas di batas dianggap penuh
	report, err = svc.CheckCapacity("2024-01-01", "17:00", "20:00", 45)
	assert.NoError(t, err)
	assert.True(t, report.IsOverCapacity)
	assert.Equal(t, 0, report.AvailableSeats)
}

func TestSearchReservations(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewReservationService(db)

	db.Create(&models.Reservation{ReservationDate: "2024-01-01", ReservationTime: "18:00", GuestName: "Budi Santoso", GuestPhone: "13800000001", PartySize: 2, Status: models.ReservationStatusPending})
	db.Create(&models.Reservation{ReservationDate: "2024-01-02", ReservationTime: "19:00", GuestName: "Siti", GuestPhone: "13900000002", PartySize: 4, Status: models.ReservationStatusPending})

	results, err := svc.Search("Budi", "")
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "Budi Santoso", results[0].GuestName)

	// Cari berdasarkan potongan nomor telepon
	results, err = svc.Search("139", "")
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "Siti", results[0].GuestName)

	// Dibatasi tanggal
	results, err = svc.Search("1", "2024-01-01")
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "Budi Santoso", results[0].GuestName)
}

func TestGetTodayStats(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewReservationService(db)

	seed := []models.Reservation{
		{ReservationDate: "2024-01-01", ReservationTime: "18:00", GuestName: "A", GuestPhone: "1", PartySize: 4, Status: models.ReservationStatusArrived},
		{ReservationDate: "2024-01-01", ReservationTime: "18:30", GuestName: "B", GuestPhone: "2", PartySize: 2, Status: models.ReservationStatusPending},
		{ReservationDate: "2024-01-01", ReservationTime: "19:00", GuestName: "C", GuestPhone: "3", PartySize: 6, Status: models.ReservationStatusCancelled},
		{ReservationDate: "2024-01-01", ReservationTime: "19:30", GuestName: "D", GuestPhone: "4", PartySize: 3, Status: models.ReservationStatusCancelled, IsHighRisk: 1},
	}
	for i := range seed {
		assert.NoError(t, db.Create(&seed[i]).Error)
	}

	stats, err := svc.GetTodayStats("2024-01-01")
	assert.NoError(t, err)
	assert.Equal(t, 4, stats.TotalReservations)
	assert.Equal(t, 15, stats.TotalPeople)
	assert.Equal(t, 1, stats.ArrivedCount)
	assert.Equal(t, 1, stats.PendingCount)
	assert.Equal(t, 2, stats.CancelledCount)
	assert.Equal(t, 1, stats.NoShowCount)
}
