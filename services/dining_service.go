package services

import (
	"errors"
	"sync"

	"github.com/yeremiapane/restaurant-table-manager/models"
	"github.com/yeremiapane/restaurant-table-manager/utils"
	"gorm.io/gorm"
)

// DiningService mengelola siklus sesi makan: mulai, perpanjang, selesai,
// dan keluar dari masa buffer.
//
// Mutasi per meja diserialisasi lewat mutex per tableId supaya dua request
// "start" bersamaan tidak sama-sama lolos pengecekan sesi aktif. Unique
// index di database (lihat package database) jadi jaring pengaman kedua.
type DiningService struct {
	DB  *gorm.DB
	Now func() int64

	mu         sync.Mutex
	tableLocks map[uint]*sync.Mutex
}

func NewDiningService(db *gorm.DB) *DiningService {
	return &DiningService{
		DB:         db,
		Now:        utils.NowMillis,
		tableLocks: make(map[uint]*sync.Mutex),
	}
}

func (s *DiningService) lockTable(tableID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.tableLocks[tableID]
	if !ok {
		lock = &sync.Mutex{}
		s.tableLocks[tableID] = lock
	}
	return lock
}

// Start membuka sesi makan baru di meja yang idle.
func (s *DiningService) Start(tableID uint) (*models.DiningSession, error) {
	lock := s.lockTable(tableID)
	lock.Lock()
	defer lock.Unlock()

	var table models.Table
	if err := s.DB.First(&table, tableID).Error; err != nil {
		return nil, err
	}

	if table.Status != models.TableStatusIdle {
		return nil, ErrTableNotIdle
	}

	var count int64
	if err := s.DB.Model(&models.DiningSession{}).
		Where("table_id = ? AND is_completed = 0", tableID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSessionActive
	}

	now := s.Now()
	session := models.DiningSession{
		TableID:   tableID,
		StartTime: now,
		EndTime:   now + int64(table.DefaultDuration)*millisPerMinute,
	}

	if err := s.DB.Create(&session).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Table{}).
		Where("id = ?", tableID).
		Update("status", models.TableStatusDining).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Dining started on table %s (session %d)", table.TableNumber, session.ID)
	return &session, nil
}

// Extend menambah waktu makan. Increment dilakukan di database supaya
// dua perpanjangan bersamaan tidak saling menimpa.
func (s *DiningService) Extend(sessionID uint, minutes int) (*models.DiningSession, error) {
	if minutes < 1 {
		return nil, ErrInvalidExtension
	}

	var session models.DiningSession
	if err := s.DB.First(&session, sessionID).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"end_time":                gorm.Expr("end_time + ?", int64(minutes)*millisPerMinute),
		"extension_count":         gorm.Expr("extension_count + 1"),
		"total_extension_minutes": gorm.Expr("total_extension_minutes + ?", minutes),
	}
	if err := s.DB.Model(&models.DiningSession{}).
		Where("id = ?", sessionID).
		Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.DB.First(&session, sessionID).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Session %d extended by %d minutes (total %d)",
		session.ID, minutes, session.TotalExtensionMinutes)
	return &session, nil
}

// Complete menutup sesi makan dan memindahkan meja ke masa buffer.
// Sesi yang sudah selesai ditolak, bukan ditimpa.
func (s *DiningService) Complete(sessionID uint) (*models.DiningSession, error) {
	var session models.DiningSession
	if err := s.DB.First(&session, sessionID).Error; err != nil {
		return nil, err
	}

	lock := s.lockTable(session.TableID)
	lock.Lock()
	defer lock.Unlock()

	// Baca ulang setelah memegang lock
	if err := s.DB.First(&session, sessionID).Error; err != nil {
		return nil, err
	}
	if session.IsCompleted == 1 {
		return nil, ErrSessionCompleted
	}

	var table models.Table
	if err := s.DB.First(&table, session.TableID).Error; err != nil {
		return nil, err
	}

	now := s.Now()
	bufferEnd := now + int64(table.BufferDuration)*millisPerMinute
	session.ActualEndTime = &now
	session.BufferEndTime = &bufferEnd
	session.IsCompleted = 1

	if err := s.DB.Save(&session).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Table{}).
		Where("id = ?", table.ID).
		Update("status", models.TableStatusBuffer).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Dining completed on table %s (session %d)", table.TableNumber, session.ID)
	return &session, nil
}

// ClearBuffer mengembalikan meja dari masa buffer ke idle.
// Transisi ini selalu lewat aksi eksplisit, monitor tidak pernah
// menyentuh meja tanpa sesi aktif.
func (s *DiningService) ClearBuffer(tableID uint) (*models.Table, error) {
	lock := s.lockTable(tableID)
	lock.Lock()
	defer lock.Unlock()

	var table models.Table
	if err := s.DB.First(&table, tableID).Error; err != nil {
		return nil, err
	}

	if table.Status != models.TableStatusBuffer {
		return nil, ErrTableNotInBuffer
	}

	table.Status = models.TableStatusIdle
	if err := s.DB.Save(&table).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Table %s buffer cleared", table.TableNumber)
	return &table, nil
}

// ActiveSession mengembalikan sesi aktif sebuah meja, atau nil.
func (s *DiningService) ActiveSession(tableID uint) (*models.DiningSession, error) {
	var session models.DiningSession
	err := s.DB.
		Where("table_id = ? AND is_completed = 0", tableID).
		Order("start_time asc").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// AllActiveSessions mengembalikan semua sesi yang belum selesai.
func (s *DiningService) AllActiveSessions() ([]models.DiningSession, error) {
	var sessions []models.DiningSession
	if err := s.DB.
		Where("is_completed = 0").
		Order("start_time asc").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// UpdateAlertTime mencatat kapan notifikasi timeout terakhir dikirim.
func (s *DiningService) UpdateAlertTime(sessionID uint, timeMs int64) error {
	var session models.DiningSession
	if err := s.DB.First(&session, sessionID).Error; err != nil {
		return err
	}

	return s.DB.Model(&models.DiningSession{}).
		Where("id = ?", sessionID).
		Update("last_alert_time", timeMs).Error
}
