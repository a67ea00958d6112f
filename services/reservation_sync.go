package services

import (
	"fmt"

	"github.com/yeremiapane/restaurant-table-manager/models"
	"github.com/yeremiapane/restaurant-table-manager/utils"
	"gorm.io/gorm"
)

// ReservationSyncService menghubungkan buku reservasi dengan siklus meja:
// penempatan meja, mulai makan saat tamu datang, dan pelepasan meja saat
// reservasi dibatalkan.
type ReservationSyncService struct {
	DB  *gorm.DB
	Now func() int64
}

func NewReservationSyncService(db *gorm.DB) *ReservationSyncService {
	return &ReservationSyncService{
		DB:  db,
		Now: utils.NowMillis,
	}
}

// AssignTable menempatkan reservasi ke sebuah meja.
func (s *ReservationSyncService) AssignTable(reservationID, tableID uint) error {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		return err
	}

	var table models.Table
	if err := s.DB.First(&table, tableID).Error; err != nil {
		return err
	}

	if err := s.DB.Model(&reservation).Update("table_id", tableID).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("Reservation %d assigned to table %s", reservationID, table.TableNumber)
	return nil
}

// StartDining membuka sesi makan untuk reservasi yang tamu-nya sudah
// datang: membuat sesi di meja yang ditempati, menandai reservasi
// "arrived", dan mengaitkan sesinya.
func (s *ReservationSyncService) StartDining(reservationID uint) (*models.DiningSession, error) {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		return nil, err
	}

	if reservation.TableID == nil {
		return nil, ErrNoTableAssigned
	}

	var table models.Table
	if err := s.DB.First(&table, *reservation.TableID).Error; err != nil {
		return nil, err
	}

	now := s.Now()
	endTime := now + int64(table.DefaultDuration)*millisPerMinute
	bufferEnd := endTime + int64(table.BufferDuration)*millisPerMinute

	session := models.DiningSession{
		TableID:       table.ID,
		StartTime:     now,
		EndTime:       endTime,
		BufferEndTime: &bufferEnd,
		Remarks:       fmt.Sprintf("from reservation #%d - %s", reservation.ID, reservation.GuestName),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return err
		}

		if err := tx.Model(&reservation).Updates(map[string]interface{}{
			"dining_session_id": session.ID,
			"status":            models.ReservationStatusArrived,
		}).Error; err != nil {
			return err
		}

		return tx.Model(&models.Table{}).
			Where("id = ?", table.ID).
			Update("status", models.TableStatusDining).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Dining started from reservation %d on table %s", reservation.ID, table.TableNumber)
	return &session, nil
}

// ReservationTableInfo menggabungkan reservasi dengan meja dan sesi
// makan yang terkait (nil kalau belum ada).
type ReservationTableInfo struct {
	Reservation models.Reservation    `json:"reservation"`
	Table       *models.Table         `json:"table"`
	Session     *models.DiningSession `json:"session"`
}

// TableInfo mengambil reservasi beserta meja dan sesi terkaitnya
// dalam satu kali baca.
func (s *ReservationSyncService) TableInfo(reservationID uint) (*ReservationTableInfo, error) {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		return nil, err
	}

	info := ReservationTableInfo{Reservation: reservation}

	if reservation.TableID != nil {
		var table models.Table
		if err := s.DB.First(&table, *reservation.TableID).Error; err != nil {
			return nil, err
		}
		info.Table = &table
	}

	if reservation.DiningSessionID != nil {
		var session models.DiningSession
		if err := s.DB.First(&session, *reservation.DiningSessionID).Error; err != nil {
			return nil, err
		}
		info.Session = &session
	}

	return &info, nil
}

// Release membatalkan reservasi dan melepas meja yang ditempatinya.
// Sesi makan yang terkait ditandai selesai dan meja kembali idle.
func (s *ReservationSyncService) Release(reservationID uint) error {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if reservation.TableID != nil {
			if reservation.DiningSessionID != nil {
				if err := tx.Model(&models.DiningSession{}).
					Where("id = ?", *reservation.DiningSessionID).
					Update("is_completed", 1).Error; err != nil {
					return err
				}
			}

			if err := tx.Model(&models.Table{}).
				Where("id = ?", *reservation.TableID).
				Update("status", models.TableStatusIdle).Error; err != nil {
				return err
			}
		}

		return tx.Model(&reservation).Updates(map[string]interface{}{
			"status":            models.ReservationStatusCancelled,
			"table_id":          nil,
			"dining_session_id": nil,
		}).Error
	})
}
