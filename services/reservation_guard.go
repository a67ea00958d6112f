package services

import (
	"encoding/json"

	"github.com/yeremiapane/restaurant-table-manager/models"
	"github.com/yeremiapane/restaurant-table-manager/utils"
	"gorm.io/gorm"
)

// ReservationService membungkus buku reservasi: pengecekan blacklist,
// deteksi reservasi ganda, akunting kapasitas, dan audit log.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

// ReservationInput adalah data pembuatan reservasi setelah validasi binding.
type ReservationInput struct {
	ReservationDate string
	ReservationTime string
	GuestName       string
	GuestPhone      string
	PartySize       int
	Source          string
	Remarks         string
	Tags            string
	TableID         *uint
}

// IsPhoneBlacklisted mengecek apakah nomor telepon masuk daftar hitam.
func (s *ReservationService) IsPhoneBlacklisted(phone string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.BlacklistEntry{}).
		Where("guest_phone = ?", phone).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasDuplicateReservation mengecek reservasi non-batal lain untuk nomor
// telepon dan tanggal yang sama. excludeID > 0 mengabaikan satu reservasi
// (dipakai saat update).
func (s *ReservationService) HasDuplicateReservation(phone, date string, excludeID uint) (bool, error) {
	query := s.DB.Model(&models.Reservation{}).
		Where("guest_phone = ? AND reservation_date = ?", phone, date).
		Where("status IN ?", []string{
			models.ReservationStatusPending,
			models.ReservationStatusConfirmed,
			models.ReservationStatusArrived,
		})
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create menjalankan guard blacklist + duplikat lalu menyimpan reservasi
// beserta baris audit log dalam satu transaksi.
func (s *ReservationService) Create(input ReservationInput, operatorID uint) (*models.Reservation, error) {
	blacklisted, err := s.IsPhoneBlacklisted(input.GuestPhone)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, ErrBlacklisted
	}

	duplicate, err := s.HasDuplicateReservation(input.GuestPhone, input.ReservationDate, 0)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, ErrDuplicateReservation
	}

	source := input.Source
	if source == "" {
		source = models.ReservationSourcePhone
	}

	reservation := models.Reservation{
		ReservationDate: input.ReservationDate,
		ReservationTime: input.ReservationTime,
		GuestName:       input.GuestName,
		GuestPhone:      input.GuestPhone,
		PartySize:       input.PartySize,
		Source:          source,
		Status:          models.ReservationStatusPending,
		Remarks:         input.Remarks,
		Tags:            input.Tags,
		TableID:         input.TableID,
		CreatedBy:       operatorID,
		UpdatedBy:       operatorID,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}
		return s.logOperation(tx, "create", reservation.ID, operatorID, input)
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %d created for %s on %s %s",
		reservation.ID, reservation.GuestName, reservation.ReservationDate, reservation.ReservationTime)
	return &reservation, nil
}

// Update mengubah field reservasi bebas per-field dan mencatat snapshot
// perubahan ke audit log.
func (s *ReservationService) Update(id uint, changes map[string]interface{}, operatorID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, id).Error; err != nil {
		return nil, err
	}

	changes["updated_by"] = operatorID

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&reservation).Updates(changes).Error; err != nil {
			return err
		}
		return s.logOperation(tx, "update", id, operatorID, changes)
	})
	if err != nil {
		return nil, err
	}

	if err := s.DB.First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Delete menghapus reservasi secara permanen; jejaknya tinggal di audit log.
func (s *ReservationService) Delete(id uint, operatorID uint) error {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, id).Error; err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&reservation).Error; err != nil {
			return err
		}
		return s.logOperation(tx, "delete", id, operatorID, map[string]interface{}{
			"deleted_reservation_id": id,
		})
	})
}

// ByDate mengembalikan reservasi satu tanggal, urut jam.
func (s *ReservationService) ByDate(date string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.DB.
		Where("reservation_date = ?", date).
		Order("reservation_time asc").
		Find(&reservations).Error
	if err != nil {
		utils.ErrorLogger.Printf("Failed to load reservations for %s: %v", date, err)
		return []models.Reservation{}, nil
	}
	return reservations, nil
}

// ByDateRange mengembalikan reservasi dalam rentang tanggal inklusif.
func (s *ReservationService) ByDateRange(startDate, endDate string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.DB.
		Where("reservation_date >= ? AND reservation_date <= ?", startDate, endDate).
		Order("reservation_date asc, reservation_time asc").
		Find(&reservations).Error
	if err != nil {
		utils.ErrorLogger.Printf("Failed to load reservations %s..%s: %v", startDate, endDate, err)
		return []models.Reservation{}, nil
	}
	return reservations, nil
}

// Search mencari berdasarkan nama atau nomor telepon, opsional dibatasi
// satu tanggal.
func (s *ReservationService) Search(query, date string) ([]models.Reservation, error) {
	pattern := "%" + query + "%"

	tx := s.DB.Where("guest_name LIKE ? OR guest_phone LIKE ?", pattern, pattern)
	if date != "" {
		tx = s.DB.
			Where("reservation_date = ?", date).
			Where("guest_name LIKE ? OR guest_phone LIKE ?", pattern, pattern)
	}

	var reservations []models.Reservation
	order := "reservation_date asc, reservation_time asc"
	if date != "" {
		order = "reservation_time asc"
	}
	if err := tx.Order(order).Find(&reservations).Error; err != nil {
		utils.ErrorLogger.Printf("Reservation search failed: %v", err)
		return []models.Reservation{}, nil
	}
	return reservations, nil
}

// CapacityForTimeSlot menjumlahkan party size reservasi aktif dalam satu
// slot waktu.
func (s *ReservationService) CapacityForTimeSlot(date, startTime, endTime string) (int, error) {
	var total int64
	err := s.DB.Model(&models.Reservation{}).
		Where("reservation_date = ?", date).
		Where("reservation_time >= ? AND reservation_time <= ?", startTime, endTime).
		Where("status IN ?", []string{
			models.ReservationStatusPending,
			models.ReservationStatusConfirmed,
			models.ReservationStatusArrived,
		}).
		Select("COALESCE(SUM(party_size), 0)").
		Scan(&total).Error
	if err != nil {
		utils.ErrorLogger.Printf("Failed to compute slot capacity: %v", err)
		return 0, nil
	}
	return int(total), nil
}

// CapacityReport adalah hasil cek kapasitas. Advisory: pemanggil yang
// memutuskan mau lanjut atau tidak, pembuatan reservasi tidak diblokir.
type CapacityReport struct {
	CurrentCapacity int  `json:"current_capacity"`
	MaxCapacity     int  `json:"max_capacity"`
	IsOverCapacity  bool `json:"is_over_capacity"`
	AvailableSeats  int  `json:"available_seats"`
}

func (s *ReservationService) CheckCapacity(date, startTime, endTime string, maxCapacity int) (CapacityReport, error) {
	current, err := s.CapacityForTimeSlot(date, startTime, endTime)
	if err != nil {
		return CapacityReport{}, err
	}

	available := maxCapacity - current
	if available < 0 {
		available = 0
	}

	return CapacityReport{
		CurrentCapacity: current,
		MaxCapacity:     maxCapacity,
		IsOverCapacity:  current >= maxCapacity,
		AvailableSeats:  available,
	}, nil
}

// TodayStats merangkum reservasi satu tanggal untuk dashboard.
type TodayStats struct {
	TotalReservations int `json:"total_reservations"`
	TotalPeople       int `json:"total_people"`
	ArrivedCount      int `json:"arrived_count"`
	PendingCount      int `json:"pending_count"`
	CancelledCount    int `json:"cancelled_count"`
	NoShowCount       int `json:"no_show_count"`
}

func (s *ReservationService) GetTodayStats(date string) (TodayStats, error) {
	reservations, err := s.ByDate(date)
	if err != nil {
		return TodayStats{}, err
	}

	stats := TodayStats{TotalReservations: len(reservations)}
	for _, r := range reservations {
		stats.TotalPeople += r.PartySize
		switch r.Status {
		case models.ReservationStatusArrived:
			stats.ArrivedCount++
		case models.ReservationStatusPending:
			stats.PendingCount++
		case models.ReservationStatusCancelled:
			stats.CancelledCount++
			// Pembatalan tamu berisiko tinggi dihitung sebagai no-show
			if r.IsHighRisk == 1 {
				stats.NoShowCount++
			}
		}
	}
	return stats, nil
}

// CapacityConfigs mengembalikan konfigurasi kapasitas per periode.
func (s *ReservationService) CapacityConfigs() ([]models.CapacityConfig, error) {
	var configs []models.CapacityConfig
	if err := s.DB.Order("start_time asc").Find(&configs).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to load capacity config: %v", err)
		return []models.CapacityConfig{}, nil
	}
	return configs, nil
}

// logOperation menambah baris audit; detail disimpan sebagai JSON.
func (s *ReservationService) logOperation(tx *gorm.DB, opType string, reservationID, operatorID uint, details interface{}) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return err
	}

	return tx.Create(&models.OperationLog{
		OperationType: opType,
		ReservationID: reservationID,
		OperatedBy:    operatorID,
		Details:       string(payload),
	}).Error
}
