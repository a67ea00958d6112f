package models

import "time"

// CapacityConfig mendefinisikan kapasitas maksimal per periode waktu
// (mis. jam makan siang). Hanya dibaca oleh flow reservasi.
type CapacityConfig struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	PeriodName string `gorm:"type:varchar(50);not null" json:"period_name"`
	// Jam mulai/selesai periode, format HH:MM
	StartTime   string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime     string    `gorm:"type:varchar(5);not null" json:"end_time"`
	MaxCapacity int       `gorm:"not null" json:"max_capacity"`
	IsActive    int       `gorm:"not null;default:1" json:"is_active"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
