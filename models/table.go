package models

import "time"

// Status meja mengikuti siklus: idle -> dining -> warning -> timeout,
// lalu buffer setelah sesi selesai. "disabled" diatur manual oleh admin.
const (
	TableStatusIdle     = "idle"
	TableStatusDining   = "dining"
	TableStatusWarning  = "warning"
	TableStatusTimeout  = "timeout"
	TableStatusBuffer   = "buffer"
	TableStatusDisabled = "disabled"
)

type Table struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	TableNumber string `gorm:"type:varchar(20);unique;not null" json:"table_number"`
	// Kapasitas maksimal (jumlah orang)
	MaxCapacity int `gorm:"not null;default:4" json:"max_capacity"`
	// Durasi makan default dalam menit
	DefaultDuration int `gorm:"not null;default:90" json:"default_duration"`
	// Durasi buffer (jeda bersih-bersih) dalam menit
	BufferDuration int       `gorm:"not null;default:15" json:"buffer_duration"`
	Status         string    `gorm:"type:varchar(20);not null;default:'idle'" json:"status"`
	IsActive       int       `gorm:"not null;default:1" json:"is_active"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}
