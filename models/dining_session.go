package models

import "time"

// DiningSession mencatat satu episode makan pada satu meja.
// Semua kolom waktu makan memakai Unix milliseconds supaya perhitungan
// sisa waktu tidak tergantung timezone database.
type DiningSession struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	TableID uint `gorm:"not null;index" json:"table_id"`
	// Waktu mulai makan (Unix ms)
	StartTime int64 `gorm:"not null" json:"start_time"`
	// Waktu selesai terjadwal (Unix ms), bertambah saat diperpanjang
	EndTime int64 `gorm:"not null" json:"end_time"`
	// Waktu selesai aktual, diisi ketika sesi ditutup
	ActualEndTime *int64 `json:"actual_end_time,omitempty"`
	// Akhir masa buffer setelah sesi ditutup
	BufferEndTime         *int64 `json:"buffer_end_time,omitempty"`
	ExtensionCount        int    `gorm:"not null;default:0" json:"extension_count"`
	TotalExtensionMinutes int    `gorm:"not null;default:0" json:"total_extension_minutes"`
	IsCompleted           int    `gorm:"not null;default:0;index" json:"is_completed"`
	Remarks               string `gorm:"type:text" json:"remarks"`
	// Kapan notifikasi timeout terakhir dikirim (Unix ms, 0 = belum pernah)
	LastAlertTime int64     `gorm:"not null;default:0" json:"last_alert_time"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}
