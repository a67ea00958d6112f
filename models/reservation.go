package models

import "time"

const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusArrived   = "arrived"
	ReservationStatusCompleted = "completed"
	ReservationStatusCancelled = "cancelled"
)

// Sumber pemesanan
const (
	ReservationSourcePhone    = "phone"
	ReservationSourceWechat   = "wechat"
	ReservationSourceWalkIn   = "walk-in"
	ReservationSourcePlatform = "platform"
	ReservationSourceOther    = "other"
)

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Tanggal reservasi format YYYY-MM-DD
	ReservationDate string `gorm:"type:varchar(10);not null;index" json:"reservation_date"`
	// Jam reservasi format HH:MM
	ReservationTime string `gorm:"type:varchar(5);not null" json:"reservation_time"`
	GuestName       string `gorm:"type:varchar(100);not null" json:"guest_name"`
	// Nomor telepon dipakai sebagai kunci dedup dan blacklist
	GuestPhone string `gorm:"type:varchar(20);not null;index" json:"guest_phone"`
	PartySize  int    `gorm:"not null" json:"party_size"`
	Source     string `gorm:"type:varchar(20);not null;default:'phone'" json:"source"`
	Status     string `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Remarks    string `gorm:"type:text" json:"remarks"`
	// Tag dipisah koma, mis. "VIP,ulang tahun"
	Tags            string    `gorm:"type:text" json:"tags"`
	TableID         *uint     `gorm:"index" json:"table_id,omitempty"`
	DiningSessionID *uint     `json:"dining_session_id,omitempty"`
	CreatedBy       uint      `gorm:"not null" json:"created_by"`
	UpdatedBy       uint      `gorm:"not null" json:"updated_by"`
	IsHighRisk      int       `gorm:"not null;default:0" json:"is_high_risk"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}
