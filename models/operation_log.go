package models

import "time"

// OperationLog adalah audit trail untuk mutasi reservasi.
// Append-only: tidak pernah diubah atau dihapus.
type OperationLog struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	OperationType string `gorm:"type:varchar(20);not null" json:"operation_type"`
	ReservationID uint   `gorm:"not null;index" json:"reservation_id"`
	OperatedBy    uint   `gorm:"not null" json:"operated_by"`
	// Snapshot JSON dari field yang berubah
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
