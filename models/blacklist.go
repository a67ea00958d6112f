package models

import "time"

// BlacklistEntry menandai nomor telepon yang tidak boleh membuat reservasi.
type BlacklistEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GuestPhone string    `gorm:"type:varchar(20);unique;not null" json:"guest_phone"`
	GuestName  string    `gorm:"type:varchar(100)" json:"guest_name"`
	Reason     string    `gorm:"type:text" json:"reason"`
	CreatedBy  uint      `gorm:"not null" json:"created_by"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (BlacklistEntry) TableName() string {
	return "blacklist"
}
