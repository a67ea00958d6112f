package models

import "time"

// Notification menyimpan notifikasi yang dikirim monitor (mis. meja timeout)
// supaya bisa ditampilkan ulang di dashboard admin.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(100)" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
