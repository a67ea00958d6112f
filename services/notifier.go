package services

import (
	"github.com/yeremiapane/restaurant-table-manager/models"
	"github.com/yeremiapane/restaurant-table-manager/utils"
	"gorm.io/gorm"
)

// Notifier mengirim notifikasi ke pemilik/staff. Mengembalikan true
// kalau pengiriman berhasil; tidak ada retry.
type Notifier interface {
	Notify(title, content string) bool
}

// DBNotifier menyimpan notifikasi sebagai row supaya muncul di dashboard.
type DBNotifier struct {
	DB *gorm.DB
}

func (n *DBNotifier) Notify(title, content string) bool {
	notif := models.Notification{
		Title:   title,
		Message: content,
	}

	if err := n.DB.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to store notification: %v", err)
		return false
	}

	utils.InfoLogger.Printf("Notification sent: %s", title)
	return true
}
