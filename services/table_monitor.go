package services

import (
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-table-manager/models"
	"github.com/yeremiapane/restaurant-table-manager/utils"
	"gorm.io/gorm"
)

// TableMonitor memeriksa status semua meja secara berkala: menandai
// warning/timeout berdasarkan sisa waktu dan mengirim notifikasi timeout
// yang sudah di-debounce.
type TableMonitor struct {
	DB       *gorm.DB
	Notifier Notifier
	Interval time.Duration
	Now      func() int64
	StopChan chan struct{}

	// Guard supaya tick tidak tumpang tindih kalau satu pass lambat
	checking chan struct{}
}

func NewTableMonitor(db *gorm.DB, notifier Notifier) *TableMonitor {
	return &TableMonitor{
		DB:       db,
		Notifier: notifier,
		Interval: 60 * time.Second,
		Now:      utils.NowMillis,
		StopChan: make(chan struct{}),
		checking: make(chan struct{}, 1),
	}
}

func (tm *TableMonitor) Start() {
	utils.InfoLogger.Println("Table monitor started")

	go func() {
		// Jalankan sekali saat startup sebelum menunggu tick pertama
		tm.runCheck()

		ticker := time.NewTicker(tm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				tm.runCheck()
			case <-tm.StopChan:
				return
			}
		}
	}()
}

func (tm *TableMonitor) Stop() {
	close(tm.StopChan)
}

// runCheck menjalankan satu pass. Pass yang masih berjalan membuat pass
// berikutnya dilewati, tidak diantri.
func (tm *TableMonitor) runCheck() {
	select {
	case tm.checking <- struct{}{}:
	default:
		utils.InfoLogger.Println("Monitor pass still running, skipping tick")
		return
	}
	defer func() { <-tm.checking }()

	defer func() {
		if r := recover(); r != nil {
			utils.ErrorLogger.Printf("Monitor pass panicked: %v", r)
		}
	}()

	if err := tm.checkAllTables(); err != nil {
		utils.ErrorLogger.Printf("Monitor pass failed: %v", err)
	}
}

func (tm *TableMonitor) checkAllTables() error {
	now := tm.Now()

	var allTables []models.Table
	if err := tm.DB.Order("table_number asc").Find(&allTables).Error; err != nil {
		return err
	}

	var activeSessions []models.DiningSession
	if err := tm.DB.
		Where("is_completed = 0").
		Order("start_time asc").
		Find(&activeSessions).Error; err != nil {
		return err
	}

	sessionMap := buildSessionMap(activeSessions)

	var timeoutTables []string

	for _, table := range allTables {
		session, ok := sessionMap[table.ID]
		if !ok {
			// Meja tanpa sesi aktif tidak disentuh; keluar dari buffer
			// hanya lewat aksi eksplisit
			continue
		}

		newStatus := DeriveTableStatus(table, &session, now)
		if newStatus != table.Status && newStatus != models.TableStatusDisabled {
			if err := tm.DB.Model(&models.Table{}).
				Where("id = ?", table.ID).
				Update("status", newStatus).Error; err != nil {
				utils.ErrorLogger.Printf("Failed to update table %s status: %v", table.TableNumber, err)
				continue
			}
			utils.InfoLogger.Printf("Table %s status %s -> %s", table.TableNumber, table.Status, newStatus)
		}

		// Notifikasi timeout, maksimal sekali per 3 menit per sesi
		if newStatus == models.TableStatusTimeout {
			sinceLastAlert := now - session.LastAlertTime
			if session.LastAlertTime == 0 || sinceLastAlert >= AlertIntervalMs {
				timeoutTables = append(timeoutTables, table.TableNumber)
				if err := tm.DB.Model(&models.DiningSession{}).
					Where("id = ?", session.ID).
					Update("last_alert_time", now).Error; err != nil {
					utils.ErrorLogger.Printf("Failed to update alert time for session %d: %v", session.ID, err)
				}
			}
		}
	}

	// Satu notifikasi gabungan untuk semua meja yang timeout di pass ini
	if len(timeoutTables) > 0 {
		tableList := strings.Join(timeoutTables, ", ")
		title := "Table timeout alert"
		content := "The following tables have exceeded their dining time: " + tableList

		if tm.Notifier.Notify(title, content) {
			utils.InfoLogger.Printf("Timeout notification sent for: %s", tableList)
		} else {
			utils.ErrorLogger.Printf("Failed to send timeout notification for: %s", tableList)
		}
	}

	return nil
}
