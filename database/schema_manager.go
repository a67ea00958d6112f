package database

import (
	"github.com/yeremiapane/restaurant-table-manager/utils"
	"gorm.io/gorm"
)

// EnsureSchema menjalankan DDL tambahan setelah AutoMigrate.
//
// MySQL tidak punya partial unique index, jadi invariant "maksimal satu
// sesi aktif per meja" dijaga lewat generated column yang hanya terisi
// selama sesi belum selesai, lalu diberi unique index. Insert sesi kedua
// untuk meja yang sama akan gagal di level database.
func EnsureSchema(db *gorm.DB) error {
	if db.Dialector.Name() != "mysql" {
		utils.InfoLogger.Printf("Skipping schema extras for dialect %s", db.Dialector.Name())
		return nil
	}

	statements := []string{
		`ALTER TABLE dining_sessions
			ADD COLUMN IF NOT EXISTS active_table_id INT
			GENERATED ALWAYS AS (IF(is_completed = 0, table_id, NULL)) STORED`,
		`CREATE UNIQUE INDEX idx_sessions_active_table
			ON dining_sessions (active_table_id)`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			// Index yang sudah ada bukan masalah; log dan lanjut
			utils.ErrorLogger.Printf("Schema statement skipped: %v", err)
			continue
		}
		utils.InfoLogger.Printf("Schema statement executed")
	}

	// Verifikasi index
	var count int64
	db.Raw(`
        SELECT COUNT(*)
        FROM information_schema.statistics
        WHERE table_schema = DATABASE()
          AND table_name = 'dining_sessions'
          AND index_name = 'idx_sessions_active_table'
    `).Scan(&count)

	if count == 0 {
		utils.ErrorLogger.Printf("Warning: active session unique index not present")
	} else {
		utils.InfoLogger.Printf("Active session unique index verified")
	}

	return nil
}
