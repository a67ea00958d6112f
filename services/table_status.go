package services

import (
	"sort"

	"github.com/yeremiapane/restaurant-table-manager/models"
)

const (
	// Sisa waktu <= 15 menit dianggap "warning"
	WarningThresholdMs = 15 * 60 * 1000
	// Jarak minimal antar notifikasi timeout untuk sesi yang sama
	AlertIntervalMs = 3 * 60 * 1000

	millisPerMinute = 60 * 1000
)

// DeriveTableStatus menghitung status tampilan sebuah meja dari sesi
// aktifnya dan waktu sekarang. Murni: tidak menyentuh database.
//
// Status "buffer" dan "disabled" bukan fungsi dari waktu; keduanya diatur
// oleh aksi eksplisit (tutup sesi / toggle admin) dan di sini hanya
// diteruskan apa adanya.
func DeriveTableStatus(table models.Table, session *models.DiningSession, nowMs int64) string {
	if table.IsActive == 0 || table.Status == models.TableStatusDisabled {
		return models.TableStatusDisabled
	}

	if session == nil || session.IsCompleted == 1 {
		if table.Status == models.TableStatusBuffer {
			return models.TableStatusBuffer
		}
		return models.TableStatusIdle
	}

	remaining := session.EndTime - nowMs
	switch {
	case remaining <= 0:
		return models.TableStatusTimeout
	case remaining <= WarningThresholdMs:
		return models.TableStatusWarning
	default:
		return models.TableStatusDining
	}
}

// TableAvailability adalah satu baris hasil prediksi antrian.
type TableAvailability struct {
	TableID     uint   `json:"table_id"`
	TableNumber string `json:"table_number"`
	AvailableAt int64  `json:"available_at"`
	Status      string `json:"status"`
}

// PredictQueue menghitung kapan setiap meja aktif menjadi tersedia,
// terurut menaik. Meja "disabled" atau non-aktif tidak ikut dihitung.
// Meja idle tersedia sekarang; meja dengan sesi aktif tersedia pada
// endTime + buffer; meja tanpa sesi (mis. sedang buffer tanpa referensi
// sesi) dianggap tersedia sekarang.
func PredictQueue(tables []models.Table, sessions []models.DiningSession, nowMs int64) []TableAvailability {
	sessionMap := buildSessionMap(sessions)

	result := make([]TableAvailability, 0, len(tables))
	for _, table := range tables {
		if table.IsActive == 0 || table.Status == models.TableStatusDisabled {
			continue
		}

		var availableAt int64
		session, ok := sessionMap[table.ID]
		if table.Status == models.TableStatusIdle {
			availableAt = nowMs
		} else if ok {
			availableAt = session.EndTime + int64(table.BufferDuration)*millisPerMinute
		} else {
			availableAt = nowMs
		}

		result = append(result, TableAvailability{
			TableID:     table.ID,
			TableNumber: table.TableNumber,
			AvailableAt: availableAt,
			Status:      table.Status,
		})
	}

	// Stable: urutan input dipertahankan untuk availableAt yang sama
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AvailableAt < result[j].AvailableAt
	})

	return result
}

// buildSessionMap memetakan tableId ke sesi aktifnya. Kalau ada lebih dari
// satu (seharusnya tidak terjadi), sesi paling awal yang dipakai.
func buildSessionMap(sessions []models.DiningSession) map[uint]models.DiningSession {
	sessionMap := make(map[uint]models.DiningSession, len(sessions))
	for _, session := range sessions {
		if existing, ok := sessionMap[session.TableID]; ok && existing.StartTime <= session.StartTime {
			continue
		}
		sessionMap[session.TableID] = session
	}
	return sessionMap
}
