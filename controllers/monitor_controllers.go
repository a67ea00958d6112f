package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-table-manager/models"
	"github.com/yeremiapane/restaurant-table-manager/services"
	"github.com/yeremiapane/restaurant-table-manager/utils"
	"gorm.io/gorm"
)

type MonitorController struct {
	DB  *gorm.DB
	Now func() int64
}

func NewMonitorController(db *gorm.DB) *MonitorController {
	return &MonitorController{
		DB:  db,
		Now: utils.NowMillis,
	}
}

// TableStatusEntry menggabungkan meja dengan sesi aktifnya (kalau ada).
type TableStatusEntry struct {
	Table   models.Table          `json:"table"`
	Session *models.DiningSession `json:"session"`
}

// GetAllStatus -> snapshot lengkap semua meja beserta sesi aktifnya,
// dipakai dashboard yang polling tiap menit.
func (mc *MonitorController) GetAllStatus(c *gin.Context) {
	var tables []models.Table
	if err := mc.DB.Order("table_number asc").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var sessions []models.DiningSession
	if err := mc.DB.
		Where("is_completed = 0").
		Order("start_time asc").
		Find(&sessions).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	sessionByTable := make(map[uint]*models.DiningSession, len(sessions))
	for i := range sessions {
		if _, ok := sessionByTable[sessions[i].TableID]; !ok {
			sessionByTable[sessions[i].TableID] = &sessions[i]
		}
	}

	entries := make([]TableStatusEntry, 0, len(tables))
	for _, table := range tables {
		entries = append(entries, TableStatusEntry{
			Table:   table,
			Session: sessionByTable[table.ID],
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Table status board", entries)
}

// QueuePrediction -> perkiraan kapan tiap meja tersedia, urut tercepat
func (mc *MonitorController) QueuePrediction(c *gin.Context) {
	var tables []models.Table
	if err := mc.DB.Order("table_number asc").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var sessions []models.DiningSession
	if err := mc.DB.
		Where("is_completed = 0").
		Order("start_time asc").
		Find(&sessions).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	prediction := services.PredictQueue(tables, sessions, mc.Now())
	utils.RespondJSON(c, http.StatusOK, "Queue prediction", prediction)
}
