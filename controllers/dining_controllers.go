package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-table-manager/services"
	"github.com/yeremiapane/restaurant-table-manager/utils"
	"gorm.io/gorm"
)

type DiningController struct {
	DB      *gorm.DB
	Service *services.DiningService
}

func NewDiningController(db *gorm.DB) *DiningController {
	return &DiningController{
		DB:      db,
		Service: services.NewDiningService(db),
	}
}

// StartDining -> mulai sesi makan di meja yang idle
func (dc *DiningController) StartDining(c *gin.Context) {
	var req struct {
		TableID uint `json:"table_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := dc.Service.Start(req.TableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Dining session started", session)
}

// ExtendDining -> perpanjang waktu makan
func (dc *DiningController) ExtendDining(c *gin.Context) {
	sessionID, err := strconv.Atoi(c.Param("session_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Minutes int `json:"minutes" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := dc.Service.Extend(uint(sessionID), req.Minutes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dining session extended", session)
}

// CompleteDining -> tutup sesi, meja masuk masa buffer
func (dc *DiningController) CompleteDining(c *gin.Context) {
	sessionID, err := strconv.Atoi(c.Param("session_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := dc.Service.Complete(uint(sessionID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dining session completed", session)
}

// ClearBuffer -> meja selesai dibersihkan, kembali idle
func (dc *DiningController) ClearBuffer(c *gin.Context) {
	tableID, err := strconv.Atoi(c.Param("table_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := dc.Service.ClearBuffer(uint(tableID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table buffer cleared", table)
}

// GetActiveSession -> sesi aktif satu meja (data kosong kalau tidak ada)
func (dc *DiningController) GetActiveSession(c *gin.Context) {
	tableID, err := strconv.Atoi(c.Param("table_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := dc.Service.ActiveSession(uint(tableID))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Active dining session", session)
}

// GetAllActiveSessions -> semua sesi yang belum selesai
func (dc *DiningController) GetAllActiveSessions(c *gin.Context) {
	sessions, err := dc.Service.AllActiveSessions()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Active dining sessions", sessions)
}

// UpdateAlertTime -> catat waktu notifikasi terakhir (debounce manual)
func (dc *DiningController) UpdateAlertTime(c *gin.Context) {
	sessionID, err := strconv.Atoi(c.Param("session_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Time int64 `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := dc.Service.UpdateAlertTime(uint(sessionID), req.Time); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Alert time updated", gin.H{"success": true})
}
