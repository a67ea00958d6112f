package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-table-manager/services"
	"github.com/yeremiapane/restaurant-table-manager/utils"
	"gorm.io/gorm"
)

// ReservationSyncController menangani keterkaitan reservasi dengan meja:
// penempatan, mulai makan saat tamu datang, dan pembatalan.
type ReservationSyncController struct {
	DB      *gorm.DB
	Service *services.ReservationSyncService
}

func NewReservationSyncController(db *gorm.DB) *ReservationSyncController {
	return &ReservationSyncController{
		DB:      db,
		Service: services.NewReservationSyncService(db),
	}
}

// AssignTable -> tempatkan reservasi ke meja
func (sc *ReservationSyncController) AssignTable(c *gin.Context) {
	reservationID, err := strconv.Atoi(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		TableID uint `json:"table_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := sc.Service.AssignTable(uint(reservationID), req.TableID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table assigned to reservation", gin.H{"success": true})
}

// StartDining -> tamu reservasi datang, mulai hitung waktu makan
func (sc *ReservationSyncController) StartDining(c *gin.Context) {
	reservationID, err := strconv.Atoi(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := sc.Service.StartDining(uint(reservationID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Dining started from reservation", session)
}

// GetTableInfo -> reservasi + meja + sesi terkait dalam satu respons
func (sc *ReservationSyncController) GetTableInfo(c *gin.Context) {
	reservationID, err := strconv.Atoi(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	info, err := sc.Service.TableInfo(uint(reservationID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation table info", info)
}

// Release -> batalkan reservasi dan bebaskan mejanya
func (sc *ReservationSyncController) Release(c *gin.Context) {
	reservationID, err := strconv.Atoi(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := sc.Service.Release(uint(reservationID)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation released", gin.H{"success": true})
}
