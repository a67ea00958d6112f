package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-table-manager/services"
	"github.com/yeremiapane/restaurant-table-manager/utils"
	"gorm.io/gorm"
)

type ReservationController struct {
	DB      *gorm.DB
	Service *services.ReservationService
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{
		DB:      db,
		Service: services.NewReservationService(db),
	}
}

// operatorID mengambil user id dari context (diset auth middleware).
func operatorID(c *gin.Context) uint {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// CreateReservation -> buat reservasi baru setelah lolos blacklist + dedup
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req struct {
		ReservationDate string `json:"reservation_date" binding:"required"`
		ReservationTime string `json:"reservation_time" binding:"required"`
		GuestName       string `json:"guest_name" binding:"required"`
		GuestPhone      string `json:"guest_phone" binding:"required"`
		PartySize       int    `json:"party_size" binding:"required,min=1"`
		Source          string `json:"source" binding:"omitempty,oneof=phone wechat walk-in platform other"`
		Remarks         string `json:"remarks"`
		Tags            string `json:"tags"`
		TableID         *uint  `json:"table_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Service.Create(services.ReservationInput{
		ReservationDate: req.ReservationDate,
		ReservationTime: req.ReservationTime,
		GuestName:       req.GuestName,
		GuestPhone:      req.GuestPhone,
		PartySize:       req.PartySize,
		Source:          req.Source,
		Remarks:         req.Remarks,
		Tags:            req.Tags,
		TableID:         req.TableID,
	}, operatorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}

// UpdateReservation -> ubah field reservasi per-field
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		ReservationDate *string `json:"reservation_date"`
		ReservationTime *string `json:"reservation_time"`
		GuestName       *string `json:"guest_name"`
		GuestPhone      *string `json:"guest_phone"`
		PartySize       *int    `json:"party_size" binding:"omitempty,min=1"`
		Source          *string `json:"source" binding:"omitempty,oneof=phone wechat walk-in platform other"`
		Status          *string `json:"status" binding:"omitempty,oneof=pending confirmed arrived completed cancelled"`
		Remarks         *string `json:"remarks"`
		Tags            *string `json:"tags"`
		TableID         *uint   `json:"table_id"`
		IsHighRisk      *int    `json:"is_high_risk" binding:"omitempty,oneof=0 1"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	changes := map[string]interface{}{}
	if req.ReservationDate != nil {
		changes["reservation_date"] = *req.ReservationDate
	}
	if req.ReservationTime != nil {
		changes["reservation_time"] = *req.ReservationTime
	}
	if req.GuestName != nil {
		changes["guest_name"] = *req.GuestName
	}
	if req.GuestPhone != nil {
		changes["guest_phone"] = *req.GuestPhone
	}
	if req.PartySize != nil {
		changes["party_size"] = *req.PartySize
	}
	if req.Source != nil {
		changes["source"] = *req.Source
	}
	if req.Status != nil {
		changes["status"] = *req.Status
	}
	if req.Remarks != nil {
		changes["remarks"] = *req.Remarks
	}
	if req.Tags != nil {
		changes["tags"] = *req.Tags
	}
	if req.TableID != nil {
		changes["table_id"] = *req.TableID
	}
	if req.IsHighRisk != nil {
		changes["is_high_risk"] = *req.IsHighRisk
	}

	if len(changes) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no fields to update"))
		return
	}

	reservation, err := rc.Service.Update(uint(id), changes, operatorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation updated", reservation)
}

// DeleteReservation -> hard delete, jejak tersimpan di operation log
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	role, _ := c.Get("role")
	if role != "admin" && role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	id, err := strconv.Atoi(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := rc.Service.Delete(uint(id), operatorID(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Reservation %d deleted", id)
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted", gin.H{"success": true})
}

// GetByDate -> reservasi satu tanggal
func (rc *ReservationController) GetByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("date is required"))
		return
	}

	reservations, err := rc.Service.ByDate(date)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservations for "+date, reservations)
}

// GetByDateRange -> reservasi dalam rentang tanggal
func (rc *ReservationController) GetByDateRange(c *gin.Context) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("start_date and end_date are required"))
		return
	}

	reservations, err := rc.Service.ByDateRange(startDate, endDate)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservations in range", reservations)
}

// SearchReservations -> cari berdasarkan nama/telepon
func (rc *ReservationController) SearchReservations(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("q is required"))
		return
	}

	reservations, err := rc.Service.Search(query, c.Query("date"))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Search results", reservations)
}

// CheckCapacity -> hitung kapasitas terpakai satu slot waktu (advisory)
func (rc *ReservationController) CheckCapacity(c *gin.Context) {
	date := c.Query("date")
	startTime := c.Query("start_time")
	endTime := c.Query("end_time")
	maxCapacity, err := strconv.Atoi(c.Query("max_capacity"))
	if date == "" || startTime == "" || endTime == "" || err != nil {
		utils.RespondError(c, http.StatusBadRequest,
			errors.New("date, start_time, end_time and max_capacity are required"))
		return
	}

	report, err := rc.Service.CheckCapacity(date, startTime, endTime, maxCapacity)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Capacity report", report)
}

// GetTodayStats -> ringkasan reservasi satu tanggal
func (rc *ReservationController) GetTodayStats(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("date is required"))
		return
	}

	stats, err := rc.Service.GetTodayStats(date)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation stats", stats)
}

// GetCapacityConfig -> konfigurasi kapasitas per periode
func (rc *ReservationController) GetCapacityConfig(c *gin.Context) {
	configs, err := rc.Service.CapacityConfigs()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Capacity config", configs)
}
