package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-table-manager/models"
	"github.com/yeremiapane/restaurant-table-manager/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// CreateTable -> menambahkan meja baru
func (tc *TableController) CreateTable(c *gin.Context) {
	// Pointer fields supaya 0 eksplisit bisa dibedakan dari field kosong
	var req struct {
		TableNumber     string `json:"table_number" binding:"required"`
		MaxCapacity     *int   `json:"max_capacity" binding:"omitempty,min=1"`
		DefaultDuration *int   `json:"default_duration" binding:"omitempty,min=1"`
		BufferDuration  *int   `json:"buffer_duration" binding:"omitempty,min=0"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		TableNumber:     req.TableNumber,
		MaxCapacity:     4,
		DefaultDuration: 90,
		BufferDuration:  15,
		Status:          models.TableStatusIdle,
		IsActive:        1,
	}
	if req.MaxCapacity != nil {
		table.MaxCapacity = *req.MaxCapacity
	}
	if req.DefaultDuration != nil {
		table.DefaultDuration = *req.DefaultDuration
	}
	if req.BufferDuration != nil {
		table.BufferDuration = *req.BufferDuration
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New table created: %s (capacity=%d, duration=%dm)",
		table.TableNumber, table.MaxCapacity, table.DefaultDuration)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> menampilkan seluruh meja, urut nomor
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("table_number asc").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail satu meja
func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTable -> update konfigurasi meja (parsial)
func (tc *TableController) UpdateTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var body struct {
		TableNumber     *string `json:"table_number" binding:"omitempty,min=1"`
		MaxCapacity     *int    `json:"max_capacity" binding:"omitempty,min=1"`
		DefaultDuration *int    `json:"default_duration" binding:"omitempty,min=1"`
		BufferDuration  *int    `json:"buffer_duration" binding:"omitempty,min=0"`
		Status          *string `json:"status" binding:"omitempty,oneof=idle dining warning timeout buffer disabled"`
		IsActive        *int    `json:"is_active" binding:"omitempty,oneof=0 1"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.TableNumber != nil {
		table.TableNumber = *body.TableNumber
	}
	if body.MaxCapacity != nil {
		table.MaxCapacity = *body.MaxCapacity
	}
	if body.DefaultDuration != nil {
		table.DefaultDuration = *body.DefaultDuration
	}
	if body.BufferDuration != nil {
		table.BufferDuration = *body.BufferDuration
	}
	if body.Status != nil {
		table.Status = *body.Status
	}
	if body.IsActive != nil {
		table.IsActive = *body.IsActive
		// Toggle aktif langsung tercermin di status
		if table.IsActive == 0 {
			table.Status = models.TableStatusDisabled
		} else if table.Status == models.TableStatusDisabled {
			table.Status = models.TableStatusIdle
		}
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d updated (status=%s)", table.ID, table.Status)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable -> menghapus meja
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table

	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{
		"id": table.ID,
	})
}

// FindTablesByStatus -> mis. list meja idle
func (tc *TableController) FindTablesByStatus(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		status = models.TableStatusIdle
	}
	var tables []models.Table
	if err := tc.DB.Where("status = ?", status).Order("table_number asc").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tables with status: "+status, tables)
}
