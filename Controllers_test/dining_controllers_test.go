package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-table-manager/controllers"
	"github.com/yeremiapane/restaurant-table-manager/models"
	"github.com/yeremiapane/restaurant-table-manager/utils"
)

func setupTestDBForDining() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.Table{}, &models.DiningSession{})
	if err != nil {
		panic(err)
	}
	return db
}

func setupDiningRouter(db *gorm.DB, nowMs int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	diningCtrl := controllers.NewDiningController(db)
	diningCtrl.Service.Now = func() int64 { return nowMs }
	router.POST("/dining/start", diningCtrl.StartDining)
	router.GET("/dining/active", diningCtrl.GetAllActiveSessions)
	router.POST("/dining/:session_id/extend", diningCtrl.ExtendDining)
	router.POST("/dining/:session_id/complete", diningCtrl.CompleteDining)
	router.PATCH("/dining/:session_id/alert-time", diningCtrl.UpdateAlertTime)
	router.POST("/tables/:table_id/clear-buffer", diningCtrl.ClearBuffer)
	router.GET("/tables/:table_id/session", diningCtrl.GetActiveSession)
	return router
}

func TestStartDiningEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForDining()

	table := models.Table{TableNumber: "A1", Status: "idle", MaxCapacity: 4, DefaultDuration: 90, BufferDuration: 15, IsActive: 1}
	db.Create(&table)

	router := setupDiningRouter(db, 1_000_000)

	payloadBytes, _ := json.Marshal(map[string]uint{"table_id": table.ID})
	req, _ := http.NewRequest("POST", "/dining/start", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(1_000_000), data["start_time"])
	assert.Equal(t, float64(1_000_000+90*60*1000), data["end_time"])

	var stored models.Table
	db.First(&stored, table.ID)
	assert.Equal(t, "dining", stored.Status)
}

func TestStartDiningEndpointConflicts(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForDining()

	table := models.Table{TableNumber: "A1", Status: "dining", MaxCapacity: 4, DefaultDuration: 90, BufferDuration: 15, IsActive: 1}
	db.Create(&table)

	router := setupDiningRouter(db, 1_000_000)

	// Meja sedang dipakai -> 400
	payloadBytes, _ := json.Marshal(map[string]uint{"table_id": table.ID})
	req, _ := http.NewRequest("POST", "/dining/start", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Meja tidak ada -> 404
	payloadBytes, _ = json.Marshal(map[string]uint{"table_id": 999})
	req, _ = http.NewRequest("POST", "/dining/start", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDiningLifecycleEndpoints(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForDining()

	table := models.Table{TableNumber: "A1", Status: "idle", MaxCapacity: 4, DefaultDuration: 90, BufferDuration: 15, IsActive: 1}
	db.Create(&table)

	router := setupDiningRouter(db, 1_000_000)

	// Start
	payloadBytes, _ := json.Marshal(map[string]uint{"table_id": table.ID})
	req, _ := http.NewRequest("POST", "/dining/start", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var startResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &startResp))
	sessionID := uint(startResp["data"].(map[string]interface{})["id"].(float64))

	// Extend 30 menit
	payloadBytes, _ = json.Marshal(map[string]int{"minutes": 30})
	req, _ = http.NewRequest("POST", fmt.Sprintf("/dining/%d/extend", sessionID), bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var extendResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &extendResp))
	data := extendResp["data"].(map[string]interface{})
	assert.Equal(t, float64(1_000_000+120*60*1000), data["end_time"])
	assert.Equal(t, float64(1), data["extension_count"])

	// Complete -> meja masuk buffer
	req, _ = http.NewRequest("POST", fmt.Sprintf("/dining/%d/complete", sessionID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Table
	db.First(&stored, table.ID)
	assert.Equal(t, "buffer", stored.Status)

	// Complete kedua kali -> 400
	req, _ = http.NewRequest("POST", fmt.Sprintf("/dining/%d/complete", sessionID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Clear buffer -> idle lagi
	req, _ = http.NewRequest("POST", fmt.Sprintf("/tables/%d/clear-buffer", table.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	db.First(&stored, table.ID)
	assert.Equal(t, "idle", stored.Status)
}

func TestGetActiveSessionEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForDining()

	table := models.Table{TableNumber: "A1", Status: "idle", MaxCapacity: 4, DefaultDuration: 90, BufferDuration: 15, IsActive: 1}
	db.Create(&table)

	router := setupDiningRouter(db, 1_000_000)

	// Belum ada sesi -> data null tapi tetap 200
	req, _ := http.NewRequest("GET", fmt.Sprintf("/tables/%d/session", table.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Nil(t, response["data"])

	// Mulai sesi, lalu cek lagi
	payloadBytes, _ := json.Marshal(map[string]uint{"table_id": table.ID})
	req, _ = http.NewRequest("POST", "/dining/start", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req, _ = http.NewRequest("GET", fmt.Sprintf("/tables/%d/session", table.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := data2Map(t, response["data"])
	assert.Equal(t, float64(table.ID), data["table_id"])
}

func TestUpdateAlertTimeEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForDining()

	table := models.Table{TableNumber: "A1", Status: "dining", MaxCapacity: 4, DefaultDuration: 90, BufferDuration: 15, IsActive: 1}
	db.Create(&table)
	session := models.DiningSession{TableID: table.ID, StartTime: 1_000_000, EndTime: 2_000_000}
	db.Create(&session)

	router := setupDiningRouter(db, 1_000_000)

	payloadBytes, _ := json.Marshal(map[string]int64{"time": 5_000_000})
	req, _ := http.NewRequest("PATCH", fmt.Sprintf("/dining/%d/alert-time", session.ID), bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.DiningSession
	db.First(&stored, session.ID)
	assert.Equal(t, int64(5_000_000), stored.LastAlertTime)
}

func data2Map(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	m, ok := v.(map[string]interface{})
	assert.True(t, ok)
	return m
}
