package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-table-manager/controllers"
	"github.com/yeremiapane/restaurant-table-manager/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	diningCtrl := controllers.NewDiningController(db)
	monitorCtrl := controllers.NewMonitorController(db)
	reservationCtrl := controllers.NewReservationController(db)
	syncCtrl := controllers.NewReservationSyncController(db)
	notificationCtrl := controllers.NewNotificationController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Papan status untuk tablet kasir/pelayan, tanpa login
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/by-status", tableCtrl.FindTablesByStatus)
	r.GET("/tables/:table_id", tableCtrl.GetTableByID)
	r.GET("/tables/:table_id/session", diningCtrl.GetActiveSession)
	r.GET("/monitor/status", monitorCtrl.GetAllStatus)
	r.GET("/monitor/queue-prediction", monitorCtrl.QueuePrediction)

	// Operasi sesi makan dijalankan dari lantai, tanpa login
	r.POST("/dining/start", diningCtrl.StartDining)
	r.GET("/dining/active", diningCtrl.GetAllActiveSessions)
	r.POST("/dining/:session_id/extend", diningCtrl.ExtendDining)
	r.POST("/dining/:session_id/complete", diningCtrl.CompleteDining)
	r.PATCH("/dining/:session_id/alert-time", diningCtrl.UpdateAlertTime)
	r.POST("/tables/:table_id/clear-buffer", diningCtrl.ClearBuffer)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)

	// TABLE (konfigurasi meja)
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.POST("/tables", tableCtrl.CreateTable)
	auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
	auth.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	auth.DELETE("/tables/:table_id", middlewares.RequireRole("admin"), tableCtrl.DeleteTable)

	// RESERVATIONS
	auth.POST("/reservations", reservationCtrl.CreateReservation)
	auth.GET("/reservations", reservationCtrl.GetByDate)
	auth.GET("/reservations/range", reservationCtrl.GetByDateRange)
	auth.GET("/reservations/search", reservationCtrl.SearchReservations)
	auth.GET("/reservations/check-capacity", reservationCtrl.CheckCapacity)
	auth.GET("/reservations/stats", reservationCtrl.GetTodayStats)
	auth.GET("/reservations/capacity-config", reservationCtrl.GetCapacityConfig)
	auth.PATCH("/reservations/:reservation_id", reservationCtrl.UpdateReservation)
	auth.DELETE("/reservations/:reservation_id", reservationCtrl.DeleteReservation)

	// Keterkaitan reservasi dengan meja
	auth.GET("/reservations/:reservation_id/table-info", syncCtrl.GetTableInfo)
	auth.POST("/reservations/:reservation_id/assign-table", syncCtrl.AssignTable)
	auth.POST("/reservations/:reservation_id/start-dining", syncCtrl.StartDining)
	auth.POST("/reservations/:reservation_id/release", syncCtrl.Release)

	// NOTIFICATIONS
	auth.GET("/notifications", notificationCtrl.GetAllNotifications)
	auth.GET("/notifications/:notif_id", notificationCtrl.GetNotificationByID)
	auth.DELETE("/notifications/:notif_id", middlewares.RequireRole("admin"), notificationCtrl.DeleteNotification)

	return r
}
