package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Nagatani/simple-attendance-with-pasori/config"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/api/handler"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/api/middleware"
)

// Setup Gin ルーターを初期化して返す
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── グローバルミドルウェア ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── ヘルスチェック ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		v1.GET("/session", h.Attendance.GetSession)

		// カード台帳モジュール
		v1.GET("/students", h.Student.ListStudents)
		v1.POST("/students", h.Student.Register)

		// 出席モジュール
		v1.GET("/attendance", h.Attendance.ListAttendees)
		v1.POST("/attendance", h.Attendance.Attend)
		v1.POST("/attendance/forgot", h.Attendance.Forgot)

		// エクスポートモジュール
		v1.GET("/export/attendance", h.Export.ExportAttendance)
	}

	return r
}
