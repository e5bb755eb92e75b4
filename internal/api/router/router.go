package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shafqatdeveloper/campus-navigator/config"
	"github.com/shafqatdeveloper/campus-navigator/internal/api/handler"
	"github.com/shafqatdeveloper/campus-navigator/internal/api/middleware"
	"github.com/shafqatdeveloper/campus-navigator/pkg/jwt"
	"github.com/shafqatdeveloper/campus-navigator/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// 公开路由：名录查询、时间表查询、问答、导航、快照订阅；
// 管理路由（JWT）：名录维护、时间表删除、创建向导、导出
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	db *gorm.DB,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(8 << 20)) // 问答接口可能携带语音文件

	// ── 健康检查 ──
	health := handler.NewHealthHandler(db, rdb)
	r.GET("/health", health.Health)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 名录与时间表（公开只读）
		v1.GET("/teachers", h.Teacher.List)
		v1.GET("/teachers/:id", h.Teacher.Get)
		v1.GET("/rooms", h.Room.List)
		v1.GET("/rooms/:id", h.Room.Get)
		v1.GET("/timetables", h.Timetable.List)
		v1.GET("/timetables/:id", h.Timetable.Get)
		v1.GET("/timetables/:id/view", h.Timetable.View)
		v1.GET("/time-slots", h.Timetable.TimeSlots)

		// 问答与导航（公开）
		v1.POST("/ask", middleware.RateLimit(rdb, 20, time.Minute), h.Ask.Ask)
		v1.POST("/navigate", h.Navigate.Navigate)
		v1.GET("/navigate/locations", h.Navigate.Locations)

		// 集合快照订阅（公开，SSE）
		v1.GET("/subscribe/:collection", h.Subscribe.Subscribe)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 名录维护
			authorized.POST("/teachers", h.Teacher.Create)
			authorized.DELETE("/teachers/:id", h.Teacher.Delete)
			authorized.POST("/rooms", h.Room.Create)
			authorized.DELETE("/rooms/:id", h.Room.Delete)

			// 时间表删除与导出（创建只能走向导）
			authorized.DELETE("/timetables/:id", h.Timetable.Delete)
			authorized.GET("/timetables/:id/export/xlsx", h.Export.ExportXLSX)
			authorized.GET("/timetables/:id/export/ics", h.Export.ExportICS)

			// 创建向导
			wizard := authorized.Group("/wizard")
			{
				wizard.POST("", h.Wizard.Start)
				wizard.GET("", h.Wizard.Get)
				wizard.DELETE("", h.Wizard.Cancel)
				wizard.GET("/options", h.Wizard.Options)
				wizard.PUT("/year", h.Wizard.SetYear)
				wizard.PUT("/session", h.Wizard.SetSession)
				wizard.PUT("/section", h.Wizard.SetSection)
				wizard.PUT("/day-off", h.Wizard.SetDayOff)
				wizard.PUT("/slot", h.Wizard.SetSlot)
				wizard.POST("/next", h.Wizard.Next)
				wizard.POST("/back", h.Wizard.Back)
				wizard.POST("/submit", h.Wizard.Submit)
			}
		}
	}

	return r
}
