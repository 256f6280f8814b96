package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "driveschool/internal/config"
	h "driveschool/internal/http/handlers"
	"driveschool/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     env.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           24 * time.Hour,
		}),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Drivers and their installment ledgers
		drivers := api.Group("/drivers")
		drivers.GET("", h.GetDrivers)
		drivers.GET("/:id", h.GetDriverByID)
		drivers.POST("", h.CreateDriver)
		drivers.PUT("/:id", h.UpdateDriver)
		drivers.DELETE("/:id", h.DeleteDriver)
		drivers.GET("/:id/installments", h.GetDriverInstallments)
		drivers.PUT("/:id/installments", h.ReplaceDriverInstallments)
		drivers.GET("/:id/compliance", h.GetDriverCompliance)
		drivers.GET("/:id/statement", h.GetDriverStatementPDF)

		// Lessons
		lessons := api.Group("/lessons")
		lessons.GET("", h.GetLessons)
		lessons.GET("/:id", h.GetLessonByID)
		lessons.POST("", h.CreateLesson)
		lessons.PUT("/:id", h.UpdateLesson)
		lessons.DELETE("/:id", h.DeleteLesson)

		// Compliance batch
		api.POST("/compliance/recompute", h.RecomputeCompliance)

		// Calendar layout
		sched := api.Group("/schedule")
		sched.GET("/day", h.GetDayLayout)
		sched.GET("/week", h.GetWeekLayout)
		sched.GET("/day-sheet", h.GetDaySheetPDF)
	}

	return r
}
