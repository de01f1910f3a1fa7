// api/router.go

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"space/internal/handlers"
	"space/middleware"
)

// Handlers 路由需要的处理器
type Handlers struct {
	Appliance  *handlers.ApplianceHandler
	Preference *handlers.PreferenceHandler
	Bubble     *handlers.BubbleHandler
	Monitor    *handlers.MonitorHandler
	Metrics    http.Handler
}

func SetupRouter(h Handlers, corsOrigin string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.AccessLog(), middleware.CORSMiddleware(corsOrigin))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, handlers.Response{Code: http.StatusOK, Msg: "ok"})
	})
	if h.Metrics != nil {
		router.GET("/metrics", gin.WrapH(h.Metrics))
	}

	api := router.Group("/api")

	// 家电控制
	appliances := api.Group("/appliances")
	{
		appliances.GET("", h.Appliance.List)
		appliances.GET("/:id", h.Appliance.Get)
		appliances.POST("/:id/power", h.Appliance.TogglePower)
		appliances.PATCH("/:id", h.Appliance.UpdateControls)
	}

	if h.Monitor != nil {
		api.GET("/monitor", h.Monitor.Snapshot)
	}

	// 用户偏好
	prefs := api.Group("/preferences")
	{
		prefs.GET("", h.Preference.Get)
		prefs.PUT("/tones", h.Preference.SetTones)
		prefs.POST("/tones/toggle", h.Preference.ToggleTone)
		prefs.PUT("/font-size", h.Preference.SetFontSize)
	}

	// 气泡布局
	bubbles := api.Group("/bubbles")
	{
		bubbles.POST("/layout", h.Bubble.Layout)
		bubbles.POST("/reshuffle", h.Bubble.Reshuffle)
		bubbles.GET("/tones", h.Bubble.TonesLayout)
		bubbles.PUT("/tones/canvas", h.Bubble.SetTonesCanvas)
	}

	return router
}
