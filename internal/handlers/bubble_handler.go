// internal/handlers/bubble_handler.go

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"space/internal/bubble"
	"space/internal/events"
)

// 页面到边距的映射
var screenMargins = map[string]bubble.Margins{
	"tone":    bubble.ToneMargins,
	"persona": bubble.PersonaMargins,
}

type LayoutRequest struct {
	Labels []string `json:"labels"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Screen string   `json:"screen" binding:"required"`
}

type ReshuffleRequest struct {
	Bubbles []bubble.State `json:"bubbles"`
	Width   float64        `json:"width"`
	Height  float64        `json:"height"`
	Screen  string         `json:"screen" binding:"required"`
}

type CanvasRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type TonesLayoutResponse struct {
	Canvas  bubble.Size    `json:"canvas"`
	Bubbles []bubble.State `json:"bubbles"`
}

type BubbleHandler struct {
	rng   bubble.Source
	tones *bubble.Synchronizer
	bus   *events.EventBus
}

func NewBubbleHandler(rng bubble.Source, tones *bubble.Synchronizer, bus *events.EventBus) *BubbleHandler {
	return &BubbleHandler{rng: rng, tones: tones, bus: bus}
}

// Layout 生成初始布局
func (h *BubbleHandler) Layout(c *gin.Context) {
	var req LayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}
	margins, found := screenMargins[req.Screen]
	if !found {
		fail(c, http.StatusBadRequest, "无效的页面，只能为 tone 或 persona", nil)
		return
	}
	canvas := bubble.Size{Width: req.Width, Height: req.Height}
	out := bubble.InitializeLayout(req.Labels, canvas, margins, h.rng)
	h.publish(req.Screen, bubble.KindInitialize)
	ok(c, "success", out)
}

// Reshuffle 重新随机位置
func (h *BubbleHandler) Reshuffle(c *gin.Context) {
	var req ReshuffleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}
	margins, found := screenMargins[req.Screen]
	if !found {
		fail(c, http.StatusBadRequest, "无效的页面，只能为 tone 或 persona", nil)
		return
	}
	canvas := bubble.Size{Width: req.Width, Height: req.Height}
	out := bubble.Reshuffle(req.Bubbles, canvas, margins, h.rng)
	h.publish(req.Screen, bubble.KindReshuffle)
	ok(c, "success", out)
}

// SetTonesCanvas 语气页上报画布尺寸
func (h *BubbleHandler) SetTonesCanvas(c *gin.Context) {
	var req CanvasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}
	if req.Width < 0 || req.Height < 0 {
		fail(c, http.StatusBadRequest, "画布尺寸不能为负数", nil)
		return
	}
	h.tones.SetCanvas(bubble.Size{Width: req.Width, Height: req.Height})
	h.TonesLayout(c)
}

// TonesLayout 语气页当前布局
func (h *BubbleHandler) TonesLayout(c *gin.Context) {
	ok(c, "success", TonesLayoutResponse{
		Canvas:  h.tones.Canvas(),
		Bubbles: h.tones.Layout(),
	})
}

func (h *BubbleHandler) publish(screen, kind string) {
	if h.bus != nil {
		h.bus.Publish(events.New(events.EventLayoutChanged, events.LayoutEventData{Screen: screen, Kind: kind}))
	}
}
