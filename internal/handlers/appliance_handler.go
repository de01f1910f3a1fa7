// internal/handlers/appliance_handler.go

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"space/internal/appliance"
	"space/internal/appstate"
)

// 控制请求
type ControlRequest struct {
	Mode           *string  `json:"mode"`
	PrimaryValue   *float64 `json:"primaryValue"`
	SecondaryValue *float64 `json:"secondaryValue"`
	Location       *string  `json:"location"`
}

type ApplianceHandler struct {
	board *appstate.Board
}

func NewApplianceHandler(board *appstate.Board) *ApplianceHandler {
	return &ApplianceHandler{board: board}
}

// List 家电卡片，可用 ?variant= 按类型过滤
func (h *ApplianceHandler) List(c *gin.Context) {
	cards := h.board.Cards()
	raw := c.Query("variant")
	if raw == "" {
		ok(c, "success", cards)
		return
	}
	variant, valid := appliance.ParseVariant(raw)
	if !valid {
		fail(c, http.StatusBadRequest, "未知的家电类型", nil)
		return
	}
	filtered := make([]appliance.Card, 0, len(cards))
	for _, card := range cards {
		if card.Variant == variant {
			filtered = append(filtered, card)
		}
	}
	ok(c, "success", filtered)
}

// Get 单个家电卡片
func (h *ApplianceHandler) Get(c *gin.Context) {
	item, err := h.board.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "success", item.ToCard())
}

// TogglePower 切换电源
func (h *ApplianceHandler) TogglePower(c *gin.Context) {
	item, err := h.board.TogglePower(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "电源已切换", item.ToCard())
}

// UpdateControls 修改模式、数值或位置
func (h *ApplianceHandler) UpdateControls(c *gin.Context) {
	var req ControlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}
	controls := appstate.Controls{
		Mode:           req.Mode,
		PrimaryValue:   req.PrimaryValue,
		SecondaryValue: req.SecondaryValue,
		Location:       req.Location,
	}
	if controls.Empty() {
		fail(c, http.StatusBadRequest, "没有需要修改的字段", nil)
		return
	}

	item, err := h.board.ApplyControls(c.Param("id"), controls)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, "修改成功", item.ToCard())
}

func (h *ApplianceHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, appstate.ErrApplianceNotFound) {
		fail(c, http.StatusNotFound, "家电不存在", err)
		return
	}
	fail(c, http.StatusInternalServerError, "保存失败", err)
}
