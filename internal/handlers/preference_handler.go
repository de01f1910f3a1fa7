// internal/handlers/preference_handler.go

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"space/internal/appstate"
)

type TonesRequest struct {
	Tones []string `json:"tones"`
}

type ToggleToneRequest struct {
	Tone string `json:"tone" binding:"required"`
}

type FontSizeRequest struct {
	FontSize string `json:"fontSize" binding:"required"`
}

type PreferencesResponse struct {
	Tones    []string `json:"tones"`
	FontSize string   `json:"fontSize"`
}

type PreferenceHandler struct {
	prefs *appstate.Preferences
}

func NewPreferenceHandler(prefs *appstate.Preferences) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs}
}

func (h *PreferenceHandler) snapshot() PreferencesResponse {
	return PreferencesResponse{
		Tones:    h.prefs.Tones(),
		FontSize: string(h.prefs.FontSize()),
	}
}

// Get 当前偏好
func (h *PreferenceHandler) Get(c *gin.Context) {
	ok(c, "success", h.snapshot())
}

// SetTones 替换已选语气
func (h *PreferenceHandler) SetTones(c *gin.Context) {
	var req TonesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}
	if _, err := h.prefs.SetTones(req.Tones); err != nil {
		fail(c, http.StatusInternalServerError, "保存失败", err)
		return
	}
	ok(c, "修改成功", h.snapshot())
}

// ToggleTone 选择或取消一个语气
func (h *PreferenceHandler) ToggleTone(c *gin.Context) {
	var req ToggleToneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}
	if _, err := h.prefs.ToggleTone(req.Tone); err != nil {
		if errors.Is(err, appstate.ErrEmptyTone) {
			fail(c, http.StatusBadRequest, "语气不能为空", err)
			return
		}
		fail(c, http.StatusInternalServerError, "保存失败", err)
		return
	}
	ok(c, "修改成功", h.snapshot())
}

// SetFontSize 修改字号
func (h *PreferenceHandler) SetFontSize(c *gin.Context) {
	var req FontSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request", err)
		return
	}
	if err := h.prefs.SetFontSize(appstate.FontSize(req.FontSize)); err != nil {
		if errors.Is(err, appstate.ErrInvalidFontSize) {
			fail(c, http.StatusBadRequest, "无效的字号，只能为 small、medium、large、xlarge", err)
			return
		}
		fail(c, http.StatusInternalServerError, "保存失败", err)
		return
	}
	ok(c, "修改成功", h.snapshot())
}
