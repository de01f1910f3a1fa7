package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
	Err  string      `json:"err,omitempty"`
}

func ok(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: http.StatusOK, Msg: msg, Data: data})
}

func fail(c *gin.Context, status int, msg string, err error) {
	resp := Response{Code: status, Msg: msg}
	if err != nil {
		resp.Err = err.Error()
	}
	c.JSON(status, resp)
}
