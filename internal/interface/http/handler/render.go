package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookmarket/pkg/response"
)

// Render 渲染探针，按请求Content-Type返回JSON或XML
// @Summary      渲染探针
// @Tags         系统
// @Produce      json,xml
// @Success      200 {string} string "ok"
// @Router       /api/v1/render/ [get]
// @Router       /api/v1/render/ [post]
func Render(c *gin.Context) {
	response.Message(c, "ok")
}
