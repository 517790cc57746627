// Package negotiation 按请求Content-Type选择响应格式
//
// application/json -> JSON，application/xml -> XML，其余（包括缺失）使用第一个渲染器JSON。
// 不读取Accept头，也不会因为内容类型拒绝请求。
package negotiation

import (
	"mime"
	"strings"

	"github.com/gin-gonic/gin"
)

// Format 响应格式
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// 按优先级排列，第一个为默认渲染器
var renderers = []struct {
	mediaType string
	format    Format
}{
	{"application/json", FormatJSON},
	{"application/xml", FormatXML},
}

// Select 根据Content-Type选择格式，忽略charset等参数
func Select(contentType string) Format {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	for _, r := range renderers {
		if r.mediaType == mediaType {
			return r.format
		}
	}
	return renderers[0].format
}

// FromContext 当前请求的响应格式
func FromContext(c *gin.Context) Format {
	return Select(c.GetHeader("Content-Type"))
}

// Render 按协商出的格式写响应
func Render(c *gin.Context, status int, obj interface{}) {
	switch FromContext(c) {
	case FormatXML:
		c.Render(status, XML{Data: obj})
	default:
		c.JSON(status, obj)
	}
}

// Abort 写响应并终止后续handler
func Abort(c *gin.Context, status int, obj interface{}) {
	Render(c, status, obj)
	c.Abort()
}
