package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shafqatdeveloper/campus-navigator/internal/dto"
	"github.com/shafqatdeveloper/campus-navigator/internal/service"
	"github.com/shafqatdeveloper/campus-navigator/pkg/response"
)

// AskHandler 校园问答 HTTP 处理器
type AskHandler struct {
	askSvc service.AskService
}

// NewAskHandler 创建 AskHandler
func NewAskHandler(askSvc service.AskService) *AskHandler {
	return &AskHandler{askSvc: askSvc}
}

// Ask 向助手后端转发问题
// POST /api/v1/ask (multipart: text 或 audio 至少一项, response_format 可选)
func (h *AskHandler) Ask(c *gin.Context) {
	text := c.PostForm("text")
	format := c.DefaultPostForm("response_format", "text")
	if format != "text" && format != "audio" {
		response.BadRequest(c, 10001, "response_format 只支持 text 或 audio")
		return
	}

	// 语音文件可选
	audio, err := c.FormFile("audio")
	if err != nil {
		audio = nil
	}

	if text == "" && audio == nil {
		response.BadRequest(c, 10001, "text 与 audio 至少提供一项")
		return
	}

	result, err := h.askSvc.Ask(c.Request.Context(), &dto.AskQuery{
		Text:           text,
		Audio:          audio,
		ResponseFormat: format,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssistantTimeout):
			response.GatewayTimeout(c, 16001, err.Error())
		case errors.Is(err, service.ErrAssistantUnreachable):
			response.BadGateway(c, 16002, err.Error())
		case errors.Is(err, service.ErrAssistantFailed):
			response.BadGateway(c, 16003, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	// 语音回答直接透传音频流
	if result.AudioData != nil {
		c.Data(http.StatusOK, result.ContentType, result.AudioData)
		return
	}
	response.OK(c, result.Answer)
}
