package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"oppzResume/internal/ai"
	"oppzResume/internal/api/middleware"
)

// EnhanceHandler 把单字段文本增强请求转发给外部 AI 服务。
// 单次尝试，不重试；失败以统一信封返回给前端提示。
type EnhanceHandler struct {
	client *ai.Client
}

func NewEnhanceHandler(client *ai.Client) *EnhanceHandler {
	return &EnhanceHandler{client: client}
}

type enhanceContentRequest struct {
	Content string `json:"content" binding:"required"`
	Prompt  string `json:"prompt"`
	Type    string `json:"type"`
	Title   string `json:"title"`
}

// POST /v1/ai/enhance-content
func (h *EnhanceHandler) EnhanceContent(c *gin.Context) {
	var req enhanceContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	// 校验失败的请求不发往 AI 服务。
	if err := ai.ValidatePrompt(req.Prompt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.client.EnhanceContent(c.Request.Context(), ai.EnhanceRequest{
		Content: req.Content,
		Prompt:  req.Prompt,
		Type:    req.Type,
		Title:   req.Title,
	})
	if err != nil {
		middleware.LoggerFromContext(c).Error("enhance content failed", slog.Any("error", err))
		status := http.StatusBadGateway
		if errors.Is(err, ai.ErrPromptTooShort) || errors.Is(err, ai.ErrPromptTooLong) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"success": false, "error": "content enhancement failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"enhanced_content": result.EnhancedContent,
			"original_content": result.OriginalContent,
			"prompt_used":      result.PromptUsed,
		},
	})
}
