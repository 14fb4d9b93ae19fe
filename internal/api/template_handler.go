package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"oppzResume/internal/catalog"
)

// TemplateHandler 负责模板目录相关的只读 API。
// 目录是静态内存列表，不涉及数据库。
type TemplateHandler struct {
	catalog *catalog.Catalog
}

func NewTemplateHandler(cat *catalog.Catalog) *TemplateHandler {
	return &TemplateHandler{catalog: cat}
}

// GET /v1/templates
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.List())
}

// GET /v1/templates/:id
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	entry, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		NotFound(c, "template not found")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GET /v1/templates/category/:category
func (h *TemplateHandler) ListByCategory(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.ByCategory(c.Param("category")))
}

// GET /v1/templates/search/:query
func (h *TemplateHandler) Search(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Search(c.Param("query")))
}

// GET /v1/templates/popular
func (h *TemplateHandler) Popular(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Popular())
}

// GET /v1/templates/new
func (h *TemplateHandler) Newest(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Newest())
}

// GET /v1/templates/:id/download
// 返回描述性下载地址，不返回二进制流。
func (h *TemplateHandler) Download(c *gin.Context) {
	entry, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		NotFound(c, "template not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":  entry.ID,
		"url": entry.DownloadURL,
	})
}

// GET /v1/templates/:id/preview
func (h *TemplateHandler) Preview(c *gin.Context) {
	entry, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		NotFound(c, "template not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          entry.ID,
		"preview_url": entry.PreviewURL,
	})
}
