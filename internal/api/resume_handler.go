package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"oppzResume/internal/api/middleware"
	"oppzResume/internal/database"
	"oppzResume/internal/render"
	"oppzResume/internal/resume"
	"oppzResume/internal/storage"
	"oppzResume/internal/tasks"
)

// ResumeHandler 负责处理与简历相关的 API 请求。
type ResumeHandler struct {
	db          *gorm.DB
	asynqClient *asynq.Client
	storage     *storage.Client
	maxResumes  int
}

// NewResumeHandler 构造 ResumeHandler。
func NewResumeHandler(db *gorm.DB, asynqClient *asynq.Client, storageClient *storage.Client, maxResumes int) *ResumeHandler {
	return &ResumeHandler{
		db:          db,
		asynqClient: asynqClient,
		storage:     storageClient,
		maxResumes:  maxResumes,
	}
}

var errInvalidResumeID = errors.New("invalid resume id")

// saveResumeRequest 在边界上做类型化校验：内容与样式都按
// 结构化模型绑定，而不是透传任意 JSON。
type saveResumeRequest struct {
	Title         string                `json:"title" binding:"required"`
	Content       resume.Data           `json:"content" binding:"required"`
	Customization *resume.Customization `json:"customization"`
	TemplateID    string                `json:"template_id"`
	AccentColor   string                `json:"accent_color"`
}

type resumeListItem struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	TemplateID string    `json:"template_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type resumeResponse struct {
	ID            uint           `json:"id"`
	Title         string         `json:"title"`
	Content       datatypes.JSON `json:"content"`
	Customization datatypes.JSON `json:"customization,omitempty"`
	TemplateID    string         `json:"template_id,omitempty"`
	AccentColor   string         `json:"accent_color,omitempty"`
	Status        string         `json:"status,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (r *saveResumeRequest) normalize() error {
	if r.Customization == nil {
		c := resume.DefaultCustomization()
		r.Customization = &c
	}
	if r.TemplateID == "" {
		r.TemplateID = render.TemplateExecutiveClassic
	}
	for _, id := range render.TemplateIDs() {
		if id == r.TemplateID {
			return nil
		}
	}
	return render.ErrUnknownTemplate
}

func (r *saveResumeRequest) marshalColumns() (content, customization datatypes.JSON, err error) {
	raw, err := json.Marshal(r.Content)
	if err != nil {
		return nil, nil, err
	}
	rawCustom, err := json.Marshal(r.Customization)
	if err != nil {
		return nil, nil, err
	}
	return datatypes.JSON(raw), datatypes.JSON(rawCustom), nil
}

// CreateResume 保存一份新的简历，超过限额则提示升级。
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	var req saveResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := req.normalize(); err != nil {
		BadRequest(c, "unknown template id")
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()

	var count int64
	if err := h.db.WithContext(ctx).
		Model(&database.Resume{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error; err != nil {
		Internal(c, "failed to count resumes")
		return
	}

	if h.maxResumes > 0 && count >= int64(h.maxResumes) {
		Forbidden(c, "resume limit reached")
		return
	}

	content, customization, err := req.marshalColumns()
	if err != nil {
		Internal(c, "failed to encode resume")
		return
	}

	model := database.Resume{
		Title:         req.Title,
		Content:       content,
		Customization: customization,
		TemplateID:    req.TemplateID,
		AccentColor:   req.AccentColor,
		IsActive:      true,
		UserID:        userID,
		Status:        "draft",
	}

	if err := h.db.WithContext(ctx).Create(&model).Error; err != nil {
		Internal(c, "failed to create resume")
		return
	}

	c.JSON(http.StatusCreated, newResumeResponse(model))
}

// ListResumes 列出用户全部未删除的简历。
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	var resumes []database.Resume
	if err := h.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("updated_at DESC").
		Find(&resumes).Error; err != nil {
		Internal(c, "failed to list resumes")
		return
	}

	items := make([]resumeListItem, 0, len(resumes))
	for _, r := range resumes {
		items = append(items, resumeListItem{
			ID:         r.ID,
			Title:      r.Title,
			TemplateID: r.TemplateID,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, items)
}

// GetResume 返回指定 ID 的简历。
func (h *ResumeHandler) GetResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	model, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondResumeLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, newResumeResponse(*model))
}

// UpdateResume 覆盖指定简历的内容与样式。
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	var req saveResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := req.normalize(); err != nil {
		BadRequest(c, "unknown template id")
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	model, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondResumeLookupError(c, err)
		return
	}

	content, customization, err := req.marshalColumns()
	if err != nil {
		Internal(c, "failed to encode resume")
		return
	}

	updates := map[string]any{
		"title":         req.Title,
		"content":       content,
		"customization": customization,
		"template_id":   req.TemplateID,
		"accent_color":  req.AccentColor,
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Model(model).Updates(updates).Error; err != nil {
		Internal(c, "failed to update resume")
		return
	}

	if err := h.db.WithContext(ctx).First(model, model.ID).Error; err != nil {
		Internal(c, "failed to reload resume")
		return
	}

	c.JSON(http.StatusOK, newResumeResponse(*model))
}

// customizationPatchRequest 对应定制面板的一次提交：
// 每个面板一个可选切片，缺省的面板不动。预设主题按 ID 整体替换。
type customizationPatchRequest struct {
	ThemePresetID   *string                      `json:"theme_preset_id"`
	Typography      *resume.TypographyPatch      `json:"typography"`
	Layout          *resume.LayoutPatch          `json:"layout"`
	Name            *resume.NamePatch            `json:"name"`
	Title           *resume.TitlePatch           `json:"title"`
	EntryLayout     *resume.EntryLayoutPatch     `json:"entry_layout"`
	SectionHeadings *resume.SectionHeadingsPatch `json:"section_headings"`
	ToggleSection   *string                      `json:"toggle_section"`
	SectionOrder    []string                     `json:"section_order"`
}

// PatchCustomization 把一组面板补丁合并进已保存的样式。
// 与 UpdateResume 的整体覆盖不同，这里只改动显式给出的字段。
func (h *ResumeHandler) PatchCustomization(c *gin.Context) {
	var req customizationPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	model, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondResumeLookupError(c, err)
		return
	}

	custom := resume.DefaultCustomization()
	if len(model.Customization) > 0 {
		if err := json.Unmarshal(model.Customization, &custom); err != nil {
			Internal(c, "failed to decode customization")
			return
		}
	}

	var patches []resume.CustomizationPatch
	if req.ThemePresetID != nil {
		preset, ok := resume.PresetThemeByID(*req.ThemePresetID)
		if !ok {
			BadRequest(c, "unknown theme preset")
			return
		}
		patches = append(patches, resume.ThemePatch{Theme: preset.Theme})
	}
	if req.Typography != nil {
		patches = append(patches, *req.Typography)
	}
	if req.Layout != nil {
		patches = append(patches, *req.Layout)
	}
	if req.Name != nil {
		patches = append(patches, *req.Name)
	}
	if req.Title != nil {
		patches = append(patches, *req.Title)
	}
	if req.EntryLayout != nil {
		patches = append(patches, *req.EntryLayout)
	}
	if req.SectionHeadings != nil {
		patches = append(patches, *req.SectionHeadings)
	}
	custom.Apply(patches...)

	if req.ToggleSection != nil || len(req.SectionOrder) > 0 {
		if custom.Sections == nil {
			custom.Sections = resume.NewSectionOrder(resume.DefaultSectionIDs())
		}
		if req.ToggleSection != nil {
			if err := custom.Sections.Toggle(*req.ToggleSection); err != nil {
				BadRequest(c, err.Error())
				return
			}
		}
		if len(req.SectionOrder) > 0 {
			if err := custom.Sections.Reorder(req.SectionOrder); err != nil {
				BadRequest(c, err.Error())
				return
			}
		}
	}

	raw, err := json.Marshal(custom)
	if err != nil {
		Internal(c, "failed to encode customization")
		return
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Model(model).Update("customization", datatypes.JSON(raw)).Error; err != nil {
		Internal(c, "failed to update customization")
		return
	}

	if err := h.db.WithContext(ctx).First(model, model.ID).Error; err != nil {
		Internal(c, "failed to reload resume")
		return
	}

	c.JSON(http.StatusOK, newResumeResponse(*model))
}

// DeleteResume 软删除指定简历：行保留，is_active 置 false。
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	model, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondResumeLookupError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Model(model).Update("is_active", false).Error; err != nil {
		Internal(c, "failed to delete resume")
		return
	}

	c.Status(http.StatusNoContent)
}

// DownloadResume 将 PDF 生成任务入队并立即返回 202。
func (h *ResumeHandler) DownloadResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	model, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondResumeLookupError(c, err)
		return
	}

	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewPDFGenerateTask(tasks.PDFGeneratePayload{
		ResumeID:      model.ID,
		TemplateID:    c.Query("template"),
		AccentColor:   c.Query("color"),
		CorrelationID: correlationID,
	})
	if err != nil {
		Internal(c, "failed to create task")
		return
	}

	info, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(5))
	if err != nil {
		Internal(c, "failed to enqueue pdf generation")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "PDF generation request accepted",
		"task_id": info.ID,
	})
}

// GetDownloadLink 生成简历 PDF 的预签名下载链接。
func (h *ResumeHandler) GetDownloadLink(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	model, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondResumeLookupError(c, err)
		return
	}

	if model.PdfUrl == "" {
		Conflict(c, "pdf not ready")
		return
	}

	signedURL, err := h.storage.GeneratePresignedURL(c.Request.Context(), model.PdfUrl, 5*time.Minute)
	if err != nil {
		Internal(c, "failed to generate download link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL})
}

// RenderResume 返回指定简历渲染后的 HTML，供预览调试与内部使用。
func (h *ResumeHandler) RenderResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	model, err := h.getResumeForUser(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondResumeLookupError(c, err)
		return
	}

	templateID := c.DefaultQuery("template", model.TemplateID)
	accent := c.DefaultQuery("color", model.AccentColor)

	html, err := renderStoredResume(model, templateID, accent)
	if err != nil {
		if errors.Is(err, render.ErrUnknownTemplate) {
			BadRequest(c, "unknown template id")
			return
		}
		Internal(c, "failed to render resume")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// renderStoredResume 解码存储列并执行渲染。Worker 复用同一语义。
func renderStoredResume(model *database.Resume, templateID, accent string) (string, error) {
	var data resume.Data
	if err := json.Unmarshal(model.Content, &data); err != nil {
		return "", err
	}
	custom := resume.DefaultCustomization()
	if len(model.Customization) > 0 {
		if err := json.Unmarshal(model.Customization, &custom); err != nil {
			return "", err
		}
	}
	if templateID == "" {
		templateID = render.TemplateExecutiveClassic
	}
	return render.Render(&data, custom, templateID, accent)
}

func respondResumeLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errInvalidResumeID):
		BadRequest(c, "invalid resume id")
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, "resume not found")
	default:
		Internal(c, "failed to query resume")
	}
}

func (h *ResumeHandler) getResumeForUser(ctx context.Context, idParam string, userID uint) (*database.Resume, error) {
	resumeID, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		return nil, errInvalidResumeID
	}

	var model database.Resume
	if err := h.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_active = ?", uint(resumeID), userID, true).
		First(&model).Error; err != nil {
		return nil, err
	}

	return &model, nil
}

func userIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case uint64:
		return uint(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	default:
		return 0, false
	}
}

func newResumeResponse(model database.Resume) resumeResponse {
	return resumeResponse{
		ID:            model.ID,
		Title:         model.Title,
		Content:       model.Content,
		Customization: model.Customization,
		TemplateID:    model.TemplateID,
		AccentColor:   model.AccentColor,
		Status:        model.Status,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
