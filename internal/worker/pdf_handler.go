package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"oppzResume/internal/database"
	"oppzResume/internal/errcode"
	"oppzResume/internal/pdf"
	"oppzResume/internal/render"
	"oppzResume/internal/resume"
	"oppzResume/internal/storage"
	"oppzResume/internal/tasks"
)

// PDFTaskHandler 负责消费 PDF 生成任务：
// 从数据库取出简历内容，在服务端渲染 HTML 后交给无头浏览器导出。
type PDFTaskHandler struct {
	db          *gorm.DB
	storage     *storage.Client
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewPDFTaskHandler 创建任务处理器。
func NewPDFTaskHandler(
	db *gorm.DB,
	storage *storage.Client,
	redisClient *redis.Client,
	logger *slog.Logger,
) *PDFTaskHandler {
	return &PDFTaskHandler{
		db:          db,
		storage:     storage,
		redisClient: redisClient,
		logger:      logger,
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *PDFTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.PDFGeneratePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("resume_id", int(payload.ResumeID)),
	)
	log.Info("Starting PDF generation task...")

	var model database.Resume
	if err := h.db.WithContext(ctx).First(&model, payload.ResumeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("resume not found, skipping task")
			return nil
		}
		log.Error("query resume failed", slog.Any("error", err))
		return err
	}

	log = log.With(slog.Uint64("user_id", uint64(model.UserID)))

	defer func() {
		if retErr == nil {
			return
		}
		if !finalAttempt(ctx) {
			return
		}

		notify := PDFGenerationNotifyMessage{
			Type:          "pdf_generation",
			Status:        "error",
			ResumeID:      model.ID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.SystemError,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := publishNotify(ctx, h.redisClient, model.UserID, notify); err != nil {
			log.Error("publish pdf error notification failed", slog.Any("error", err))
		}
	}()

	html, err := renderResumeHTML(&model, payload.TemplateID, payload.AccentColor)
	if err != nil {
		log.Error("render resume html failed", slog.Any("error", err))
		return err
	}

	pdfBytes, err := pdf.GenerateFromHTML(html)
	if err != nil {
		log.Error("export pdf failed", slog.Any("error", err))
		return err
	}

	objectName := fmt.Sprintf("generated-resumes/%d/%s.pdf", model.UserID, uuid.NewString())
	pdfReader := bytes.NewReader(pdfBytes)
	if _, err := h.storage.UploadFile(ctx, objectName, pdfReader, int64(len(pdfBytes)), "application/pdf"); err != nil {
		log.Error("upload pdf to minio failed", slog.Any("error", err))
		return err
	}

	update := map[string]any{
		"pdf_url": objectName,
		"status":  "completed",
	}
	if err := h.db.WithContext(ctx).Model(&model).Updates(update).Error; err != nil {
		log.Error("update resume failed", slog.Any("error", err))
		return err
	}

	notify := PDFGenerationNotifyMessage{
		Type:          "pdf_generation",
		Status:        "completed",
		ResumeID:      model.ID,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
	}
	if err := publishNotify(ctx, h.redisClient, model.UserID, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
		return err
	}

	log.Info("PDF generation task completed successfully.")
	return nil
}

// renderResumeHTML 解码存储列并执行渲染，任务可覆盖模板与主色。
func renderResumeHTML(model *database.Resume, templateID, accent string) (string, error) {
	var data resume.Data
	if err := json.Unmarshal(model.Content, &data); err != nil {
		return "", fmt.Errorf("decode resume content: %w", err)
	}
	custom := resume.DefaultCustomization()
	if len(model.Customization) > 0 {
		if err := json.Unmarshal(model.Customization, &custom); err != nil {
			return "", fmt.Errorf("decode resume customization: %w", err)
		}
	}
	if templateID == "" {
		templateID = model.TemplateID
	}
	if templateID == "" {
		templateID = render.TemplateExecutiveClassic
	}
	if accent == "" {
		accent = model.AccentColor
	}
	return render.Render(&data, custom, templateID, accent)
}

// NotifyPublisher 是通知推送对 redis 的最小依赖。
// *redis.Client 满足该接口。
type NotifyPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

func publishNotify(ctx context.Context, client NotifyPublisher, userID uint, notify any) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := fmt.Sprintf("user_notify:%d", userID)
	if err := client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

// finalAttempt 报告当前任务是否已到最后一次重试。
// asynq 只把重试信息放进任务上下文，无法注入，留作变量以便替换。
var finalAttempt = isFinalAsynqAttempt

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
