package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"oppzResume/internal/ai"
	"oppzResume/internal/database"
	"oppzResume/internal/errcode"
	"oppzResume/internal/tasks"
)

// ObjectReader 是流水线对对象存储的最小依赖。
// *storage.Client 满足该接口。
type ObjectReader interface {
	ReadObject(ctx context.Context, objectName string) ([]byte, error)
}

// SuggestionTaskHandler 消费建议流水线任务：
// 解析简历 → 生成目标 JD → 对比产出建议，三步顺序执行。
type SuggestionTaskHandler struct {
	db          *gorm.DB
	storage     ObjectReader
	redisClient NotifyPublisher
	aiClient    *ai.Client
	logger      *slog.Logger
}

// NewSuggestionTaskHandler 创建任务处理器。
func NewSuggestionTaskHandler(
	db *gorm.DB,
	storage ObjectReader,
	redisClient NotifyPublisher,
	aiClient *ai.Client,
	logger *slog.Logger,
) *SuggestionTaskHandler {
	return &SuggestionTaskHandler{
		db:          db,
		storage:     storage,
		redisClient: redisClient,
		aiClient:    aiClient,
		logger:      logger,
	}
}

// suggestionResult 是落库与推送给前端的流水线产出。
type suggestionResult struct {
	Suggestions    json.RawMessage `json:"suggestions"`
	JobDescription string          `json:"jobDescription"`
	Sector         string          `json:"sector"`
	Country        string          `json:"country"`
	Designation    string          `json:"designation"`
	AIResults      json.RawMessage `json:"aiResults"`
	ResumeFile     string          `json:"resumeFile"`
}

// ProcessTask 实现 asynq.Handler。
func (h *SuggestionTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.SuggestionPipelinePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("run_id", int(payload.RunID)),
	)
	log.Info("Starting suggestion pipeline task...")

	var run database.SuggestionRun
	if err := h.db.WithContext(ctx).First(&run, payload.RunID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("suggestion run not found, skipping task")
			return nil
		}
		log.Error("query suggestion run failed", slog.Any("error", err))
		return err
	}
	if run.Status == "completed" {
		log.Info("suggestion run already completed, skipping")
		return nil
	}

	log = log.With(slog.Uint64("user_id", uint64(run.UserID)))

	defer func() {
		if retErr == nil {
			return
		}
		if !finalAttempt(ctx) {
			return
		}

		errMsg := strings.TrimSpace(retErr.Error())
		_ = h.db.WithContext(ctx).Model(&run).Updates(map[string]any{
			"status":        "failed",
			"error_message": errMsg,
		}).Error

		notify := SuggestionNotifyMessage{
			Type:          "ai_suggestions",
			Status:        "error",
			RunID:         run.ID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.AIServiceError,
			ErrorMessage:  errMsg,
		}
		if err := publishNotify(ctx, h.redisClient, run.UserID, notify); err != nil {
			log.Error("publish suggestion error notification failed", slog.Any("error", err))
		}
	}()

	if err := h.db.WithContext(ctx).Model(&run).Update("status", "processing").Error; err != nil {
		log.Error("mark run processing failed", slog.Any("error", err))
		return err
	}

	fileBytes, err := h.storage.ReadObject(ctx, run.ResumeFileKey)
	if err != nil {
		log.Error("read resume file failed", slog.Any("error", err))
		return err
	}

	parsed, err := h.aiClient.ParseResume(ctx, path.Base(run.ResumeFileKey), fileBytes)
	if err != nil {
		log.Error("parse resume failed", slog.Any("error", err))
		return err
	}

	params := ai.PipelineParams{
		Sector:      run.Sector,
		Country:     run.Country,
		Designation: run.Designation,
	}
	jobDescription, err := h.aiClient.GenerateJobDescription(ctx, params)
	if err != nil {
		log.Error("generate job description failed", slog.Any("error", err))
		return err
	}

	comparison, err := h.aiClient.CompareResume(ctx, ai.CompareRequest{
		ParsedResume:   parsed,
		JobDescription: jobDescription,
		PipelineParams: params,
	})
	if err != nil {
		log.Error("compare resume failed", slog.Any("error", err))
		return err
	}

	result := suggestionResult{
		Suggestions:    comparison,
		JobDescription: jobDescription,
		Sector:         run.Sector,
		Country:        run.Country,
		Designation:    run.Designation,
		AIResults:      parsed,
		ResumeFile:     run.ResumeFileKey,
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal pipeline result: %w", err)
	}

	if err := h.db.WithContext(ctx).Model(&run).Updates(map[string]any{
		"status": "completed",
		"result": resultJSON,
	}).Error; err != nil {
		log.Error("store pipeline result failed", slog.Any("error", err))
		return err
	}

	notify := SuggestionNotifyMessage{
		Type:          "ai_suggestions",
		Status:        "completed",
		RunID:         run.ID,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
		Result:        resultJSON,
	}
	if err := publishNotify(ctx, h.redisClient, run.UserID, notify); err != nil {
		log.Error("publish suggestion notification failed", slog.Any("error", err))
		return err
	}

	log.Info("Suggestion pipeline task completed successfully.")
	return nil
}
