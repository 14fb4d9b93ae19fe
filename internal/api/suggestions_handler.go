package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dutchcoders/go-clamd"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"oppzResume/internal/api/middleware"
	"oppzResume/internal/database"
	"oppzResume/internal/storage"
	"oppzResume/internal/tasks"
)

const (
	maxResumeUploadBytes = 10 << 20
	uploadsPerDayLimit   = 20
)

// SuggestionsHandler 接收简历文件与职位上下文，驱动 AI 建议流水线。
// 不带文件的提交直接走 ai-basic 模式，不触发流水线。
type SuggestionsHandler struct {
	db          *gorm.DB
	asynqClient *asynq.Client
	storage     *storage.Client
	redisClient redis.UniversalClient
	clamdAddr   string
}

func NewSuggestionsHandler(
	db *gorm.DB,
	asynqClient *asynq.Client,
	storageClient *storage.Client,
	redisClient redis.UniversalClient,
	clamdAddr string,
) *SuggestionsHandler {
	return &SuggestionsHandler{
		db:          db,
		asynqClient: asynqClient,
		storage:     storageClient,
		redisClient: redisClient,
		clamdAddr:   clamdAddr,
	}
}

// POST /v1/ai/suggestions
func (h *SuggestionsHandler) SubmitSuggestions(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	sector := strings.TrimSpace(c.PostForm("sector"))
	country := strings.TrimSpace(c.PostForm("country"))
	designation := strings.TrimSpace(c.PostForm("designation"))
	if sector == "" || country == "" || designation == "" {
		BadRequest(c, "sector, country and designation are required")
		return
	}

	file, err := c.FormFile("resume")
	if err != nil {
		// 没有上传文件：ai-basic 模式，只回传三个参数，不触发流水线。
		c.JSON(http.StatusOK, gin.H{
			"mode":        "ai-basic",
			"sector":      sector,
			"country":     country,
			"designation": designation,
		})
		return
	}

	if file.Size > maxResumeUploadBytes {
		BadRequest(c, "resume file too large")
		return
	}

	log := middleware.LoggerFromContext(c)
	ctx := c.Request.Context()

	if h.redisClient != nil {
		key := fmt.Sprintf("ai:suggestions:uploads:%d:%s", userID, time.Now().UTC().Format("2006-01-02"))
		count, err := incrWithTTL(ctx, h.redisClient, key, 24*time.Hour)
		if err != nil {
			log.Warn("upload rate counter unavailable", slog.Any("error", err))
		} else if count > uploadsPerDayLimit {
			Forbidden(c, "daily upload limit reached")
			return
		}
	}

	if err := h.scanUpload(file); err != nil {
		if errors.Is(err, errMaliciousFile) {
			BadRequest(c, "malicious file detected")
			return
		}
		log.Error("scan resume file failed", slog.Any("error", err))
		Internal(c, "failed to scan file")
		return
	}

	reader, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return
	}
	defer reader.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	objectKey := fmt.Sprintf("resume-uploads/%d/%s%s", userID, uuid.NewString(), ext)
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := h.storage.UploadFile(ctx, objectKey, reader, file.Size, contentType); err != nil {
		log.Error("upload resume file failed", slog.Any("error", err))
		Internal(c, "failed to store file")
		return
	}

	run := database.SuggestionRun{
		UserID:        userID,
		Sector:        sector,
		Country:       country,
		Designation:   designation,
		ResumeFileKey: objectKey,
		Status:        "pending",
	}
	if err := h.db.WithContext(ctx).Create(&run).Error; err != nil {
		Internal(c, "failed to record suggestion run")
		return
	}

	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewSuggestionPipelineTask(run.ID, correlationID)
	if err != nil {
		Internal(c, "failed to create task")
		return
	}
	// 每次提交恰好入队一次；重试由队列按任务维度处理。
	if _, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(3)); err != nil {
		log.Error("enqueue suggestion pipeline failed", slog.Any("error", err))
		Internal(c, "failed to enqueue pipeline")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"mode":        "ai-suggestions",
		"run_id":      run.ID,
		"sector":      sector,
		"country":     country,
		"designation": designation,
	})
}

// GET /v1/ai/suggestions/:id
func (h *SuggestionsHandler) GetSuggestionRun(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	runID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid run id")
		return
	}

	var run database.SuggestionRun
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", uint(runID), userID).
		First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "suggestion run not found")
			return
		}
		Internal(c, "failed to query suggestion run")
		return
	}

	resp := gin.H{
		"run_id":      run.ID,
		"status":      run.Status,
		"sector":      run.Sector,
		"country":     run.Country,
		"designation": run.Designation,
	}
	if len(run.Result) > 0 {
		resp["result"] = run.Result
	}
	if run.ErrorMessage != "" {
		resp["error"] = run.ErrorMessage
	}
	c.JSON(http.StatusOK, resp)
}

var errMaliciousFile = errors.New("malicious file detected")

// scanUpload 在入库前做病毒扫描。未配置 clamd 时跳过。
func (h *SuggestionsHandler) scanUpload(file *multipart.FileHeader) error {
	if h.clamdAddr == "" {
		return nil
	}

	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer reader.Close()

	clamdClient := clamd.NewClamd(h.clamdAddr)
	abortChan := make(chan bool)
	defer close(abortChan)

	scanChan, err := clamdClient.ScanStream(reader, abortChan)
	if err != nil {
		return fmt.Errorf("scan stream: %w", err)
	}
	for result := range scanChan {
		if result.Status != clamd.RES_OK {
			return errMaliciousFile
		}
	}
	return nil
}

type redisRateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

func incrWithTTL(ctx context.Context, client redisRateCounter, key string, ttl time.Duration) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = client.Expire(ctx, key, ttl).Err()
	}
	return count, nil
}
