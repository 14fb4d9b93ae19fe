package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypePDFGenerate        = "pdf:generate"
	TypeSuggestionPipeline = "ai:suggestions"
)

// PDFGeneratePayload 描述生成 PDF 所需的最小信息。
type PDFGeneratePayload struct {
	ResumeID      uint   `json:"resume_id"`
	TemplateID    string `json:"template_id,omitempty"`
	AccentColor   string `json:"accent_color,omitempty"`
	CorrelationID string `json:"correlation_id"`
}

// NewPDFGenerateTask 构造一个新的简历 PDF 生成任务。
func NewPDFGenerateTask(p PDFGeneratePayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePDFGenerate, payload), nil
}

// SuggestionPipelinePayload 描述一次建议流水线：解析上传的简历、
// 生成目标 JD、再做对比产出建议。
type SuggestionPipelinePayload struct {
	RunID         uint   `json:"run_id"`
	CorrelationID string `json:"correlation_id"`
}

// NewSuggestionPipelineTask 构造一个建议流水线任务。
func NewSuggestionPipelineTask(runID uint, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(SuggestionPipelinePayload{
		RunID:         runID,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSuggestionPipeline, payload), nil
}
