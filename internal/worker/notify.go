package worker

import "encoding/json"

// 统一的 WebSocket 消息协议（通过 Redis Pub/Sub 转发给前端）。
// 注意：这里的字段名与前端解析保持一致。

// PDFGenerationNotifyMessage 通知 PDF 生成结果。
type PDFGenerationNotifyMessage struct {
	Type          string `json:"type"`
	Status        string `json:"status"`
	ResumeID      uint   `json:"resume_id"`
	CorrelationID string `json:"correlation_id"`
	ErrorCode     int    `json:"error_code"`
	ErrorMessage  string `json:"error_message"`
}

// SuggestionNotifyMessage 通知建议流水线结果。
// Result 直接携带流水线产出，前端无需再次拉取。
type SuggestionNotifyMessage struct {
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	RunID         uint            `json:"run_id"`
	CorrelationID string          `json:"correlation_id"`
	ErrorCode     int             `json:"error_code"`
	ErrorMessage  string          `json:"error_message"`
	Result        json.RawMessage `json:"result,omitempty"`
}
