package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

// Client 封装对外部 AI 服务的 HTTP 调用。
// 服务本身是黑盒：这里只负责转发请求、限定单次超时，不做重试。
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 构造 AI 服务客户端。timeout 作用于每一次调用。
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// MaxPromptLength 是增强提示词允许的最大字符数。
const MaxPromptLength = 500

var (
	ErrPromptTooShort = errors.New("enhancement prompt must be at least 1 character")
	ErrPromptTooLong  = errors.New("enhancement prompt must not exceed 500 characters")
)

// ValidatePrompt 校验增强提示词长度在 [1,500] 个字符内。
// 校验失败的请求不会发往 AI 服务。
func ValidatePrompt(prompt string) error {
	n := utf8.RuneCountInString(prompt)
	if n < 1 {
		return ErrPromptTooShort
	}
	if n > MaxPromptLength {
		return ErrPromptTooLong
	}
	return nil
}

// EnhanceRequest 是转发给 AI 服务的增强请求体。
type EnhanceRequest struct {
	Content string `json:"content"`
	Prompt  string `json:"prompt"`
	Type    string `json:"type,omitempty"`
	Title   string `json:"title,omitempty"`
}

// EnhanceResult 是增强成功时的数据载荷。
type EnhanceResult struct {
	EnhancedContent string `json:"enhanced_content"`
	OriginalContent string `json:"original_content"`
	PromptUsed      string `json:"prompt_used"`
}

// envelope 是 AI 服务统一的响应信封。
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// EnhanceContent 转发单字段文本增强请求，返回前后对照。
func (c *Client) EnhanceContent(ctx context.Context, req EnhanceRequest) (*EnhanceResult, error) {
	if err := ValidatePrompt(req.Prompt); err != nil {
		return nil, err
	}

	var result EnhanceResult
	if err := c.postJSON(ctx, "/api/enhance-content", req, &result); err != nil {
		return nil, err
	}
	if result.OriginalContent == "" {
		result.OriginalContent = req.Content
	}
	return &result, nil
}

// PipelineParams 是建议流水线的职位上下文。
type PipelineParams struct {
	Sector      string `json:"sector"`
	Country     string `json:"country"`
	Designation string `json:"designation"`
}

// ParseResume 上传简历文件并返回解析出的结构化数据。
func (c *Client) ParseResume(ctx context.Context, filename string, file []byte) (json.RawMessage, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(file); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/parse-resume", body)
	if err != nil {
		return nil, fmt.Errorf("build parse request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req)
}

// GenerateJobDescription 依据行业/国家/职位生成目标 JD。
func (c *Client) GenerateJobDescription(ctx context.Context, params PipelineParams) (string, error) {
	var result struct {
		JobDescription string `json:"job_description"`
	}
	if err := c.postJSON(ctx, "/api/generate-job-description", params, &result); err != nil {
		return "", err
	}
	if strings.TrimSpace(result.JobDescription) == "" {
		return "", errors.New("ai service returned empty job description")
	}
	return result.JobDescription, nil
}

// CompareRequest 是对比/建议步骤的请求体。
type CompareRequest struct {
	ParsedResume   json.RawMessage `json:"parsed_resume"`
	JobDescription string          `json:"job_description"`
	PipelineParams
}

// CompareResume 比较解析结果与 JD，产出改进建议。
func (c *Client) CompareResume(ctx context.Context, req CompareRequest) (json.RawMessage, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal compare request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/compare-resume", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build compare request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return c.do(httpReq)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	data, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response %s: %w", path, err)
	}
	return nil
}

// do 执行请求并拆开响应信封。非 2xx 或 success=false 均视为错误。
func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	if c.baseURL == "" {
		return nil, errors.New("ai service base url is not configured")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request ai service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read ai response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ai service status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode ai envelope: %w", err)
	}
	if !env.Success {
		msg := strings.TrimSpace(env.Error)
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("ai service error: %s", msg)
	}
	return env.Data, nil
}
