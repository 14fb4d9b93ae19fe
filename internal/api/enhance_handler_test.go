package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"oppzResume/internal/ai"
)

func newEnhanceContext(t *testing.T, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/ai/enhance-content", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestEnhanceContent_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"enhanced_content":"Better.","original_content":"Ok.","prompt_used":"polish"}}`))
	}))
	defer upstream.Close()

	h := NewEnhanceHandler(ai.NewClient(upstream.URL, time.Second))
	c, w := newEnhanceContext(t, map[string]string{"content": "Ok.", "prompt": "polish"})
	h.EnhanceContent(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			EnhancedContent string `json:"enhanced_content"`
			OriginalContent string `json:"original_content"`
			PromptUsed      string `json:"prompt_used"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Data.EnhancedContent != "Better." || resp.Data.PromptUsed != "polish" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestEnhanceContent_InvalidPromptNeverReachesUpstream(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer upstream.Close()

	h := NewEnhanceHandler(ai.NewClient(upstream.URL, time.Second))

	for _, prompt := range []string{"", strings.Repeat("长", 501)} {
		c, w := newEnhanceContext(t, map[string]string{"content": "Ok.", "prompt": prompt})
		h.EnhanceContent(c)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("prompt %q: expected 400 got %d", prompt, w.Code)
		}
		var resp struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Success || resp.Error == "" {
			t.Fatalf("expected error envelope, got %+v", resp)
		}
	}

	if got := calls.Load(); got != 0 {
		t.Fatalf("upstream should not be called for invalid prompts, got %d calls", got)
	}
}

func TestEnhanceContent_UpstreamFailureSingleAttempt(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"model unavailable"}`))
	}))
	defer upstream.Close()

	h := NewEnhanceHandler(ai.NewClient(upstream.URL, time.Second))
	c, w := newEnhanceContext(t, map[string]string{"content": "Ok.", "prompt": "polish"})
	h.EnhanceContent(c)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Fatalf("expected error envelope, got %+v", resp)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected exactly one upstream attempt, got %d", got)
	}
}
