package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestValidatePrompt(t *testing.T) {
	if err := ValidatePrompt(""); !errors.Is(err, ErrPromptTooShort) {
		t.Fatalf("empty prompt: %v", err)
	}
	if err := ValidatePrompt(strings.Repeat("a", 501)); !errors.Is(err, ErrPromptTooLong) {
		t.Fatalf("501 chars: %v", err)
	}
	if err := ValidatePrompt("x"); err != nil {
		t.Fatalf("1 char: %v", err)
	}
	if err := ValidatePrompt(strings.Repeat("a", 500)); err != nil {
		t.Fatalf("500 chars: %v", err)
	}
	// 长度按字符计，不按字节。
	if err := ValidatePrompt(strings.Repeat("简", 500)); err != nil {
		t.Fatalf("500 multibyte chars: %v", err)
	}
}

func TestEnhanceContent(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/api/enhance-content" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req EnhanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		resp := map[string]any{
			"success": true,
			"data": map[string]string{
				"enhanced_content": "Led a team of five engineers.",
				"original_content": req.Content,
				"prompt_used":      req.Prompt,
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	result, err := c.EnhanceContent(context.Background(), EnhanceRequest{
		Content: "Managed team.",
		Prompt:  "make it stronger",
		Type:    "experience",
	})
	if err != nil {
		t.Fatalf("enhance: %v", err)
	}
	if result.EnhancedContent != "Led a team of five engineers." {
		t.Fatalf("enhanced = %q", result.EnhancedContent)
	}
	if result.OriginalContent != "Managed team." {
		t.Fatalf("original = %q", result.OriginalContent)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want exactly 1 (no retry)", calls)
	}
}

func TestEnhanceContent_InvalidPromptNeverSent(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if _, err := c.EnhanceContent(context.Background(), EnhanceRequest{Prompt: ""}); err == nil {
		t.Fatalf("expected validation error")
	}
	if calls != 0 {
		t.Fatalf("invalid prompt reached the service")
	}
}

func TestErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "model overloaded"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.GenerateJobDescription(context.Background(), PipelineParams{Sector: "Technology"})
	if err == nil || !strings.Contains(err.Error(), "model overloaded") {
		t.Fatalf("err = %v", err)
	}
}

func TestNon2xxStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if _, err := c.ParseResume(context.Background(), "cv.pdf", []byte("%PDF-1.4")); err == nil {
		t.Fatalf("expected error for 502")
	}
}

func TestPipelineSteps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/parse-resume":
			json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]string{"name": "Ada"}})
		case "/api/generate-job-description":
			json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]string{"job_description": "Build dashboards."}})
		case "/api/compare-resume":
			json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{"suggestions": []string{"Add SQL"}}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	ctx := context.Background()

	parsed, err := c.ParseResume(ctx, "cv.pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	jd, err := c.GenerateJobDescription(ctx, PipelineParams{Sector: "Technology", Country: "USA", Designation: "Data Analyst"})
	if err != nil {
		t.Fatalf("generate jd: %v", err)
	}
	if jd != "Build dashboards." {
		t.Fatalf("jd = %q", jd)
	}

	out, err := c.CompareResume(ctx, CompareRequest{ParsedResume: parsed, JobDescription: jd})
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if !strings.Contains(string(out), "Add SQL") {
		t.Fatalf("compare output = %s", out)
	}
}
