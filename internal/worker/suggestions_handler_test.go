package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"oppzResume/internal/ai"
	"oppzResume/internal/database"
	"oppzResume/internal/errcode"
	"oppzResume/internal/tasks"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&database.SuggestionRun{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fakeObjectReader struct {
	data  []byte
	err   error
	calls atomic.Int64
	key   string
}

func (f *fakeObjectReader) ReadObject(_ context.Context, objectName string) ([]byte, error) {
	f.calls.Add(1)
	f.key = objectName
	return f.data, f.err
}

type publishedMessage struct {
	channel string
	payload []byte
}

type fakePublisher struct {
	messages []publishedMessage
}

func (f *fakePublisher) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	f.messages = append(f.messages, publishedMessage{channel: channel, payload: message.([]byte)})
	return redis.NewIntResult(1, nil)
}

// pipelineUpstream 模拟 AI 服务的三个流水线端点，按端点计数。
type pipelineUpstream struct {
	parseCalls   atomic.Int64
	jdCalls      atomic.Int64
	compareCalls atomic.Int64

	failParse bool
}

func (u *pipelineUpstream) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/parse-resume", func(w http.ResponseWriter, r *http.Request) {
		u.parseCalls.Add(1)
		if u.failParse {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"success":true,"data":{"name":"Ada Lovelace","skills":["Go"]}}`)
	})
	mux.HandleFunc("/api/generate-job-description", func(w http.ResponseWriter, r *http.Request) {
		u.jdCalls.Add(1)
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"sector":"tech"`) {
			t.Errorf("job description request missing pipeline params: %s", body)
		}
		fmt.Fprint(w, `{"success":true,"data":{"job_description":"Build reliable services."}}`)
	})
	mux.HandleFunc("/api/compare-resume", func(w http.ResponseWriter, r *http.Request) {
		u.compareCalls.Add(1)
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "Build reliable services.") {
			t.Errorf("compare request missing generated job description: %s", body)
		}
		fmt.Fprint(w, `{"success":true,"data":[{"suggestion":"quantify achievements"}]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func seedRun(t *testing.T, db *gorm.DB, status string) *database.SuggestionRun {
	t.Helper()
	run := &database.SuggestionRun{
		UserID:        42,
		Sector:        "tech",
		Country:       "SG",
		Designation:   "backend engineer",
		ResumeFileKey: "resume-uploads/42/abc.pdf",
		Status:        status,
	}
	if err := db.Create(run).Error; err != nil {
		t.Fatalf("seed run: %v", err)
	}
	return run
}

func pipelineTask(t *testing.T, runID uint) *asynq.Task {
	t.Helper()
	task, err := tasks.NewSuggestionPipelineTask(runID, "corr-test")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	return task
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSuggestionPipeline_CompletesRun(t *testing.T) {
	db := newTestDB(t)
	upstream := &pipelineUpstream{}
	srv := upstream.server(t)
	reader := &fakeObjectReader{data: []byte("%PDF-1.4 fake")}
	publisher := &fakePublisher{}
	run := seedRun(t, db, "pending")

	h := NewSuggestionTaskHandler(db, reader, publisher, ai.NewClient(srv.URL, time.Second), discardLogger())
	if err := h.ProcessTask(context.Background(), pipelineTask(t, run.ID)); err != nil {
		t.Fatalf("process task: %v", err)
	}

	if got := reader.calls.Load(); got != 1 {
		t.Fatalf("storage reads = %d, want 1", got)
	}
	if reader.key != run.ResumeFileKey {
		t.Fatalf("read object %q, want %q", reader.key, run.ResumeFileKey)
	}
	for name, got := range map[string]int64{
		"parse":   upstream.parseCalls.Load(),
		"jd":      upstream.jdCalls.Load(),
		"compare": upstream.compareCalls.Load(),
	} {
		if got != 1 {
			t.Fatalf("%s calls = %d, want 1", name, got)
		}
	}

	var stored database.SuggestionRun
	if err := db.First(&stored, run.ID).Error; err != nil {
		t.Fatalf("reload run: %v", err)
	}
	if stored.Status != "completed" {
		t.Fatalf("status = %q, want completed", stored.Status)
	}

	var result map[string]json.RawMessage
	if err := json.Unmarshal(stored.Result, &result); err != nil {
		t.Fatalf("decode stored result: %v", err)
	}
	wantFields := []string{"suggestions", "jobDescription", "sector", "country", "designation", "aiResults", "resumeFile"}
	if len(result) != len(wantFields) {
		t.Fatalf("result has %d fields, want %d: %v", len(result), len(wantFields), result)
	}
	for _, f := range wantFields {
		if _, ok := result[f]; !ok {
			t.Fatalf("result missing field %q", f)
		}
	}
	if string(result["jobDescription"]) != `"Build reliable services."` {
		t.Fatalf("jobDescription = %s", result["jobDescription"])
	}
	if string(result["resumeFile"]) != `"resume-uploads/42/abc.pdf"` {
		t.Fatalf("resumeFile = %s", result["resumeFile"])
	}

	if len(publisher.messages) != 1 {
		t.Fatalf("published %d messages, want 1", len(publisher.messages))
	}
	msg := publisher.messages[0]
	if msg.channel != "user_notify:42" {
		t.Fatalf("published to %q", msg.channel)
	}
	var notify SuggestionNotifyMessage
	if err := json.Unmarshal(msg.payload, &notify); err != nil {
		t.Fatalf("decode notify: %v", err)
	}
	if notify.Type != "ai_suggestions" || notify.Status != "completed" || notify.RunID != run.ID {
		t.Fatalf("unexpected notify: %+v", notify)
	}
	if len(notify.Result) == 0 {
		t.Fatalf("completed notify carries no result")
	}
}

func TestSuggestionPipeline_SkipsCompletedRun(t *testing.T) {
	db := newTestDB(t)
	upstream := &pipelineUpstream{}
	srv := upstream.server(t)
	reader := &fakeObjectReader{data: []byte("irrelevant")}
	publisher := &fakePublisher{}
	run := seedRun(t, db, "completed")

	h := NewSuggestionTaskHandler(db, reader, publisher, ai.NewClient(srv.URL, time.Second), discardLogger())
	if err := h.ProcessTask(context.Background(), pipelineTask(t, run.ID)); err != nil {
		t.Fatalf("process task: %v", err)
	}

	if got := reader.calls.Load(); got != 0 {
		t.Fatalf("storage reads = %d, want 0", got)
	}
	if got := upstream.parseCalls.Load(); got != 0 {
		t.Fatalf("parse calls = %d, want 0", got)
	}
	if len(publisher.messages) != 0 {
		t.Fatalf("published %d messages, want 0", len(publisher.messages))
	}
}

func TestSuggestionPipeline_RetryableFailureKeepsProcessing(t *testing.T) {
	db := newTestDB(t)
	upstream := &pipelineUpstream{failParse: true}
	srv := upstream.server(t)
	reader := &fakeObjectReader{data: []byte("%PDF-1.4 fake")}
	publisher := &fakePublisher{}
	run := seedRun(t, db, "pending")

	h := NewSuggestionTaskHandler(db, reader, publisher, ai.NewClient(srv.URL, time.Second), discardLogger())
	if err := h.ProcessTask(context.Background(), pipelineTask(t, run.ID)); err == nil {
		t.Fatalf("expected error from failing upstream")
	}

	var stored database.SuggestionRun
	if err := db.First(&stored, run.ID).Error; err != nil {
		t.Fatalf("reload run: %v", err)
	}
	// 还会重试，状态保持 processing，也不提前推送错误。
	if stored.Status != "processing" {
		t.Fatalf("status = %q, want processing", stored.Status)
	}
	if len(publisher.messages) != 0 {
		t.Fatalf("published %d messages, want 0", len(publisher.messages))
	}
}

func TestSuggestionPipeline_FinalFailureMarksFailedAndNotifies(t *testing.T) {
	finalAttempt = func(context.Context) bool { return true }
	t.Cleanup(func() { finalAttempt = isFinalAsynqAttempt })

	db := newTestDB(t)
	upstream := &pipelineUpstream{failParse: true}
	srv := upstream.server(t)
	reader := &fakeObjectReader{data: []byte("%PDF-1.4 fake")}
	publisher := &fakePublisher{}
	run := seedRun(t, db, "pending")

	h := NewSuggestionTaskHandler(db, reader, publisher, ai.NewClient(srv.URL, time.Second), discardLogger())
	if err := h.ProcessTask(context.Background(), pipelineTask(t, run.ID)); err == nil {
		t.Fatalf("expected error from failing upstream")
	}

	var stored database.SuggestionRun
	if err := db.First(&stored, run.ID).Error; err != nil {
		t.Fatalf("reload run: %v", err)
	}
	if stored.Status != "failed" {
		t.Fatalf("status = %q, want failed", stored.Status)
	}
	if stored.ErrorMessage == "" {
		t.Fatalf("error message not recorded")
	}

	if len(publisher.messages) != 1 {
		t.Fatalf("published %d messages, want 1", len(publisher.messages))
	}
	var notify SuggestionNotifyMessage
	if err := json.Unmarshal(publisher.messages[0].payload, &notify); err != nil {
		t.Fatalf("decode notify: %v", err)
	}
	if notify.Status != "error" || notify.ErrorCode != errcode.AIServiceError {
		t.Fatalf("unexpected error notify: %+v", notify)
	}
	if notify.ErrorMessage == "" {
		t.Fatalf("error notify carries no message")
	}
}

func TestSuggestionPipeline_MissingRunIsDropped(t *testing.T) {
	db := newTestDB(t)
	reader := &fakeObjectReader{}
	publisher := &fakePublisher{}

	h := NewSuggestionTaskHandler(db, reader, publisher, ai.NewClient("http://localhost:0", time.Second), discardLogger())
	if err := h.ProcessTask(context.Background(), pipelineTask(t, 9999)); err != nil {
		t.Fatalf("missing run should be dropped, got %v", err)
	}
	if got := reader.calls.Load(); got != 0 {
		t.Fatalf("storage reads = %d, want 0", got)
	}
}
