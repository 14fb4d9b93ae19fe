package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"oppzResume/internal/catalog"
)

func newTemplateContext(t *testing.T, target string, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Params = params
	return c, w
}

func TestListTemplates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewTemplateHandler(catalog.New())

	c, w := newTemplateContext(t, "/v1/templates", nil)
	h.ListTemplates(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var entries []catalog.Entry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected builtin templates")
	}
}

func TestGetTemplate_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewTemplateHandler(catalog.New())

	c, w := newTemplateContext(t, "/v1/templates/no-such", gin.Params{{Key: "id", Value: "no-such"}})
	h.GetTemplate(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestTemplateDownload_ReturnsDescriptorURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewTemplateHandler(catalog.New())

	c, w := newTemplateContext(t, "/v1/templates/executive-classic/download", gin.Params{{Key: "id", Value: "executive-classic"}})
	h.Download(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var resp struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "executive-classic" || resp.URL == "" {
		t.Fatalf("unexpected descriptor: %+v", resp)
	}
}

func TestTemplateSearch_MatchesTags(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewTemplateHandler(catalog.New())

	c, w := newTemplateContext(t, "/v1/templates/search/timeline", gin.Params{{Key: "query", Value: "timeline"}})
	h.Search(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var entries []catalog.Entry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode search: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "timeline-pro" {
		t.Fatalf("unexpected search result: %+v", entries)
	}
}

func TestTemplatePopular_SortedByDownloads(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewTemplateHandler(catalog.New())

	c, w := newTemplateContext(t, "/v1/templates/popular", nil)
	h.Popular(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var entries []catalog.Entry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode popular: %v", err)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Downloads < entries[i].Downloads {
			t.Fatalf("entries not sorted by downloads: %+v", entries)
		}
	}
}
