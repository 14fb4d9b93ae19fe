package catalog

import (
	"sort"
	"strings"
	"time"

	"oppzResume/internal/render"
)

// Entry 描述目录中的一个模板。下载/预览只返回描述 URL，
// 不返回二进制内容。
type Entry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags,omitempty"`
	Downloads   int       `json:"downloads"`
	AddedAt     time.Time `json:"added_at"`
	PreviewURL  string    `json:"preview_url"`
	DownloadURL string    `json:"download_url"`
}

// Catalog 是只读的静态模板目录。
type Catalog struct {
	entries []Entry
}

// New 返回内置目录。每个条目的 ID 与 render 包的模板变体一一对应。
func New() *Catalog {
	return &Catalog{entries: builtinEntries()}
}

func builtinEntries() []Entry {
	return []Entry{
		{
			ID:          render.TemplateExecutiveClassic,
			Name:        "Executive Classic",
			Category:    "professional",
			Description: "Traditional single-column layout with centered header, for senior roles.",
			Tags:        []string{"classic", "corporate", "ats-friendly"},
			Downloads:   12840,
			AddedAt:     time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
			PreviewURL:  "/static/previews/executive-classic.png",
			DownloadURL: "/v1/templates/executive-classic/download",
		},
		{
			ID:          render.TemplateCreativeDesigner,
			Name:        "Creative Designer",
			Category:    "creative",
			Description: "Two-column layout with an accent sidebar for skills and extras.",
			Tags:        []string{"creative", "two-column", "accent"},
			Downloads:   9310,
			AddedAt:     time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
			PreviewURL:  "/static/previews/creative-designer.png",
			DownloadURL: "/v1/templates/creative-designer/download",
		},
		{
			ID:          render.TemplateModernMinimal,
			Name:        "Modern Minimal",
			Category:    "modern",
			Description: "Flat single-column layout that puts projects before education.",
			Tags:        []string{"minimal", "modern"},
			Downloads:   15520,
			AddedAt:     time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
			PreviewURL:  "/static/previews/modern-minimal.png",
			DownloadURL: "/v1/templates/modern-minimal/download",
		},
		{
			ID:          render.TemplateTimelinePro,
			Name:        "Timeline Pro",
			Category:    "modern",
			Description: "Experience and education rendered along an accent timeline.",
			Tags:        []string{"timeline", "modern"},
			Downloads:   4470,
			AddedAt:     time.Date(2025, 5, 8, 0, 0, 0, 0, time.UTC),
			PreviewURL:  "/static/previews/timeline-pro.png",
			DownloadURL: "/v1/templates/timeline-pro/download",
		},
	}
}

// List 返回全部模板。
func (c *Catalog) List() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Get 按 ID 查找模板。
func (c *Catalog) Get(id string) (Entry, bool) {
	for _, e := range c.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// ByCategory 返回指定分类下的模板，分类不区分大小写。
func (c *Catalog) ByCategory(category string) []Entry {
	category = strings.ToLower(strings.TrimSpace(category))
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if strings.ToLower(e.Category) == category {
			out = append(out, e)
		}
	}
	return out
}

// Search 在名称、描述与标签上做不区分大小写的子串匹配。
func (c *Catalog) Search(query string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []Entry{}
	}
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if strings.Contains(strings.ToLower(e.Name), query) ||
			strings.Contains(strings.ToLower(e.Description), query) ||
			matchTag(e.Tags, query) {
			out = append(out, e)
		}
	}
	return out
}

func matchTag(tags []string, query string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return false
}

// Popular 按下载量降序返回模板。
func (c *Catalog) Popular() []Entry {
	out := c.List()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Downloads > out[j].Downloads
	})
	return out
}

// Newest 按上架时间降序返回模板。
func (c *Catalog) Newest() []Entry {
	out := c.List()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AddedAt.After(out[j].AddedAt)
	})
	return out
}
