package resume

import "sort"

// Data 表示存储在简历 Content(JSONB) 中的结构化数据。
// 内容与样式（Customization）是两条独立的轴，只在渲染时合并。
type Data struct {
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Summary        string          `json:"summary,omitempty"`
	Skills         Skills          `json:"skills"`
	Experience     []Experience    `json:"experience,omitempty"`
	Education      []Education     `json:"education,omitempty"`
	Projects       []Project       `json:"projects,omitempty"`
	AdditionalInfo *AdditionalInfo `json:"additionalInfo,omitempty"`
	CustomSections []CustomSection `json:"customSections,omitempty"`
}

// PersonalInfo 描述简历头部的个人信息。
type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// Skills 分为技术技能与可选的职业技能，均保持用户给定的顺序。
type Skills struct {
	Technical    []string `json:"technical,omitempty"`
	Professional []string `json:"professional,omitempty"`
}

// Experience 表示一段工作经历。
type Experience struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Dates        string   `json:"dates,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Education 表示一段教育经历。
type Education struct {
	Degree      string   `json:"degree"`
	Institution string   `json:"institution"`
	Dates       string   `json:"dates,omitempty"`
	Details     []string `json:"details,omitempty"`
}

// Project 表示一个项目条目。
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TechStack   string `json:"techStack,omitempty"`
	Dates       string `json:"dates,omitempty"`
	Link        string `json:"link,omitempty"`
}

// AdditionalInfo 聚合语言、证书、奖项等可选列表。
type AdditionalInfo struct {
	Languages      []string `json:"languages,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Awards         []string `json:"awards,omitempty"`
}

// 自定义段落支持的内容类型。
const (
	CustomSectionText     = "text"
	CustomSectionList     = "list"
	CustomSectionTimeline = "timeline"
	CustomSectionGrid     = "grid"
	CustomSectionMixed    = "mixed"
)

// CustomSection 表示用户自定义的简历段落。
// Position 决定显示顺序，不参与拖拽/上下移动。
type CustomSection struct {
	ID       string              `json:"id"`
	Title    string              `json:"title"`
	Type     string              `json:"type"`
	Position int                 `json:"position"`
	Text     string              `json:"text,omitempty"`
	Items    []string            `json:"items,omitempty"`
	Entries  []CustomTimelineRow `json:"entries,omitempty"`
}

// CustomTimelineRow 表示 timeline/mixed 类型段落中的一行。
type CustomTimelineRow struct {
	Heading string `json:"heading"`
	Dates   string `json:"dates,omitempty"`
	Body    string `json:"body,omitempty"`
}

// SortedCustomSections 按 Position 返回自定义段落的渲染顺序。
// 相同 Position 时保持插入顺序（稳定排序）。
func (d *Data) SortedCustomSections() []CustomSection {
	if len(d.CustomSections) == 0 {
		return nil
	}
	out := make([]CustomSection, len(d.CustomSections))
	copy(out, d.CustomSections)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out
}

// HasAdditionalInfo 判断附加信息是否有任何可渲染内容。
func (d *Data) HasAdditionalInfo() bool {
	if d.AdditionalInfo == nil {
		return false
	}
	a := d.AdditionalInfo
	return len(a.Languages) > 0 || len(a.Certifications) > 0 || len(a.Awards) > 0
}
