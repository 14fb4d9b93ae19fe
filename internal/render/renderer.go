package render

import (
	"fmt"
	"html/template"
	"strings"

	"oppzResume/internal/resume"
)

// 固定的模板变体。每个变体是独立的纯渲染单元，
// 自带固定的版式，只根据对应数据块是否为空决定渲染与否。
const (
	TemplateExecutiveClassic = "executive-classic"
	TemplateCreativeDesigner = "creative-designer"
	TemplateModernMinimal    = "modern-minimal"
	TemplateTimelinePro      = "timeline-pro"
)

var ErrUnknownTemplate = fmt.Errorf("unknown template id")

// view 是传给 HTML 模板的只读视图模型。
// 内容（Data）与样式（Customization）在这里合并，仅在渲染时。
type view struct {
	Data   *resume.Data
	Custom resume.Customization

	Accent     string
	PageCSS    template.CSS
	HeadingCSS template.CSS
	NameCSS    template.CSS
}

var funcMap = template.FuncMap{
	"join":  strings.Join,
	"upper": strings.ToUpper,
}

var variants = map[string]*template.Template{
	TemplateExecutiveClassic: mustParse(TemplateExecutiveClassic, executiveClassicHTML),
	TemplateCreativeDesigner: mustParse(TemplateCreativeDesigner, creativeDesignerHTML),
	TemplateModernMinimal:    mustParse(TemplateModernMinimal, modernMinimalHTML),
	TemplateTimelinePro:      mustParse(TemplateTimelinePro, timelineProHTML),
}

func mustParse(name, src string) *template.Template {
	t := template.Must(template.New(name).Funcs(funcMap).Parse(partialsHTML))
	return template.Must(t.Parse(src))
}

// TemplateIDs 返回全部可渲染的模板变体 ID。
func TemplateIDs() []string {
	return []string{
		TemplateExecutiveClassic,
		TemplateCreativeDesigner,
		TemplateModernMinimal,
		TemplateTimelinePro,
	}
}

// Render 把简历内容与样式映射为指定变体的 HTML 文档。
// accentColor 非空时覆盖主题中的强调色。缺失的可选字段视为
// “无此段落”，不是错误；渲染不做分页与溢出处理。
func Render(data *resume.Data, custom resume.Customization, templateID, accentColor string) (string, error) {
	tpl, ok := variants[templateID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTemplate, templateID)
	}

	accent := custom.Theme.Accent
	if strings.TrimSpace(accentColor) != "" {
		accent = accentColor
	}

	v := view{
		Data:       applySectionVisibility(data, custom.Sections),
		Custom:     custom,
		Accent:     accent,
		PageCSS:    pageCSS(custom),
		HeadingCSS: headingCSS(custom, accent),
		NameCSS:    nameCSS(custom),
	}

	var b strings.Builder
	if err := tpl.Execute(&b, v); err != nil {
		return "", fmt.Errorf("render template %s: %w", templateID, err)
	}
	return b.String(), nil
}

// applySectionVisibility 按保存的可见性设置清空被隐藏的数据块。
// 模板对空块一律跳过，隐藏因此等价于“无此段落”。
func applySectionVisibility(data *resume.Data, sections *resume.SectionOrder) *resume.Data {
	if sections == nil {
		return data
	}
	d := *data
	if sections.Hidden(resume.SectionSummary) {
		d.Summary = ""
	}
	if sections.Hidden(resume.SectionSkills) {
		d.Skills = resume.Skills{}
	}
	if sections.Hidden(resume.SectionExperience) {
		d.Experience = nil
	}
	if sections.Hidden(resume.SectionEducation) {
		d.Education = nil
	}
	if sections.Hidden(resume.SectionProjects) {
		d.Projects = nil
	}
	if sections.Hidden(resume.SectionAdditionalInfo) {
		d.AdditionalInfo = nil
	}
	if len(d.CustomSections) > 0 {
		kept := make([]resume.CustomSection, 0, len(d.CustomSections))
		for _, cs := range d.CustomSections {
			if !sections.Hidden(cs.ID) {
				kept = append(kept, cs)
			}
		}
		d.CustomSections = kept
	}
	return &d
}

func pageCSS(c resume.Customization) template.CSS {
	m := c.Layout.Margins
	return template.CSS(fmt.Sprintf(
		"font-family:'%s',sans-serif;font-size:%dpt;line-height:%.2f;color:%s;background:%s;padding:%dpx %dpx %dpx %dpx;",
		cssIdent(c.Typography.FontFamily.Body),
		c.Typography.FontSize.Body,
		c.Layout.LineHeight,
		cssColor(c.Theme.Text),
		cssColor(c.Theme.Background),
		m.Top, m.Right, m.Bottom, m.Left,
	))
}

func headingCSS(c resume.Customization, accent string) template.CSS {
	h := c.SectionHeadings
	var b strings.Builder
	fmt.Fprintf(&b, "font-family:'%s',sans-serif;font-size:%dpt;font-weight:%d;color:%s;text-align:%s;",
		cssIdent(c.Typography.FontFamily.Header),
		c.Typography.FontSize.Header,
		c.Typography.FontWeight.Header,
		cssColor(c.Theme.Header),
		cssIdent(h.Alignment),
	)
	if h.Style == resume.HeadingUppercase {
		b.WriteString("text-transform:uppercase;letter-spacing:1px;")
	}
	if h.Style == resume.HeadingBoxed {
		fmt.Fprintf(&b, "border:1px solid %s;padding:2px 8px;", cssColor(c.Theme.Border))
	}
	if h.Style == resume.HeadingSideAccent {
		fmt.Fprintf(&b, "border-left:4px solid %s;padding-left:8px;", cssColor(accent))
	}
	if h.ShowUnderline && h.UnderlineStyle != "none" {
		color := h.UnderlineColor
		if color == "" {
			color = accent
		}
		fmt.Fprintf(&b, "border-bottom:2px %s %s;padding-bottom:2px;", cssIdent(h.UnderlineStyle), cssColor(color))
	}
	fmt.Fprintf(&b, "margin:%dpx 0 6px 0;", c.Layout.SectionSpacing)
	return template.CSS(b.String())
}

func nameCSS(c resume.Customization) template.CSS {
	n := c.Name
	family := c.Typography.FontFamily.Name
	if n.Font == "body" {
		family = c.Typography.FontFamily.Body
	}
	size := c.Typography.FontSize.Name
	if n.FontSize > 0 {
		size = n.FontSize
	}
	weight := c.Typography.FontWeight.Name
	if n.FontWeight > 0 {
		weight = n.FontWeight
	}
	if n.Bold && weight < 700 {
		weight = 700
	}
	return template.CSS(fmt.Sprintf("font-family:'%s',serif;font-size:%dpt;font-weight:%d;",
		cssIdent(family), size, weight))
}

// cssColor 只放行 #hex 与字母组成的颜色名，其余替换为继承值。
func cssColor(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "inherit"
	}
	for i, r := range v {
		if r == '#' && i == 0 {
			continue
		}
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		return "inherit"
	}
	return v
}

// cssIdent 过滤掉可能破坏内联样式的字符。
func cssIdent(v string) string {
	var b strings.Builder
	for _, r := range v {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == ' ' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
