package resume

// CustomizationPatch 是各样式面板提交的类型化局部更新。
// 每个变体对应 Customization 的一个切片，合并语义为浅合并：
// 只有显式给出的字段会覆盖现有值。主题是唯一的整体替换变体。
type CustomizationPatch interface {
	apply(c *Customization)
}

// Apply 将一组补丁依次合并进样式状态。
func (c *Customization) Apply(patches ...CustomizationPatch) {
	for _, p := range patches {
		if p != nil {
			p.apply(c)
		}
	}
}

// ThemePatch 整体替换主题。
// 预设主题按钮走这条路径：七个颜色全部覆盖，旧值一律不保留。
type ThemePatch struct {
	Theme Theme
}

func (p ThemePatch) apply(c *Customization) {
	c.Theme = p.Theme
}

// TypographyPatch 按角色浅合并字体设置。
type TypographyPatch struct {
	HeaderFamily *string
	BodyFamily   *string
	NameFamily   *string
	HeaderSize   *int
	BodySize     *int
	NameSize     *int
	HeaderWeight *int
	BodyWeight   *int
	NameWeight   *int
}

func (p TypographyPatch) apply(c *Customization) {
	t := &c.Typography
	setString(&t.FontFamily.Header, p.HeaderFamily)
	setString(&t.FontFamily.Body, p.BodyFamily)
	setString(&t.FontFamily.Name, p.NameFamily)
	setInt(&t.FontSize.Header, p.HeaderSize)
	setInt(&t.FontSize.Body, p.BodySize)
	setInt(&t.FontSize.Name, p.NameSize)
	setInt(&t.FontWeight.Header, p.HeaderWeight)
	setInt(&t.FontWeight.Body, p.BodyWeight)
	setInt(&t.FontWeight.Name, p.NameWeight)
}

// LayoutPatch 浅合并页面留白与行距。
type LayoutPatch struct {
	MarginTop      *int
	MarginBottom   *int
	MarginLeft     *int
	MarginRight    *int
	SectionSpacing *int
	LineHeight     *float64
}

func (p LayoutPatch) apply(c *Customization) {
	l := &c.Layout
	setInt(&l.Margins.Top, p.MarginTop)
	setInt(&l.Margins.Bottom, p.MarginBottom)
	setInt(&l.Margins.Left, p.MarginLeft)
	setInt(&l.Margins.Right, p.MarginRight)
	setInt(&l.SectionSpacing, p.SectionSpacing)
	if p.LineHeight != nil {
		l.LineHeight = *p.LineHeight
	}
}

// NamePatch 浅合并姓名展示设置。
type NamePatch struct {
	Size       *string
	Bold       *bool
	Font       *string
	FontWeight *int
	FontSize   *int
}

func (p NamePatch) apply(c *Customization) {
	n := &c.Name
	setString(&n.Size, p.Size)
	if p.Bold != nil {
		n.Bold = *p.Bold
	}
	setString(&n.Font, p.Font)
	setInt(&n.FontWeight, p.FontWeight)
	setInt(&n.FontSize, p.FontSize)
}

// TitlePatch 浅合并头衔展示设置。
type TitlePatch struct {
	Size           *string
	Position       *string
	Style          *string
	SeparationType *string
}

func (p TitlePatch) apply(c *Customization) {
	t := &c.Title
	setString(&t.Size, p.Size)
	setString(&t.Position, p.Position)
	setString(&t.Style, p.Style)
	setString(&t.SeparationType, p.SeparationType)
}

// EntryLayoutPatch 浅合并条目布局设置。
type EntryLayoutPatch struct {
	LayoutType        *string
	TitleSize         *string
	SubtitleStyle     *string
	SubtitlePlacement *string
	IndentBody        *bool
	ListStyle         *string
	DescriptionFormat *string
}

func (p EntryLayoutPatch) apply(c *Customization) {
	e := &c.EntryLayout
	setString(&e.LayoutType, p.LayoutType)
	setString(&e.TitleSize, p.TitleSize)
	setString(&e.SubtitleStyle, p.SubtitleStyle)
	setString(&e.SubtitlePlacement, p.SubtitlePlacement)
	if p.IndentBody != nil {
		e.IndentBody = *p.IndentBody
	}
	setString(&e.ListStyle, p.ListStyle)
	setString(&e.DescriptionFormat, p.DescriptionFormat)
}

// SectionHeadingsPatch 浅合并段落标题设置。
// 给出 Style 且与当前值不同时，依赖字段先重置为该风格的
// 规范默认值，随后才应用补丁中显式给出的其他字段。
type SectionHeadingsPatch struct {
	Style          *string
	Alignment      *string
	ShowUnderline  *bool
	UnderlineStyle *string
	UnderlineColor *string
}

func (p SectionHeadingsPatch) apply(c *Customization) {
	h := &c.SectionHeadings
	if p.Style != nil && *p.Style != h.Style {
		*h = HeadingStyleDefaults(*p.Style)
	}
	setString(&h.Alignment, p.Alignment)
	if p.ShowUnderline != nil {
		h.ShowUnderline = *p.ShowUnderline
	}
	setString(&h.UnderlineStyle, p.UnderlineStyle)
	setString(&h.UnderlineColor, p.UnderlineColor)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
