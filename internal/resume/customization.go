package resume

// Customization 表示一份简历的全部样式参数。
// 与内容（Data）正交，随简历记录一起以 JSONB 形式持久化。
type Customization struct {
	Theme           Theme           `json:"theme"`
	Typography      Typography      `json:"typography"`
	Layout          Layout          `json:"layout"`
	Name            NameStyle       `json:"nameCustomization"`
	Title           TitleStyle      `json:"titleCustomization"`
	EntryLayout     EntryLayout     `json:"entryLayout"`
	SectionHeadings SectionHeadings `json:"sectionHeadings"`
	Sections        *SectionOrder   `json:"sections,omitempty"`
}

// Theme 是七个命名颜色组成的主题。预设主题总是整体替换。
type Theme struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Text       string `json:"text"`
	Background string `json:"background"`
	Accent     string `json:"accent"`
	Border     string `json:"border"`
	Header     string `json:"header"`
}

// Typography 按角色（标题/正文/姓名）描述字体族、字号与字重。
type Typography struct {
	FontFamily FontFamily `json:"fontFamily"`
	FontSize   FontSize   `json:"fontSize"`
	FontWeight FontWeight `json:"fontWeight"`
}

type FontFamily struct {
	Header string `json:"header"`
	Body   string `json:"body"`
	Name   string `json:"name"`
}

type FontSize struct {
	Header int `json:"header"`
	Body   int `json:"body"`
	Name   int `json:"name"`
}

type FontWeight struct {
	Header int `json:"header"`
	Body   int `json:"body"`
	Name   int `json:"name"`
}

// Layout 描述页面级别的留白与行距。
type Layout struct {
	Margins        Margins `json:"margins"`
	SectionSpacing int     `json:"sectionSpacing"`
	LineHeight     float64 `json:"lineHeight"`
}

type Margins struct {
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

// NameStyle 控制姓名的展示。
type NameStyle struct {
	Size       string `json:"size"`
	Bold       bool   `json:"bold"`
	Font       string `json:"font"`
	FontWeight int    `json:"fontWeight,omitempty"`
	FontSize   int    `json:"fontSize,omitempty"`
}

// TitleStyle 控制职位头衔的展示。
// Position 取 same-line 或 below。
type TitleStyle struct {
	Size           string `json:"size"`
	Position       string `json:"position"`
	Style          string `json:"style"`
	SeparationType string `json:"separationType"`
}

// 条目布局的四种变体。
const (
	EntryLayoutStandard  = "standard"
	EntryLayoutCompact   = "compact"
	EntryLayoutTwoColumn = "two-column"
	EntryLayoutInline    = "inline"
)

// EntryLayout 控制经历/教育等条目的排布方式。
type EntryLayout struct {
	LayoutType        string `json:"layoutType"`
	TitleSize         string `json:"titleSize"`
	SubtitleStyle     string `json:"subtitleStyle"`
	SubtitlePlacement string `json:"subtitlePlacement"`
	IndentBody        bool   `json:"indentBody"`
	ListStyle         string `json:"listStyle"`
	DescriptionFormat string `json:"descriptionFormat"`
}

// 段落标题的七种风格。
const (
	HeadingClassic    = "classic"
	HeadingModern     = "modern"
	HeadingMinimal    = "minimal"
	HeadingBoxed      = "boxed"
	HeadingUnderlined = "underlined"
	HeadingSideAccent = "side-accent"
	HeadingUppercase  = "uppercase"
)

// SectionHeadings 控制段落标题的风格。
// Alignment/ShowUnderline/UnderlineStyle 由 Style 单向派生默认值。
type SectionHeadings struct {
	Style          string `json:"style"`
	Alignment      string `json:"alignment"`
	ShowUnderline  bool   `json:"showUnderline"`
	UnderlineStyle string `json:"underlineStyle"`
	UnderlineColor string `json:"underlineColor,omitempty"`
}

// headingDefaults 是各风格的规范默认值查找表。
// 切换 Style 时依赖字段被重置为这里的值，反向不成立。
var headingDefaults = map[string]SectionHeadings{
	HeadingClassic:    {Style: HeadingClassic, Alignment: "left", ShowUnderline: true, UnderlineStyle: "solid"},
	HeadingModern:     {Style: HeadingModern, Alignment: "left", ShowUnderline: false, UnderlineStyle: "none"},
	HeadingMinimal:    {Style: HeadingMinimal, Alignment: "left", ShowUnderline: false, UnderlineStyle: "none"},
	HeadingBoxed:      {Style: HeadingBoxed, Alignment: "center", ShowUnderline: false, UnderlineStyle: "none"},
	HeadingUnderlined: {Style: HeadingUnderlined, Alignment: "left", ShowUnderline: true, UnderlineStyle: "double"},
	HeadingSideAccent: {Style: HeadingSideAccent, Alignment: "left", ShowUnderline: false, UnderlineStyle: "none"},
	HeadingUppercase:  {Style: HeadingUppercase, Alignment: "center", ShowUnderline: true, UnderlineStyle: "dotted"},
}

// HeadingStyleDefaults 返回指定风格的规范默认值。
// 未知风格回落到 classic。
func HeadingStyleDefaults(style string) SectionHeadings {
	if d, ok := headingDefaults[style]; ok {
		return d
	}
	return headingDefaults[HeadingClassic]
}

// DefaultCustomization 返回新简历的初始样式。
func DefaultCustomization() Customization {
	return Customization{
		Theme: Theme{
			Primary:    "#1a1a2e",
			Secondary:  "#16213e",
			Text:       "#222222",
			Background: "#ffffff",
			Accent:     "#3388ff",
			Border:     "#e0e0e0",
			Header:     "#1a1a2e",
		},
		Typography: Typography{
			FontFamily: FontFamily{Header: "Georgia", Body: "Arial", Name: "Georgia"},
			FontSize:   FontSize{Header: 14, Body: 10, Name: 24},
			FontWeight: FontWeight{Header: 700, Body: 400, Name: 700},
		},
		Layout: Layout{
			Margins:        Margins{Top: 36, Bottom: 36, Left: 36, Right: 36},
			SectionSpacing: 16,
			LineHeight:     1.4,
		},
		Name:  NameStyle{Size: "large", Bold: true, Font: "header"},
		Title: TitleStyle{Size: "medium", Position: "below", Style: "normal", SeparationType: "none"},
		EntryLayout: EntryLayout{
			LayoutType:        EntryLayoutStandard,
			TitleSize:         "medium",
			SubtitleStyle:     "italic",
			SubtitlePlacement: "below",
			IndentBody:        false,
			ListStyle:         "bullet",
			DescriptionFormat: "list",
		},
		SectionHeadings: HeadingStyleDefaults(HeadingClassic),
		Sections:        NewSectionOrder(DefaultSectionIDs()),
	}
}
