package resume

// PresetTheme 是带名字的完整主题。应用预设总是整体替换当前主题。
type PresetTheme struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Theme Theme  `json:"theme"`
}

// presetThemes 与定制面板中的预设按钮一一对应。
var presetThemes = []PresetTheme{
	{
		ID:   "midnight",
		Name: "Midnight",
		Theme: Theme{
			Primary:    "#1a1a2e",
			Secondary:  "#16213e",
			Text:       "#222222",
			Background: "#ffffff",
			Accent:     "#0f3460",
			Border:     "#e0e0e0",
			Header:     "#1a1a2e",
		},
	},
	{
		ID:   "ocean",
		Name: "Ocean",
		Theme: Theme{
			Primary:    "#05445e",
			Secondary:  "#189ab4",
			Text:       "#1b262c",
			Background: "#ffffff",
			Accent:     "#75e6da",
			Border:     "#d4f1f4",
			Header:     "#05445e",
		},
	},
	{
		ID:   "forest",
		Name: "Forest",
		Theme: Theme{
			Primary:    "#2d4a22",
			Secondary:  "#5a7d4f",
			Text:       "#263238",
			Background: "#ffffff",
			Accent:     "#8bc34a",
			Border:     "#dcedc8",
			Header:     "#2d4a22",
		},
	},
	{
		ID:   "burgundy",
		Name: "Burgundy",
		Theme: Theme{
			Primary:    "#5d1725",
			Secondary:  "#8c2f39",
			Text:       "#2b2024",
			Background: "#ffffff",
			Accent:     "#b23a48",
			Border:     "#f0d9db",
			Header:     "#5d1725",
		},
	},
	{
		ID:   "slate",
		Name: "Slate",
		Theme: Theme{
			Primary:    "#37474f",
			Secondary:  "#546e7a",
			Text:       "#212121",
			Background: "#ffffff",
			Accent:     "#78909c",
			Border:     "#cfd8dc",
			Header:     "#37474f",
		},
	},
	{
		ID:   "amber",
		Name: "Amber",
		Theme: Theme{
			Primary:    "#4e342e",
			Secondary:  "#795548",
			Text:       "#3e2723",
			Background: "#fffdf7",
			Accent:     "#ff8f00",
			Border:     "#ffe0b2",
			Header:     "#4e342e",
		},
	},
}

// PresetThemes 返回全部预设主题，调用方不得修改返回值。
func PresetThemes() []PresetTheme {
	return presetThemes
}

// PresetThemeByID 按 ID 查找预设主题。
func PresetThemeByID(id string) (PresetTheme, bool) {
	for _, p := range presetThemes {
		if p.ID == id {
			return p, true
		}
	}
	return PresetTheme{}, false
}
