package resume

import (
	"reflect"
	"testing"
)

func TestPresetTheme_FullReplace(t *testing.T) {
	c := DefaultCustomization()
	c.Theme = Theme{
		Primary:    "#111111",
		Secondary:  "#222222",
		Text:       "#333333",
		Background: "#444444",
		Accent:     "#555555",
		Border:     "#666666",
		Header:     "#777777",
	}

	preset, ok := PresetThemeByID("ocean")
	if !ok {
		t.Fatalf("ocean preset missing")
	}
	c.Apply(ThemePatch{Theme: preset.Theme})

	if !reflect.DeepEqual(c.Theme, preset.Theme) {
		t.Fatalf("theme = %+v, want %+v", c.Theme, preset.Theme)
	}
	// 旧主题的任何颜色都不得残留。
	old := []string{"#111111", "#222222", "#333333", "#444444", "#555555", "#666666", "#777777"}
	got := []string{c.Theme.Primary, c.Theme.Secondary, c.Theme.Text, c.Theme.Background, c.Theme.Accent, c.Theme.Border, c.Theme.Header}
	for _, o := range old {
		for _, g := range got {
			if o == g {
				t.Fatalf("old color %s survived preset apply", o)
			}
		}
	}
}

func TestHeadingStyleChange_ResetsDependentFields(t *testing.T) {
	c := DefaultCustomization()
	center := "center"
	dashed := "dashed"
	c.Apply(SectionHeadingsPatch{Alignment: &center, UnderlineStyle: &dashed})

	boxed := HeadingBoxed
	c.Apply(SectionHeadingsPatch{Style: &boxed})

	want := HeadingStyleDefaults(HeadingBoxed)
	if c.SectionHeadings != want {
		t.Fatalf("headings = %+v, want canonical defaults %+v", c.SectionHeadings, want)
	}
}

func TestHeadingPatch_SameStyleKeepsOverrides(t *testing.T) {
	c := DefaultCustomization()
	center := "center"
	style := c.SectionHeadings.Style
	c.Apply(SectionHeadingsPatch{Style: &style, Alignment: &center})

	if c.SectionHeadings.Alignment != "center" {
		t.Fatalf("alignment override lost when style unchanged")
	}
}

func TestHeadingPatch_StyleChangeThenFieldsInSamePatch(t *testing.T) {
	c := DefaultCustomization()
	minimal := HeadingMinimal
	right := "right"
	c.Apply(SectionHeadingsPatch{Style: &minimal, Alignment: &right})

	if c.SectionHeadings.Style != HeadingMinimal {
		t.Fatalf("style = %s", c.SectionHeadings.Style)
	}
	// 显式给出的字段在重置之后仍然生效。
	if c.SectionHeadings.Alignment != "right" {
		t.Fatalf("alignment = %s, want right", c.SectionHeadings.Alignment)
	}
	if c.SectionHeadings.ShowUnderline != HeadingStyleDefaults(HeadingMinimal).ShowUnderline {
		t.Fatalf("showUnderline not reset to minimal default")
	}
}

func TestPatch_ShallowMerge(t *testing.T) {
	c := DefaultCustomization()
	orig := c.Typography

	size := 12
	c.Apply(TypographyPatch{BodySize: &size})

	if c.Typography.FontSize.Body != 12 {
		t.Fatalf("body size = %d, want 12", c.Typography.FontSize.Body)
	}
	if c.Typography.FontFamily != orig.FontFamily {
		t.Fatalf("untouched font family changed: %+v", c.Typography.FontFamily)
	}
	if c.Typography.FontSize.Header != orig.FontSize.Header || c.Typography.FontSize.Name != orig.FontSize.Name {
		t.Fatalf("untouched sizes changed: %+v", c.Typography.FontSize)
	}
}

func TestLayoutAndEntryPatches(t *testing.T) {
	c := DefaultCustomization()

	top := 48
	lh := 1.6
	c.Apply(LayoutPatch{MarginTop: &top, LineHeight: &lh})
	if c.Layout.Margins.Top != 48 || c.Layout.LineHeight != 1.6 {
		t.Fatalf("layout patch not applied: %+v", c.Layout)
	}
	if c.Layout.Margins.Bottom != 36 {
		t.Fatalf("untouched margin changed")
	}

	two := EntryLayoutTwoColumn
	indent := true
	c.Apply(EntryLayoutPatch{LayoutType: &two, IndentBody: &indent})
	if c.EntryLayout.LayoutType != EntryLayoutTwoColumn || !c.EntryLayout.IndentBody {
		t.Fatalf("entry layout patch not applied: %+v", c.EntryLayout)
	}
	if c.EntryLayout.ListStyle != "bullet" {
		t.Fatalf("untouched entry field changed")
	}
}

func TestSortedCustomSections_StableOnTies(t *testing.T) {
	d := Data{CustomSections: []CustomSection{
		{ID: "c1", Title: "One", Type: CustomSectionText, Position: 2},
		{ID: "c2", Title: "Two", Type: CustomSectionList, Position: 1},
		{ID: "c3", Title: "Three", Type: CustomSectionText, Position: 1},
	}}

	got := d.SortedCustomSections()
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	want := []string{"c2", "c3", "c1"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("order = %v, want %v", ids, want)
	}
}

func TestHeadingStyleDefaults_UnknownFallsBack(t *testing.T) {
	if got := HeadingStyleDefaults("no-such-style"); got.Style != HeadingClassic {
		t.Fatalf("fallback style = %s, want classic", got.Style)
	}
}
