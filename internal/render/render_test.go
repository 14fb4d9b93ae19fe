package render

import (
	"strings"
	"testing"

	"oppzResume/internal/resume"
)

func sampleData() *resume.Data {
	return &resume.Data{
		PersonalInfo: resume.PersonalInfo{
			Name:  "Ada Lovelace",
			Title: "Data Analyst",
			Email: "ada@example.com",
		},
		Summary: "Analytical engineer with a focus on reproducible pipelines.",
		Skills: resume.Skills{
			Technical: []string{"Go", "SQL", "Python"},
		},
		Experience: []resume.Experience{
			{
				Title:        "Senior Analyst",
				Company:      "Example Corp",
				Dates:        "2021 - Present",
				Achievements: []string{"Cut report latency by 40%"},
			},
		},
		Education: []resume.Education{
			{Degree: "BSc Mathematics", Institution: "Example University", Dates: "2014 - 2018"},
		},
	}
}

func TestRender_AllVariants(t *testing.T) {
	data := sampleData()
	custom := resume.DefaultCustomization()

	for _, id := range TemplateIDs() {
		html, err := Render(data, custom, id, "")
		if err != nil {
			t.Fatalf("render %s: %v", id, err)
		}
		if !strings.Contains(html, "Ada Lovelace") {
			t.Fatalf("%s: name missing from output", id)
		}
		if !strings.Contains(html, "Senior Analyst") {
			t.Fatalf("%s: experience missing from output", id)
		}
	}
}

func TestRender_EmptyOptionalSectionsOmitted(t *testing.T) {
	// 只有姓名；所有可选块为空，渲染不得报错，对应块被省略。
	data := &resume.Data{PersonalInfo: resume.PersonalInfo{Name: "Just A Name"}}
	custom := resume.DefaultCustomization()

	for _, id := range TemplateIDs() {
		html, err := Render(data, custom, id, "")
		if err != nil {
			t.Fatalf("render %s with empty data: %v", id, err)
		}
		for _, heading := range []string{"Experience", "Education", "Projects", "Additional Information"} {
			if strings.Contains(html, ">"+heading+"<") {
				t.Fatalf("%s: empty section %q rendered", id, heading)
			}
		}
	}
}

func TestRender_HiddenSectionsOmitted(t *testing.T) {
	data := sampleData()
	custom := resume.DefaultCustomization()
	if err := custom.Sections.Toggle(resume.SectionSummary); err != nil {
		t.Fatalf("toggle summary: %v", err)
	}
	if err := custom.Sections.Toggle(resume.SectionEducation); err != nil {
		t.Fatalf("toggle education: %v", err)
	}

	for _, id := range TemplateIDs() {
		html, err := Render(data, custom, id, "")
		if err != nil {
			t.Fatalf("render %s: %v", id, err)
		}
		if strings.Contains(html, "reproducible pipelines") {
			t.Fatalf("%s: hidden summary rendered", id)
		}
		if strings.Contains(html, "BSc Mathematics") {
			t.Fatalf("%s: hidden education rendered", id)
		}
		if !strings.Contains(html, "Senior Analyst") {
			t.Fatalf("%s: visible experience missing", id)
		}
	}

	// 数据本身不能被渲染修改，隐藏只作用于输出。
	if data.Summary == "" || len(data.Education) == 0 {
		t.Fatalf("render mutated the source data")
	}
}

func TestRender_ZeroValueDataDoesNotError(t *testing.T) {
	var data resume.Data
	if _, err := Render(&data, resume.DefaultCustomization(), TemplateExecutiveClassic, ""); err != nil {
		t.Fatalf("render zero data: %v", err)
	}
}

func TestRender_AccentOverride(t *testing.T) {
	html, err := Render(sampleData(), resume.DefaultCustomization(), TemplateTimelinePro, "#ff5500")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "#ff5500") {
		t.Fatalf("accent override not applied")
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	if _, err := Render(sampleData(), resume.DefaultCustomization(), "no-such-template", ""); err == nil {
		t.Fatalf("expected error for unknown template id")
	}
}

func TestRender_CustomSectionsSortedByPosition(t *testing.T) {
	data := sampleData()
	data.CustomSections = []resume.CustomSection{
		{ID: "c1", Title: "Volunteering", Type: resume.CustomSectionText, Position: 2, Text: "Local code club mentor."},
		{ID: "c2", Title: "Publications", Type: resume.CustomSectionList, Position: 1, Items: []string{"Paper A"}},
	}

	html, err := Render(data, resume.DefaultCustomization(), TemplateModernMinimal, "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	pub := strings.Index(html, "Publications")
	vol := strings.Index(html, "Volunteering")
	if pub < 0 || vol < 0 {
		t.Fatalf("custom sections missing from output")
	}
	if pub > vol {
		t.Fatalf("custom sections not ordered by position")
	}
}

func TestRender_EscapesUserContent(t *testing.T) {
	data := sampleData()
	data.Summary = `<script>alert("x")</script>`

	html, err := Render(data, resume.DefaultCustomization(), TemplateExecutiveClassic, "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>alert") {
		t.Fatalf("user content not escaped")
	}
}
