package resume

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestToggle_RoundTrip(t *testing.T) {
	s := NewSectionOrder(DefaultSectionIDs())

	if !s.IsVisible(SectionSkills) {
		t.Fatalf("skills should start visible")
	}
	if err := s.Toggle(SectionSkills); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if s.IsVisible(SectionSkills) {
		t.Fatalf("skills should be hidden after first toggle")
	}
	if err := s.Toggle(SectionSkills); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !s.IsVisible(SectionSkills) {
		t.Fatalf("skills should be visible again after second toggle")
	}
}

func TestToggle_AfterJSONRoundTrip(t *testing.T) {
	// 老版本的保存数据可能只带 order 不带 visible，
	// 反序列化后的零值 map 不应导致写入崩溃。
	var s SectionOrder
	if err := json.Unmarshal([]byte(`{"order":["summary","skills"]}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !s.IsVisible(SectionSummary) {
		t.Fatalf("untracked section should default to visible")
	}
	if err := s.Toggle(SectionSummary); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if s.IsVisible(SectionSummary) {
		t.Fatalf("summary should be hidden after toggle")
	}
	if err := s.Toggle(SectionSummary); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !s.IsVisible(SectionSummary) {
		t.Fatalf("summary should be visible again")
	}
}

func TestToggle_UnknownSection(t *testing.T) {
	s := NewSectionOrder(DefaultSectionIDs())
	if err := s.Toggle("nope"); err == nil {
		t.Fatalf("expected error for unknown section")
	}
}

func TestMove_SwapsAdjacent(t *testing.T) {
	s := NewSectionOrder([]string{"a", "b", "c"})

	if err := s.MoveUp("b"); err != nil {
		t.Fatalf("move up: %v", err)
	}
	if got, want := s.Order, []string{"b", "a", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}

	if err := s.MoveDown("a"); err != nil {
		t.Fatalf("move down: %v", err)
	}
	if got, want := s.Order, []string{"b", "c", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestMove_NoopAtBoundaries(t *testing.T) {
	s := NewSectionOrder([]string{"a", "b", "c"})

	if err := s.MoveUp("a"); err != nil {
		t.Fatalf("move up first: %v", err)
	}
	if err := s.MoveDown("c"); err != nil {
		t.Fatalf("move down last: %v", err)
	}
	if got, want := s.Order, []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order changed at boundary: %v", got)
	}
}

func TestMove_CustomSectionFixed(t *testing.T) {
	s := NewSectionOrder([]string{"a", "b"})
	s.AddCustom("custom-1")

	if err := s.MoveUp("custom-1"); err == nil {
		t.Fatalf("expected fixed-section error")
	}
	// 相邻项是固定段落时普通段落也不越过它。
	if err := s.MoveDown("b"); err != nil {
		t.Fatalf("move down: %v", err)
	}
	if got, want := s.Order, []string{"a", "b", "custom-1"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestReorder_CommitsDragResult(t *testing.T) {
	s := NewSectionOrder([]string{"a", "b", "c"})

	if err := s.Reorder([]string{"c", "a", "b"}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if got, want := s.Order, []string{"c", "a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestReorder_RejectsBadSets(t *testing.T) {
	s := NewSectionOrder([]string{"a", "b", "c"})

	if err := s.Reorder([]string{"a", "b"}); err == nil {
		t.Fatalf("expected error for missing id")
	}
	if err := s.Reorder([]string{"a", "a", "b"}); err == nil {
		t.Fatalf("expected error for duplicate id")
	}
	if err := s.Reorder([]string{"a", "b", "x"}); err == nil {
		t.Fatalf("expected error for unknown id")
	}
}

func TestReorder_KeepsCustomSectionsInPlace(t *testing.T) {
	s := NewSectionOrder([]string{"a", "b"})
	s.AddCustom("custom-1")

	if err := s.Reorder([]string{"custom-1", "a", "b"}); err == nil {
		t.Fatalf("expected error when drag moves a fixed section")
	}
	if err := s.Reorder([]string{"b", "a", "custom-1"}); err != nil {
		t.Fatalf("reorder around fixed section: %v", err)
	}
}

func TestVisibleOrder_SubsetOfOrder(t *testing.T) {
	s := NewSectionOrder(DefaultSectionIDs())
	if err := s.Toggle(SectionProjects); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	visible := s.VisibleOrder()
	for _, id := range visible {
		found := false
		for _, o := range s.Order {
			if o == id {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("visible id %q missing from order list", id)
		}
	}
	for _, id := range visible {
		if id == SectionProjects {
			t.Fatalf("hidden section still in visible order")
		}
	}
}
