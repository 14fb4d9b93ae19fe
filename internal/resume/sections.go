package resume

import (
	"errors"
	"fmt"
)

// 内置段落的 ID，顺序即默认显示顺序。
const (
	SectionSummary        = "summary"
	SectionSkills         = "skills"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionProjects       = "projects"
	SectionAdditionalInfo = "additionalInfo"
)

// DefaultSectionIDs 返回内置段落的默认顺序。
func DefaultSectionIDs() []string {
	return []string{
		SectionSummary,
		SectionSkills,
		SectionExperience,
		SectionEducation,
		SectionProjects,
		SectionAdditionalInfo,
	}
}

var (
	ErrUnknownSection = errors.New("unknown section id")
	ErrFixedSection   = errors.New("section position is fixed")
)

// SectionOrder 维护段落的可见集合与显示顺序。
// 不变量：可见集合中的每个 ID 一定出现在顺序列表里。
// 自定义段落位置固定，不参与上下移动与拖拽。
type SectionOrder struct {
	Order   []string        `json:"order"`
	Visible map[string]bool `json:"visible"`
	Fixed   map[string]bool `json:"fixed,omitempty"`
}

// NewSectionOrder 用给定顺序构造控制器，初始全部可见。
func NewSectionOrder(ids []string) *SectionOrder {
	s := &SectionOrder{
		Order:   make([]string, 0, len(ids)),
		Visible: make(map[string]bool, len(ids)),
		Fixed:   make(map[string]bool),
	}
	for _, id := range ids {
		s.Order = append(s.Order, id)
		s.Visible[id] = true
	}
	return s
}

// AddCustom 追加一个位置固定的自定义段落。
func (s *SectionOrder) AddCustom(id string) {
	if s.contains(id) {
		return
	}
	s.ensureMaps()
	s.Order = append(s.Order, id)
	s.Visible[id] = true
	s.Fixed[id] = true
}

// Toggle 翻转指定段落的可见性。连续两次调用回到原状态。
// JSON 反序列化出来的实例可见集合可能为 nil，此时视为全部可见。
func (s *SectionOrder) Toggle(id string) error {
	if !s.contains(id) {
		return fmt.Errorf("%w: %s", ErrUnknownSection, id)
	}
	s.ensureMaps()
	if _, ok := s.Visible[id]; !ok {
		s.Visible[id] = true
	}
	s.Visible[id] = !s.Visible[id]
	return nil
}

// IsVisible 返回段落当前是否可见。
func (s *SectionOrder) IsVisible(id string) bool {
	return !s.Hidden(id)
}

// Hidden 仅当段落被显式标记为不可见时返回 true；
// 未被跟踪的段落默认可见。
func (s *SectionOrder) Hidden(id string) bool {
	if s == nil || s.Visible == nil {
		return false
	}
	v, ok := s.Visible[id]
	return ok && !v
}

func (s *SectionOrder) ensureMaps() {
	if s.Visible == nil {
		s.Visible = make(map[string]bool)
	}
	if s.Fixed == nil {
		s.Fixed = make(map[string]bool)
	}
}

// MoveUp 将段落与其上一个相邻段落交换位置；已在首位时为 no-op。
func (s *SectionOrder) MoveUp(id string) error {
	return s.swap(id, -1)
}

// MoveDown 将段落与其下一个相邻段落交换位置；已在末位时为 no-op。
func (s *SectionOrder) MoveDown(id string) error {
	return s.swap(id, +1)
}

func (s *SectionOrder) swap(id string, delta int) error {
	if s.Fixed[id] {
		return fmt.Errorf("%w: %s", ErrFixedSection, id)
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownSection, id)
	}
	j := idx + delta
	if j < 0 || j >= len(s.Order) {
		return nil
	}
	// 不越过固定段落，交换只发生在可移动的相邻项之间。
	if s.Fixed[s.Order[j]] {
		return nil
	}
	s.Order[idx], s.Order[j] = s.Order[j], s.Order[idx]
	return nil
}

// Reorder 用拖拽产生的新顺序整体替换当前顺序。
// 与上下按钮共用同一条提交路径：新顺序必须与当前顺序包含完全
// 相同的 ID 集合，且固定段落的位置不得改变。
func (s *SectionOrder) Reorder(newOrder []string) error {
	if len(newOrder) != len(s.Order) {
		return errors.New("reorder must contain every section exactly once")
	}
	seen := make(map[string]bool, len(newOrder))
	for _, id := range newOrder {
		if !s.contains(id) {
			return fmt.Errorf("%w: %s", ErrUnknownSection, id)
		}
		if seen[id] {
			return fmt.Errorf("duplicate section id: %s", id)
		}
		seen[id] = true
	}
	for i, id := range newOrder {
		if s.Fixed[id] && s.Order[i] != id {
			return fmt.Errorf("%w: %s", ErrFixedSection, id)
		}
		if s.Fixed[s.Order[i]] && newOrder[i] != s.Order[i] {
			return fmt.Errorf("%w: %s", ErrFixedSection, s.Order[i])
		}
	}
	s.Order = append(s.Order[:0], newOrder...)
	return nil
}

// VisibleOrder 按当前顺序返回可见段落。
func (s *SectionOrder) VisibleOrder() []string {
	out := make([]string, 0, len(s.Order))
	for _, id := range s.Order {
		if s.IsVisible(id) {
			out = append(out, id)
		}
	}
	return out
}

func (s *SectionOrder) contains(id string) bool {
	return s.indexOf(id) >= 0
}

func (s *SectionOrder) indexOf(id string) int {
	for i, v := range s.Order {
		if v == id {
			return i
		}
	}
	return -1
}
