package pdf

import "testing"

func TestPrintRequest_ZeroesChromiumMargins(t *testing.T) {
	req := printRequest()

	for name, m := range map[string]*float64{
		"top":    req.MarginTop,
		"bottom": req.MarginBottom,
		"left":   req.MarginLeft,
		"right":  req.MarginRight,
	} {
		if m == nil {
			t.Fatalf("margin %s left unset, Chromium would apply its default", name)
		}
		if *m != 0 {
			t.Fatalf("margin %s = %v, want 0 so the rendered padding governs", name, *m)
		}
	}
	if !req.PrintBackground {
		t.Fatalf("background printing must be enabled for themed templates")
	}
	if !req.PreferCSSPageSize {
		t.Fatalf("css page size must take precedence")
	}
}
