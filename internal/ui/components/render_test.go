package components

import (
	"strings"
	"testing"

	"github.com/sadopc/linkscan/internal/model"
	"github.com/sadopc/linkscan/samefile"
	"github.com/sadopc/linkscan/internal/ui/style"
	"github.com/sadopc/linkscan/internal/walker"
)

func TestRenderHelp_SmallWidth(t *testing.T) {
	theme := style.DefaultTheme()
	for _, w := range []int{0, 1, 2, 5} {
		t.Run("", func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("RenderHelp panicked at width=%d: %v", w, r)
				}
			}()
			RenderHelp(theme, style.NewLayout(w, 10))
		})
	}
}

func TestRenderScanProgress_SmallWidth(t *testing.T) {
	theme := style.DefaultTheme()
	p := walker.Progress{}
	for _, w := range []int{0, 1, 2, 5} {
		t.Run("", func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("RenderScanProgress panicked at width=%d: %v", w, r)
				}
			}()
			RenderScanProgress(theme, style.NewLayout(w, 10), "/tmp", p, 3)
		})
	}
}

func TestFindingList_EmptyStates(t *testing.T) {
	fl := &FindingList{
		Theme:  style.DefaultTheme(),
		Layout: style.NewLayout(80, 24),
		Mode:   ModeCycles,
	}
	out := fl.Render()
	if !strings.Contains(out, "no symlink loops found") {
		t.Fatalf("expected empty-cycles message, got %q", out)
	}

	fl.Mode = ModeGroups
	out = fl.Render()
	if !strings.Contains(out, "no hardlink groups found") {
		t.Fatalf("expected empty-groups message, got %q", out)
	}
}

func TestFindingList_RendersRows(t *testing.T) {
	fl := &FindingList{
		Theme:  style.DefaultTheme(),
		Layout: style.NewLayout(100, 24),
		Cycles: []model.Cycle{
			{Link: "a/loop", Ancestor: "a", Depth: 2, Key: samefile.Key{Volume: 1, Index: 10}},
		},
		Groups: []model.LinkGroup{
			{Key: samefile.Key{Volume: 1, Index: 20}, Paths: []string{"x/one", "x/two"}, Size: 4096, Nlink: 2},
		},
		Mode: ModeCycles,
	}

	out := fl.Render()
	if !strings.Contains(out, "a/loop") || !strings.Contains(out, "a") {
		t.Fatalf("cycle row missing paths: %q", out)
	}

	fl.Mode = ModeGroups
	out = fl.Render()
	if !strings.Contains(out, "x/one") {
		t.Fatalf("group row missing first path: %q", out)
	}
	if !strings.Contains(out, "+1 links") {
		t.Fatalf("group row missing extra-link count: %q", out)
	}
}

func TestFindingList_SmallWidth(t *testing.T) {
	fl := &FindingList{
		Theme: style.DefaultTheme(),
		Cycles: []model.Cycle{
			{Link: "very/deep/nested/link/path", Ancestor: "very/deep", Depth: 4},
		},
		Mode: ModeCycles,
	}
	for _, w := range []int{0, 1, 2, 5} {
		fl.Layout = style.NewLayout(w, 10)
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Render panicked at width=%d: %v", w, r)
				}
			}()
			fl.Render()
		}()
	}
}

func TestFindingList_EnsureVisible(t *testing.T) {
	cycles := make([]model.Cycle, 50)
	for i := range cycles {
		cycles[i] = model.Cycle{Link: "l", Ancestor: "a", Depth: 1}
	}
	fl := &FindingList{
		Theme:  style.DefaultTheme(),
		Layout: style.NewLayout(80, 13), // 10 content rows
		Cycles: cycles,
		Mode:   ModeCycles,
	}

	fl.Cursor = 25
	fl.EnsureVisible()
	if fl.Cursor < fl.Offset || fl.Cursor >= fl.Offset+fl.Layout.ContentHeight() {
		t.Fatalf("cursor %d not visible at offset %d", fl.Cursor, fl.Offset)
	}

	fl.Cursor = 0
	fl.EnsureVisible()
	if fl.Offset != 0 {
		t.Fatalf("expected offset 0, got %d", fl.Offset)
	}
}

func TestRenderTabBar_MarksActiveMode(t *testing.T) {
	theme := style.DefaultTheme()
	layout := style.NewLayout(80, 24)

	out := RenderTabBar(theme, layout, ModeCycles, 3, 7)
	if !strings.Contains(out, "loops (3)") || !strings.Contains(out, "hardlinks (7)") {
		t.Fatalf("tab bar missing counts: %q", out)
	}
}

func TestRenderStatusBar_ShowsMessageOverPosition(t *testing.T) {
	theme := style.DefaultTheme()
	layout := style.NewLayout(120, 24)

	out := RenderStatusBar(theme, layout, 4, 10, "")
	if !strings.Contains(out, "5/10") {
		t.Fatalf("expected position 5/10, got %q", out)
	}

	out = RenderStatusBar(theme, layout, 4, 10, "Exported to out.json")
	if !strings.Contains(out, "Exported to out.json") {
		t.Fatalf("expected status message, got %q", out)
	}
}
