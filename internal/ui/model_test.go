package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/A-LKT/DiskPeek/internal/cache"
	"github.com/A-LKT/DiskPeek/internal/config"
	"github.com/A-LKT/DiskPeek/internal/domain"
	"github.com/A-LKT/DiskPeek/internal/services"
)

func testModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Path = t.TempDir()
	cfg.CacheDir = t.TempDir()
	model := NewModel(cfg, services.NewMockScanner(), cache.NewStore(cfg.CacheDir))
	model.width = 80
	model.height = 24
	return model
}

func installScan(t *testing.T, model Model) Model {
	t.Helper()
	scanner := services.NewMockScanner()
	result, err := scanner.Scan(context.Background(), services.ScanRequest{RootPath: model.cfg.Path})
	if err != nil {
		t.Fatal(err)
	}
	updated, _ := model.Update(scanResultMsg{result: result})
	return updated.(Model)
}

func TestScanResultInstallsTree(t *testing.T) {
	model := installScan(t, testModel(t))
	if model.current == nil || model.current != model.result.Root {
		t.Fatal("scan result did not become the current node")
	}
	if len(model.placed) == 0 {
		t.Fatal("no rectangles laid out after scan")
	}
	if model.scanning {
		t.Error("scanning flag still set")
	}
}

func TestSelectionCycles(t *testing.T) {
	model := installScan(t, testModel(t))
	count := len(model.placed)
	if count < 2 {
		t.Fatalf("need at least 2 blocks, got %d", count)
	}
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRight})
	model = updated.(Model)
	if model.selected != 1 {
		t.Errorf("selected = %d, want 1", model.selected)
	}
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyLeft})
	model = updated.(Model)
	if model.selected != 0 {
		t.Errorf("selected = %d, want 0", model.selected)
	}
}

func TestDrillDownAndBack(t *testing.T) {
	model := installScan(t, testModel(t))

	// Select the partial directory, then drill into it. The mock
	// completes deepening synchronously via the returned command.
	for i, placed := range model.placed {
		if placed.Node.IsDir {
			model.selected = i
		}
	}
	node := model.selectedNode()
	if node == nil || !node.IsDir || node.FullyLoaded {
		t.Fatal("expected a partial directory block in the mock tree")
	}

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)
	if !model.deepening || cmd == nil {
		t.Fatal("drill-down on a partial node must start a deepening")
	}

	// The worker hands back a detached subtree; node is still untouched
	// when the completion message arrives.
	fresh, err := services.NewMockScanner().ScanDeeper(context.Background(), node, nil)
	if err != nil {
		t.Fatal(err)
	}
	if node.FullyLoaded || len(node.Children) != 0 {
		t.Fatal("deepening worker mutated the live tree")
	}

	updated, _ = model.Update(deepenResultMsg{node: node, fresh: fresh})
	model = updated.(Model)
	if model.deepening {
		t.Error("deepening flag still set after completion")
	}
	if model.current != node {
		t.Error("completed deepening should focus the drilled node")
	}
	if !node.FullyLoaded || len(node.Children) != 2 {
		t.Error("completion message should adopt the fresh subtree into the node")
	}
	for _, child := range node.Children {
		if child.Parent != node {
			t.Errorf("adopted child %s does not point back at the drilled node", child.Name)
		}
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	model = updated.(Model)
	if model.current != model.result.Root {
		t.Error("backspace should return to the parent")
	}
}

func TestStaleBannerRendered(t *testing.T) {
	model := testModel(t)
	model.staleNote = "Cache is stale"
	model.current = &domain.Node{Name: "r", Path: "/r", IsDir: true, Size: 1, FullyLoaded: true}
	view := model.View()
	if view == "" {
		t.Fatal("empty view")
	}
}
