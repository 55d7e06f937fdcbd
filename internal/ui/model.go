package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/A-LKT/DiskPeek/internal/cache"
	"github.com/A-LKT/DiskPeek/internal/config"
	"github.com/A-LKT/DiskPeek/internal/domain"
	"github.com/A-LKT/DiskPeek/internal/services"
	"github.com/A-LKT/DiskPeek/internal/treemap"
)

type Model struct {
	cfg     config.Config
	scanner services.Scanner
	store   *cache.Store
	policy  cache.StalenessPolicy
	keys    KeyMap
	spin    spinner.Model

	result   *domain.ScanResult
	current  *domain.Node
	placed   []treemap.Placed
	selected int

	scanning     bool
	deepening    bool
	scanCancel   context.CancelFunc
	deepenCancel context.CancelFunc

	status     string
	staleNote  string
	showHelp   bool
	width      int
	height     int
}

type ConfigProvider interface {
	ConfigSnapshot() config.Config
}

func NewModel(cfg config.Config, scanner services.Scanner, store *cache.Store) Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	return Model{
		cfg:     cfg,
		scanner: scanner,
		store:   store,
		policy:  cache.StalenessPolicy{MaxAgeDays: cfg.CacheMaxAgeDays},
		keys:    DefaultKeyMap(),
		spin:    spin,
		status:  "Loading...",
		width:   100,
		height:  30,
	}
}

func (model Model) WithStatus(message string) Model {
	if message != "" {
		model.status = message
	}
	return model
}

func (model Model) ConfigSnapshot() config.Config {
	return model.cfg
}

func (model Model) Init() tea.Cmd {
	return tea.Batch(model.loadCacheCmd(), model.spin.Tick)
}

// effectiveDepth maps the configured override onto the scanner's contract:
// a zero setting means the built-in default, never a zero-depth scan.
func (model Model) effectiveDepth() int {
	if model.cfg.MaxScanDepth > 0 {
		return model.cfg.MaxScanDepth
	}
	return services.DefaultMaxDepth
}

func (model Model) loadCacheCmd() tea.Cmd {
	store := model.store
	path := model.cfg.Path
	return func() tea.Msg {
		result, ok := store.Load(path)
		cachedAt, _ := store.CacheTime(path)
		return cacheLoadedMsg{result: result, cachedAt: cachedAt, ok: ok}
	}
}

// saveCacheCmd snapshots the tree synchronously, on the update loop, so only
// the artifact write happens in the background. Later messages may mutate
// the tree without racing the save.
func (model Model) saveCacheCmd() tea.Cmd {
	data, ok := model.store.Snapshot(model.result)
	if !ok {
		return nil
	}
	store := model.store
	rootPath := model.result.RootPath
	return func() tea.Msg {
		store.SaveSnapshot(rootPath, data)
		return nil
	}
}

// progressCmd listens for the next progress notification. The operation's
// channel appears only after the worker goroutine has started, and the
// previous operation's channel may still be around; both cases come back as
// an empty Completed message so Update re-listens while an operation is
// running and stops once none is.
func (model Model) progressCmd() tea.Cmd {
	provider, ok := model.scanner.(services.ProgressProvider)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		ch := provider.Progress()
		if ch == nil {
			time.Sleep(20 * time.Millisecond)
			return scanProgressMsg{progress: services.ScanProgress{Completed: true}}
		}
		progress, open := <-ch
		if !open {
			time.Sleep(20 * time.Millisecond)
			return scanProgressMsg{progress: services.ScanProgress{Completed: true}}
		}
		return scanProgressMsg{progress: progress}
	}
}

func (model Model) beginScan() (Model, tea.Cmd) {
	if model.scanCancel != nil {
		model.scanCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	model.scanCancel = cancel
	model.scanning = true
	model.status = "Scanning " + model.cfg.Path
	model.staleNote = ""

	scanner := model.scanner
	req := services.ScanRequest{
		RootPath: model.cfg.Path,
		Excluded: model.cfg.ExcludedFolders,
		MaxDepth: model.effectiveDepth(),
	}
	scan := func() tea.Msg {
		result, err := scanner.Scan(ctx, req)
		return scanResultMsg{result: result, err: err}
	}
	return model, tea.Batch(scan, model.progressCmd(), model.spin.Tick)
}

// beginDeepen materializes more levels below a partial node. Starting a new
// deepening cancels one still in flight; the two cancel handles for scans
// and deepenings are independent.
func (model Model) beginDeepen(node *domain.Node) (Model, tea.Cmd) {
	if model.deepenCancel != nil {
		model.deepenCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	model.deepenCancel = cancel
	model.deepening = true
	model.status = "Loading " + node.Path

	scanner := model.scanner
	excluded := model.cfg.ExcludedFolders
	deepen := func() tea.Msg {
		fresh, err := scanner.ScanDeeper(ctx, node, excluded)
		return deepenResultMsg{node: node, fresh: fresh, err: err}
	}
	return model, tea.Batch(deepen, model.progressCmd(), model.spin.Tick)
}

func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return model.handleKey(typed)
	case tea.WindowSizeMsg:
		model.width = typed.Width
		model.height = typed.Height
		model.relayout()
		return model, nil
	case spinner.TickMsg:
		if !model.scanning && !model.deepening {
			return model, nil
		}
		var cmd tea.Cmd
		model.spin, cmd = model.spin.Update(typed)
		return model, cmd
	case cacheLoadedMsg:
		if !typed.ok {
			return model.beginScan()
		}
		model.result = typed.result
		model.current = typed.result.Root
		model.selected = 0
		model.relayout()
		model.status = fmt.Sprintf("Loaded from cache (%s)", model.policy.Describe(typed.cachedAt))
		if model.policy.IsStale(typed.cachedAt) {
			model.staleNote = fmt.Sprintf("Cache is stale (from %s) - press r to rescan", model.policy.Describe(typed.cachedAt))
		}
		return model, nil
	case scanResultMsg:
		model.scanning = false
		model.scanCancel = nil
		if typed.err != nil {
			if errors.Is(typed.err, context.Canceled) {
				model.status = "Scan cancelled"
			} else {
				model.status = fmt.Sprintf("Scan failed: %v", typed.err)
			}
			return model, nil
		}
		model.result = typed.result
		model.current = typed.result.Root
		model.selected = 0
		model.staleNote = ""
		model.relayout()
		model.status = "Scan complete"
		return model, model.saveCacheCmd()
	case deepenResultMsg:
		model.deepening = false
		model.deepenCancel = nil
		if typed.err != nil {
			if errors.Is(typed.err, context.Canceled) {
				model.status = "Load cancelled"
			} else {
				model.status = fmt.Sprintf("Load failed: %v", typed.err)
			}
			return model, nil
		}
		// The worker built a detached subtree; the swap into the live
		// tree happens here, on the update loop, where View and the
		// save snapshot also run.
		typed.node.AdoptChildren(typed.fresh)
		model.current = typed.node
		model.selected = 0
		model.relayout()
		model.status = "Loaded " + typed.node.Path
		return model, model.saveCacheCmd()
	case scanProgressMsg:
		if !model.scanning && !model.deepening {
			return model, nil
		}
		if typed.progress.ErrMessage != "" {
			model.status = fmt.Sprintf("Scan warning: %s", typed.progress.ErrMessage)
			return model, model.progressCmd()
		}
		if typed.progress.Completed {
			return model, model.progressCmd()
		}
		model.status = fmt.Sprintf("Scanning... %d items (%s)", typed.progress.Files, typed.progress.Path)
		return model, model.progressCmd()
	default:
		return model, nil
	}
}

func (model Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, model.keys.Quit):
		if model.scanCancel != nil {
			model.scanCancel()
		}
		if model.deepenCancel != nil {
			model.deepenCancel()
		}
		return model, tea.Quit
	case key.Matches(msg, model.keys.Help):
		model.showHelp = !model.showHelp
		return model, nil
	case key.Matches(msg, model.keys.Prev):
		if len(model.placed) > 0 {
			model.selected = (model.selected + len(model.placed) - 1) % len(model.placed)
		}
		return model, nil
	case key.Matches(msg, model.keys.Next):
		if len(model.placed) > 0 {
			model.selected = (model.selected + 1) % len(model.placed)
		}
		return model, nil
	case key.Matches(msg, model.keys.Enter):
		node := model.selectedNode()
		if node == nil || !node.IsDir {
			return model, nil
		}
		if !node.FullyLoaded {
			return model.beginDeepen(node)
		}
		if len(node.Children) == 0 {
			model.status = "Empty directory"
			return model, nil
		}
		model.current = node
		model.selected = 0
		model.relayout()
		return model, nil
	case key.Matches(msg, model.keys.Back):
		if model.scanning && model.scanCancel != nil {
			model.scanCancel()
			return model, nil
		}
		if model.deepening && model.deepenCancel != nil {
			model.deepenCancel()
			return model, nil
		}
		if model.current != nil && model.current.Parent != nil {
			model.current = model.current.Parent
			model.selected = 0
			model.relayout()
		}
		return model, nil
	case key.Matches(msg, model.keys.Rescan):
		if model.scanning {
			return model, nil
		}
		return model.beginScan()
	case key.Matches(msg, model.keys.ClearCache):
		model.store.Delete(model.cfg.Path)
		model.staleNote = ""
		model.status = "Cache cleared"
		return model, nil
	default:
		return model, nil
	}
}

func (model *Model) relayout() {
	model.placed = nil
	if model.current == nil {
		return
	}
	bounds := treemap.Rect{
		W: float64(model.width),
		H: float64(model.bodyHeight()),
	}
	model.placed = treemap.Layout(model.current.Children, bounds, model.cfg.MaxChildrenShown)
	if model.selected >= len(model.placed) {
		model.selected = 0
	}
}

func (model Model) selectedNode() *domain.Node {
	if model.selected < 0 || model.selected >= len(model.placed) {
		return nil
	}
	return model.placed[model.selected].Node
}

func (model Model) bodyHeight() int {
	// header + optional stale banner + status + key line
	reserved := 3
	if model.staleNote != "" {
		reserved++
	}
	body := model.height - reserved
	if body < 3 {
		body = 3
	}
	return body
}
