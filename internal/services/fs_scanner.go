package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/A-LKT/DiskPeek/internal/domain"
)

const (
	// DefaultMaxDepth is the built-in materialization depth used when the
	// configured override is zero.
	DefaultMaxDepth = 5

	// DeepenIncrement is how many additional levels a drill-down
	// materializes below a partial node.
	DeepenIncrement = 2

	// sizeWalkMaxDepth is a hard safety cap on the size-only traversal,
	// independent of the materialization depth, bounding stack usage on
	// pathological or cyclic structures.
	sizeWalkMaxDepth = 64

	progressEvery = 64
)

// FSScanner walks the local filesystem and builds domain.Node trees. Every
// operation returns a freshly built tree and never writes into nodes the
// caller already holds, so results can be swapped in wherever the caller
// serializes its own reads.
type FSScanner struct {
	mu       sync.RWMutex
	progress chan ScanProgress
	visited  int64
}

func NewFSScanner() *FSScanner {
	return &FSScanner{}
}

// Progress returns the notification channel of the current operation. The
// channel is replaced when a new operation begins and closed when it ends.
func (scanner *FSScanner) Progress() <-chan ScanProgress {
	scanner.mu.RLock()
	defer scanner.mu.RUnlock()
	return scanner.progress
}

func (scanner *FSScanner) setProgress(progress chan ScanProgress) {
	scanner.mu.Lock()
	scanner.progress = progress
	scanner.mu.Unlock()
}

// Scan builds a tree rooted at req.RootPath, materializing req.MaxDepth
// levels. Directories at the depth boundary still carry exact size and count
// totals, computed by a size-only traversal that allocates no nodes for the
// unmaterialized levels. An inaccessible root fails the call; enumeration
// errors below the root are swallowed into partial results. Cancellation
// unwinds without producing a result.
func (scanner *FSScanner) Scan(ctx context.Context, req ScanRequest) (*domain.ScanResult, error) {
	root := cleanPath(req.RootPath)
	excluded := exclusionSet(req.Excluded)

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	progress := make(chan ScanProgress, 64)
	scanner.setProgress(progress)
	atomic.StoreInt64(&scanner.visited, 0)
	defer close(progress)

	rootNode := &domain.Node{
		Name:    baseName(root),
		Path:    root,
		IsDir:   true,
		ModTime: info.ModTime(),
	}

	if req.MaxDepth <= 0 {
		totals, err := measureTree(ctx, root, excluded, 0)
		if err != nil {
			return nil, err
		}
		totals.apply(rootNode)
	} else if err := scanner.scanDir(ctx, rootNode, excluded, 0, req.MaxDepth, progress); err != nil {
		return nil, err
	}

	progressNonBlocking(progress, ScanProgress{Path: root, Files: atomic.LoadInt64(&scanner.visited), Completed: true})
	return domain.NewScanResult(root, rootNode), nil
}

// ScanDeeper re-scans the filesystem under node to a fixed additional depth
// and returns the fresh subtree. The node itself is never written: the
// caller adopts the result (domain.Node.AdoptChildren) wherever it
// serializes reads of its tree, typically the UI update loop. Size in the
// returned subtree is the freshly summed value; adoption discards it,
// because recomputing the node's size would cascade a delta through every
// ancestor. If the filesystem changed in between, the node's size and the
// sum of the new children may drift apart; that is an accepted
// approximation.
func (scanner *FSScanner) ScanDeeper(ctx context.Context, node *domain.Node, excluded []string) (*domain.Node, error) {
	if node == nil || !node.IsDir {
		return nil, fmt.Errorf("deepen target must be a directory")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	progress := make(chan ScanProgress, 64)
	scanner.setProgress(progress)
	atomic.StoreInt64(&scanner.visited, 0)
	defer close(progress)

	fresh := &domain.Node{Name: node.Name, Path: node.Path, IsDir: true}
	if err := scanner.scanDir(ctx, fresh, exclusionSet(excluded), 0, DeepenIncrement, progress); err != nil {
		return nil, err
	}

	progressNonBlocking(progress, ScanProgress{Path: node.Path, Files: atomic.LoadInt64(&scanner.visited), Completed: true})
	return fresh, nil
}

// scanDir enumerates one directory into node. A directory that cannot be
// listed at all becomes a zero-size placeholder (an error for the root); a
// listing that fails midway keeps the entries read before the failure and
// leaves the node partial, so a drill-down retries it. The only error ever
// returned for a non-root directory is cancellation.
func (scanner *FSScanner) scanDir(ctx context.Context, node *domain.Node, excluded map[string]struct{}, depth, maxDepth int, progress chan<- ScanProgress) error {
	entries, readErr := os.ReadDir(node.Path)
	if readErr != nil {
		progressNonBlocking(progress, ScanProgress{Path: node.Path, ErrMessage: readErr.Error()})
		if len(entries) == 0 {
			if depth == 0 {
				return fmt.Errorf("open %s: %w", node.Path, readErr)
			}
			return nil
		}
	}

	if err := scanner.scanEntries(ctx, node, entries, excluded, depth, maxDepth, progress); err != nil {
		return err
	}
	node.FullyLoaded = readErr == nil
	return nil
}

// scanEntries materializes the given listing into node and sums the
// aggregates. Subdirectories above the depth boundary recurse;
// subdirectories at the boundary are measured concurrently without
// materializing their contents.
func (scanner *FSScanner) scanEntries(ctx context.Context, node *domain.Node, entries []os.DirEntry, excluded map[string]struct{}, depth, maxDepth int, progress chan<- ScanProgress) error {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(measureWorkers())

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			group.Wait()
			return err
		}

		name := entry.Name()
		fullPath := filepath.Join(node.Path, name)

		if entry.IsDir() {
			if isExcluded(excluded, name) {
				continue
			}
			child := &domain.Node{Name: name, Path: fullPath, IsDir: true, Parent: node}
			if info, infoErr := entry.Info(); infoErr == nil {
				child.ModTime = info.ModTime()
			}
			node.Children = append(node.Children, child)
			if depth+1 >= maxDepth {
				group.Go(func() error {
					totals, measureErr := measureTree(groupCtx, child.Path, excluded, 0)
					if measureErr != nil {
						return measureErr
					}
					totals.apply(child)
					return nil
				})
			} else if err := scanner.scanDir(ctx, child, excluded, depth+1, maxDepth, progress); err != nil {
				group.Wait()
				return err
			}
		} else {
			if !entry.Type().IsRegular() {
				// Symlinks and other reparse-style entries are
				// skipped so both passes count the same set.
				continue
			}
			info, infoErr := entry.Info()
			if infoErr != nil {
				progressNonBlocking(progress, ScanProgress{Path: fullPath, ErrMessage: infoErr.Error()})
				continue
			}
			node.Children = append(node.Children, &domain.Node{
				Name:        name,
				Path:        fullPath,
				Size:        info.Size(),
				ModTime:     info.ModTime(),
				FileCount:   1,
				FullyLoaded: true,
				Parent:      node,
			})
		}

		if visited := atomic.AddInt64(&scanner.visited, 1); visited%progressEvery == 0 {
			progressNonBlocking(progress, ScanProgress{Path: fullPath, Files: visited})
		}
	}

	if err := group.Wait(); err != nil {
		return err
	}

	var size int64
	files, dirs := 0, 0
	for _, child := range node.Children {
		size += child.Size
		files += child.FileCount
		if child.IsDir {
			dirs += 1 + child.DirCount
		}
	}
	node.Size = size
	node.FileCount = files
	node.DirCount = dirs
	node.SortChildren()
	return nil
}

type subtreeTotals struct {
	size  int64
	files int
	dirs  int
}

func (totals subtreeTotals) apply(node *domain.Node) {
	node.Size = totals.size
	node.FileCount = totals.files
	node.DirCount = totals.dirs
	node.FullyLoaded = false
	node.Children = nil
}

// measureTree computes exact subtree totals without building nodes. Symlinks
// and irregular entries never recurse, so junction cycles cannot loop, and a
// hard depth cap bounds the walk regardless. Enumeration errors contribute
// nothing and do not fail the measurement; the only returned error is
// cancellation.
func measureTree(ctx context.Context, dir string, excluded map[string]struct{}, depth int) (subtreeTotals, error) {
	var totals subtreeTotals
	if depth >= sizeWalkMaxDepth {
		return totals, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return totals, nil
	}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return totals, err
		}
		if entry.IsDir() {
			if isExcluded(excluded, entry.Name()) {
				continue
			}
			sub, subErr := measureTree(ctx, filepath.Join(dir, entry.Name()), excluded, depth+1)
			totals.size += sub.size
			totals.files += sub.files
			totals.dirs += 1 + sub.dirs
			if subErr != nil {
				return totals, subErr
			}
		} else {
			if !entry.Type().IsRegular() {
				continue
			}
			info, infoErr := entry.Info()
			if infoErr != nil {
				continue
			}
			totals.size += info.Size()
			totals.files++
		}
	}
	return totals, nil
}

func measureWorkers() int {
	workers := runtime.NumCPU()
	if workers < 2 {
		workers = 2
	}
	return workers
}
