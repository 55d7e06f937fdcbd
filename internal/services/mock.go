package services

import (
	"context"
	"time"

	"github.com/A-LKT/DiskPeek/internal/domain"
)

// MockScanner returns a small fixed tree and is used by UI tests.
type MockScanner struct {
	Delay time.Duration
}

func NewMockScanner() *MockScanner {
	return &MockScanner{}
}

func (scanner *MockScanner) Scan(ctx context.Context, req ScanRequest) (*domain.ScanResult, error) {
	if scanner.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(scanner.Delay):
		}
	}

	root := &domain.Node{
		Name:        baseName(req.RootPath),
		Path:        req.RootPath,
		IsDir:       true,
		FullyLoaded: true,
	}
	big := &domain.Node{Name: "big.bin", Path: req.RootPath + "/big.bin", Size: 300, FileCount: 1, FullyLoaded: true, Parent: root}
	nested := &domain.Node{Name: "nested", Path: req.RootPath + "/nested", IsDir: true, Size: 100, FileCount: 2, Parent: root}
	root.Children = []*domain.Node{big, nested}
	root.Size = big.Size + nested.Size
	root.FileCount = 3
	root.DirCount = 1
	return domain.NewScanResult(req.RootPath, root), nil
}

func (scanner *MockScanner) ScanDeeper(ctx context.Context, node *domain.Node, excluded []string) (*domain.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	half := node.Size / 2
	fresh := &domain.Node{Name: node.Name, Path: node.Path, IsDir: true, Size: node.Size, FileCount: 2, FullyLoaded: true}
	left := &domain.Node{Name: "a", Path: node.Path + "/a", Size: half, FileCount: 1, FullyLoaded: true, Parent: fresh}
	right := &domain.Node{Name: "b", Path: node.Path + "/b", Size: node.Size - half, FileCount: 1, FullyLoaded: true, Parent: fresh}
	fresh.Children = []*domain.Node{left, right}
	fresh.SortChildren()
	return fresh, nil
}
