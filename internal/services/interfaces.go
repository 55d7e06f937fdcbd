package services

import (
	"context"

	"github.com/A-LKT/DiskPeek/internal/domain"
)

type Scanner interface {
	Scan(ctx context.Context, req ScanRequest) (*domain.ScanResult, error)
	ScanDeeper(ctx context.Context, node *domain.Node, excluded []string) (*domain.Node, error)
}

type ProgressProvider interface {
	Progress() <-chan ScanProgress
}
