package cache

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"

	"github.com/A-LKT/DiskPeek/internal/domain"
)

const artifactVersion = 1
const maxArtifactBytes = 100 * 1024 * 1024

type envelope struct {
	Version int                `json:"version"`
	Result  *domain.ScanResult `json:"result"`
}

// Store persists scan results, one gzip-compressed artifact per scanned
// volume. Caching is a performance optimization, never a correctness
// dependency: every failure here degrades to "no cache".
type Store struct {
	dir string
}

// NewStore creates a store writing into dir. The directory is created
// lazily on first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir is the conventional cache location.
func DefaultDir() string {
	return filepath.Join(xdg.CacheHome, "diskpeek")
}

// artifactPath keys the artifact by the identity of the volume holding
// rootPath, not by the path itself, so re-scans of the same drive reuse one
// file.
func (store *Store) artifactPath(rootPath string) string {
	identity := volumeIdentity(rootPath)
	return filepath.Join(store.dir, fmt.Sprintf("%016x.scan.gz", xxhash.Sum64String(identity)))
}

// Save writes the result's full tree. Parent references are not part of the
// serialized form (they would make it cyclic); Load rebuilds them. All
// errors are swallowed. The caller must own the tree for the duration; when
// the tree stays live while the write should happen in the background, use
// Snapshot and SaveSnapshot instead.
func (store *Store) Save(result *domain.ScanResult) {
	data, ok := store.Snapshot(result)
	if !ok {
		return
	}
	store.SaveSnapshot(result.RootPath, data)
}

// Snapshot serializes the result on the calling goroutine. The returned
// bytes are immutable, so the tree may be mutated freely once Snapshot
// returns, and the write can proceed concurrently via SaveSnapshot.
func (store *Store) Snapshot(result *domain.ScanResult) ([]byte, bool) {
	if result == nil || result.Root == nil {
		return nil, false
	}
	data, err := json.Marshal(envelope{Version: artifactVersion, Result: result})
	if err != nil || len(data) > maxArtifactBytes {
		return nil, false
	}
	return data, true
}

// SaveSnapshot compresses and writes bytes produced by Snapshot into the
// artifact for rootPath's volume. All errors are swallowed.
func (store *Store) SaveSnapshot(rootPath string, data []byte) {
	if len(data) == 0 {
		return
	}
	path := store.artifactPath(rootPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	file, err := os.Create(path)
	if err != nil {
		return
	}
	defer file.Close()
	writer := gzip.NewWriter(file)
	if _, err := writer.Write(data); err != nil {
		return
	}
	_ = writer.Close()
}

// Load returns the cached result for rootPath's volume, with every node's
// parent back-reference reconstructed, or ok=false on a missing, corrupt or
// unreadable artifact.
func (store *Store) Load(rootPath string) (*domain.ScanResult, bool) {
	file, err := os.Open(store.artifactPath(rootPath))
	if err != nil {
		return nil, false
	}
	defer file.Close()
	reader, err := gzip.NewReader(file)
	if err != nil {
		return nil, false
	}
	defer reader.Close()
	data, err := io.ReadAll(io.LimitReader(reader, maxArtifactBytes+1))
	if err != nil || len(data) > maxArtifactBytes {
		return nil, false
	}
	var stored envelope
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, false
	}
	if stored.Version != artifactVersion || stored.Result == nil || stored.Result.Root == nil {
		return nil, false
	}
	stored.Result.Root.AttachParents()
	return stored.Result, true
}

// HasCache reports whether an artifact exists for rootPath's volume.
func (store *Store) HasCache(rootPath string) bool {
	_, err := os.Stat(store.artifactPath(rootPath))
	return err == nil
}

// CacheTime returns the artifact's storage-level modification time.
func (store *Store) CacheTime(rootPath string) (time.Time, bool) {
	info, err := os.Stat(store.artifactPath(rootPath))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Delete removes the artifact, best-effort.
func (store *Store) Delete(rootPath string) {
	_ = os.Remove(store.artifactPath(rootPath))
}
