package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"

	"github.com/devbush/likewrapped/internal/domain"
	"github.com/devbush/likewrapped/internal/ports"
)

const metaName = "meta.json.zst"

var (
	encoder, _ = zstd.NewWriter(nil)
	decoder, _ = zstd.NewReader(nil)
)

// FileCache keeps one compressed JSON file per query under baseDir
type FileCache struct {
	fs      afero.Fs
	baseDir string
}

// NewFileCache creates a cache on the local filesystem
func NewFileCache(baseDir string) *FileCache {
	return NewFileCacheFs(afero.NewOsFs(), baseDir)
}

// NewFileCacheFs creates a cache on an arbitrary filesystem
func NewFileCacheFs(fs afero.Fs, baseDir string) *FileCache {
	return &FileCache{
		fs:      fs,
		baseDir: baseDir,
	}
}

// entry is the on-disk layout of a cached item
type entry struct {
	Key       string          `json:"key"`
	Snapshot  *ports.Snapshot `json:"snapshot"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

func (c *FileCache) entryDir(key string) string {
	return filepath.Join(c.baseDir, key)
}

func (c *FileCache) metaPath(key string) string {
	return filepath.Join(c.entryDir(key), metaName)
}

func (c *FileCache) Get(ctx context.Context, key string) (*ports.CachedItem, error) {
	compressed, err := afero.ReadFile(c.fs, c.metaPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrCacheMiss
		}
		return nil, err
	}

	data, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, err
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}

	if time.Now().After(e.ExpiresAt) {
		return nil, domain.ErrCacheExpired
	}

	return &ports.CachedItem{
		Snapshot:  e.Snapshot,
		CreatedAt: e.CreatedAt,
		ExpiresAt: e.ExpiresAt,
	}, nil
}

func (c *FileCache) Set(ctx context.Context, key string, item *ports.CachedItem) error {
	if err := c.fs.MkdirAll(c.entryDir(key), 0755); err != nil {
		return err
	}

	data, err := json.Marshal(entry{
		Key:       key,
		Snapshot:  item.Snapshot,
		CreatedAt: item.CreatedAt,
		ExpiresAt: item.ExpiresAt,
	})
	if err != nil {
		return err
	}

	return afero.WriteFile(c.fs, c.metaPath(key), encoder.EncodeAll(data, nil), 0644)
}

func (c *FileCache) Delete(ctx context.Context, key string) error {
	return c.fs.RemoveAll(c.entryDir(key))
}

func (c *FileCache) CleanExpired(ctx context.Context) (int, error) {
	entries, err := afero.ReadDir(c.fs, c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cleaned := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		key := e.Name()
		_, err := c.Get(ctx, key)
		if errors.Is(err, domain.ErrCacheExpired) {
			if err := c.Delete(ctx, key); err == nil {
				cleaned++
			}
		}
	}

	return cleaned, nil
}

func (c *FileCache) Clear(ctx context.Context) error {
	entries, err := afero.ReadDir(c.fs, c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, e := range entries {
		if e.IsDir() {
			_ = c.fs.RemoveAll(filepath.Join(c.baseDir, e.Name()))
		}
	}

	return nil
}

func (c *FileCache) Stats(ctx context.Context) (itemCount int, totalSize int64, err error) {
	entries, err := afero.ReadDir(c.fs, c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, err
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		itemCount++

		dirPath := filepath.Join(c.baseDir, e.Name())
		_ = afero.Walk(c.fs, dirPath, func(path string, info os.FileInfo, err error) error {
			if err == nil && !info.IsDir() {
				totalSize += info.Size()
			}
			return nil
		})
	}

	return itemCount, totalSize, nil
}

var _ ports.CacheStore = (*FileCache)(nil)
