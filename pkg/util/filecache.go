package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMaxCachedFiles bounds the number of concurrently mapped sources.
const DefaultMaxCachedFiles = 512

// mappedFile holds one memory-mapped source file. data is nil when the
// file was loaded via the os.ReadFile fallback (empty files, mmap failure).
type mappedFile struct {
	mapping  mmap.MMap
	fallback []byte
}

func (mf *mappedFile) bytes() []byte {
	if mf.mapping != nil {
		return mf.mapping
	}
	return mf.fallback
}

func (mf *mappedFile) close() {
	if mf.mapping != nil {
		_ = mf.mapping.Unmap()
		mf.mapping = nil
	}
}

// FileCache reads source files through memory maps with LRU eviction, so a
// long-lived watch or serve process does not accumulate mappings for every
// file it ever touched. Safe for concurrent use.
type FileCache struct {
	cache  *lru.Cache[string, *mappedFile]
	mu     sync.Mutex
	logger *slog.Logger

	hits   int
	misses int
}

// NewFileCache creates a cache keeping at most maxFiles mapped files.
func NewFileCache(maxFiles int, logger *slog.Logger) (*FileCache, error) {
	if maxFiles <= 0 {
		maxFiles = DefaultMaxCachedFiles
	}
	if logger == nil {
		logger = slog.Default()
	}

	fc := &FileCache{logger: logger}
	cache, err := lru.NewWithEvict[string, *mappedFile](maxFiles, func(_ string, mf *mappedFile) {
		mf.close()
	})
	if err != nil {
		return nil, fmt.Errorf("create file cache: %w", err)
	}
	fc.cache = cache
	return fc, nil
}

// Read returns a copy of the file's contents. A copy is returned rather
// than the mapped region because callers may rewrite the file in place
// while the mapping is still cached.
func (c *FileCache) Read(path string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mf, ok := c.cache.Get(path); ok {
		c.hits++
		return append([]byte(nil), mf.bytes()...), nil
	}
	c.misses++

	mf, err := c.load(path)
	if err != nil {
		return nil, err
	}
	c.cache.Add(path, mf)
	return append([]byte(nil), mf.bytes()...), nil
}

// Invalidate drops a cached file, unmapping it. Used when the file is
// rewritten or a watcher reports a change.
func (c *FileCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Remove(path)
}

// Len returns the number of currently cached files.
func (c *FileCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

// Stats returns hit/miss counters.
func (c *FileCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Close unmaps all cached files.
func (c *FileCache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Purge()
}

func (c *FileCache) load(path string) (*mappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return &mappedFile{fallback: []byte{}}, nil
	}

	mapping, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		// mmap can fail on special filesystems; plain read still works.
		c.logger.Debug("mmap failed, falling back to read", "file", path, "error", err)
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil, rerr
		}
		return &mappedFile{fallback: data}, nil
	}
	return &mappedFile{mapping: mapping}, nil
}
