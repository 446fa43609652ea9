package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"cqasm/internal/diag"
	"cqasm/internal/project"
	"cqasm/internal/source"
	"cqasm/internal/version"
)

// Current schema version - increment when CachedResult format changes
const cacheSchemaVersion uint16 = 1

// DiskCache stores analysis outcomes keyed by tool version, file name and content.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedDiagnostic is a diagnostic with its span flattened to byte offsets.
type CachedDiagnostic struct {
	Code     uint16
	Severity uint8
	Message  string
	Start    uint32
	End      uint32
}

// CachedResult is the msgpack payload of one analyzed file.
type CachedResult struct {
	Schema      uint16
	Filename    string
	JSON        string
	Diagnostics []CachedDiagnostic
}

// OpenDiskCache opens (and creates) the cache under the user cache directory.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return nil, err
		}
		base = dir
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// CacheKey = H(tool version, filename, source).
func CacheKey(filename, src string) project.Digest {
	return project.Hash([]byte(version.GetVersion()), []byte(filename), []byte(src))
}

func (c *DiskCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "results", fmt.Sprintf("%x.mp", key[:]))
}

// Put serializes and writes a payload; the file is replaced atomically.
func (c *DiskCache) Put(key project.Digest, payload *CachedResult) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if removeErr := os.Remove(f.Name()); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) && err == nil {
			err = removeErr
		}
	}()

	payload.Schema = cacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload; a missing entry or a stale schema is a miss.
func (c *DiskCache) Get(key project.Digest) (*CachedResult, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var out CachedResult
	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return nil, false, err
	}
	if out.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return &out, true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "results"))
}

func toCached(res *AnalysisResult, rendered string) *CachedResult {
	out := &CachedResult{
		Filename:    res.Filename,
		JSON:        rendered,
		Diagnostics: make([]CachedDiagnostic, 0, len(res.Diagnostics)),
	}
	for _, d := range res.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, CachedDiagnostic{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		})
	}
	return out
}

// restore rebuilds diagnostics against a fresh file set holding the same source.
func (c *CachedResult) restore(src string) (*source.FileSet, []diag.Diagnostic) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(c.Filename, []byte(src))
	diags := make([]diag.Diagnostic, 0, len(c.Diagnostics))
	for _, d := range c.Diagnostics {
		diags = append(diags, diag.New(diag.Severity(d.Severity), diag.Code(d.Code), source.Span{File: id, Start: d.Start, End: d.End}, d.Message))
	}
	return fs, diags
}
