package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"cminus/internal/diag"
	"cminus/internal/project"
	"cminus/internal/source"
)

// Current schema version - increment when CachedResult format changes
const cacheSchemaVersion uint16 = 1

// DiskCache хранит результаты анализа по хешу дерева и опций.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedNote and CachedDiagnostic drop the file ID; it is reassigned on load.
type CachedNote struct {
	Line uint32
	Msg  string
}

type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Line     uint32
	Message  string
	Notes    []CachedNote
}

// CachedResult is what a check of one tree file leaves behind.
type CachedResult struct {
	Schema      uint16
	Path        string
	Diagnostics []CachedDiagnostic
	Dropped     int
	Errors      int
	MainCount   int
	Locations   int
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
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

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	// подкаталог "results", чтобы DropAll не трогал чужое
	return filepath.Join(c.dir, "results", key.String()+".mp")
}

// Put writes payload under key, replacing any previous entry atomically.
func (c *DiskCache) Put(key project.Digest, payload *CachedResult) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	payload.Schema = cacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads the entry for key. A missing entry or one written by another
// schema version is a miss, not an error.
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
		return nil, false, fmt.Errorf("cache entry %s: %w", key, err)
	}
	if out.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return &out, true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим
	results := filepath.Join(c.dir, "results")
	old := results + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(results, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// cacheKey folds everything that changes the outcome of a check.
func cacheKey(file *source.File, opts Options) project.Digest {
	optsKey := fmt.Sprintf("schema=%d prelude=%t max=%d sort=%t",
		cacheSchemaVersion, opts.Prelude, opts.MaxDiagnostics, opts.Sort)
	return project.Combine(project.Digest(file.Hash), project.StringDigest(optsKey))
}

func toCached(res *FileResult) *CachedResult {
	out := &CachedResult{
		Path:      res.Path,
		Dropped:   res.Bag.Dropped(),
		Errors:    res.Errors,
		MainCount: res.MainCount,
		Locations: res.Locations,
	}
	for _, d := range res.Bag.Items() {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Line:     d.Primary.Line,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Line: n.Pos.Line, Msg: n.Msg})
		}
		out.Diagnostics = append(out.Diagnostics, cd)
	}
	return out
}

// fromCached refills bag with the stored diagnostics stamped with file.
func fromCached(cached *CachedResult, file source.FileID, bag *diag.Bag) {
	for _, cd := range cached.Diagnostics {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Pos{File: file, Line: cd.Line},
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Pos: source.Pos{File: file, Line: n.Line}, Msg: n.Msg})
		}
		bag.Add(d)
	}
	// dropped diagnostics were not kept; re-count them as error drops
	for range cached.Dropped {
		bag.Add(diag.NewError(diag.SemaError, source.Pos{File: file}, ""))
	}
}
