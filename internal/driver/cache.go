package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"texconv/internal/diag"
	"texconv/internal/source"
)

// Current schema version - increment when CachedResult format changes
const diskCacheSchemaVersion uint16 = 2

// DiskCache хранит результаты конвертаций на диске, ключ - SHA-256 от
// направления, настроек и входа. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedDiagnostic is a diagnostic without its file reference.
type CachedDiagnostic struct {
	Code     uint16
	Severity uint8
	Start    uint32
	End      uint32
	Message  string
	Notes    []CachedNote
	Fixes    []CachedFix
}

type CachedNote struct {
	Start, End uint32
	Msg        string
}

type CachedEdit struct {
	Start, End uint32
	NewText    string
}

type CachedFix struct {
	Title string
	Edits []CachedEdit
}

// CachedResult is what a DiskCache stores per input.
type CachedResult struct {
	// Schema version for safe invalidation when format changes
	Schema      uint16
	Output      string
	Diagnostics []CachedDiagnostic
}

// CacheKey is the SHA-256 digest identifying one conversion.
type CacheKey [32]byte

// KeyFor computes the cache key of a request.
func KeyFor(req Request) CacheKey {
	h := sha256.New()
	_, _ = h.Write([]byte{byte(req.Direction)})
	_, _ = h.Write([]byte(req.Config.fingerprint()))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(req.Input))
	var out CacheKey
	copy(out[:], h.Sum(nil))
	return out
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
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

// OpenDiskCacheAt opens a cache rooted at dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key CacheKey) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первому байту, чтобы не держать всё в одной папке
	return filepath.Join(c.dir, "results", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key CacheKey, payload *CachedResult) error {
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
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // после Rename файла уже нет

	payload.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache. Entries written
// with another schema are reported as missing.
func (c *DiskCache) Get(key CacheKey, out *CachedResult) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// toCached drops tokens and file ids; notes and fixes are kept.
func toCached(res *Result) *CachedResult {
	out := &CachedResult{Output: res.Output}
	for _, d := range res.Bag.Items() {
		cd := CachedDiagnostic{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		for _, f := range d.Fixes {
			cf := CachedFix{Title: f.Title}
			for _, e := range f.Edits {
				cf.Edits = append(cf.Edits, CachedEdit{Start: e.Span.Start, End: e.Span.End, NewText: e.NewText})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		out.Diagnostics = append(out.Diagnostics, cd)
	}
	return out
}

// fromCached rebuilds a Result for req; spans point into a fresh FileSet
// holding the request input. Tokens are not cached.
func fromCached(req Request, c *CachedResult) *Result {
	input := req.Input
	if req.Config.Normalize == NormalizeNFC {
		// спаны считались по нормализованному входу
		input = normalizeNFC(input)
	}
	fs := source.NewFileSet()
	file := fs.AddString(req.displayName(), input)
	bag := diag.NewBag(req.Config.MaxDiagnostics)
	span := func(start, end uint32) source.Span {
		return source.Span{File: file.ID, Start: start, End: end}
	}
	for _, d := range c.Diagnostics {
		rd := diag.New(diag.Severity(d.Severity), diag.Code(d.Code), span(d.Start, d.End), d.Message)
		for _, n := range d.Notes {
			rd = rd.WithNote(span(n.Start, n.End), n.Msg)
		}
		for _, f := range d.Fixes {
			fix := diag.Fix{Title: f.Title}
			for _, e := range f.Edits {
				fix.Edits = append(fix.Edits, diag.FixEdit{Span: span(e.Start, e.End), NewText: e.NewText})
			}
			rd = rd.WithFix(fix)
		}
		bag.Add(rd)
	}
	return &Result{
		Output:  c.Output,
		Bag:     bag,
		FileSet: fs,
		File:    file,
		Cached:  true,
	}
}
