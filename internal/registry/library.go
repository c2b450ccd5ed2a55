package registry

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"loramgr/internal/common/fsutil"
	"loramgr/pkg/types"
)

const (
	scanKey           = "scan"
	defaultScanTTL    = 30 * time.Second
	cleanupMultiplier = 2
)

// Library serves pool requests from a scanned directory. Scans are cached
// for the configured TTL.
type Library struct {
	root    string
	scanner *Scanner
	cache   *cache.Cache
	log     zerolog.Logger
}

// NewLibrary returns a library rooted at root. A non-positive ttl uses the
// default of 30s.
func NewLibrary(root string, ttl time.Duration, log zerolog.Logger) *Library {
	if ttl <= 0 {
		ttl = defaultScanTTL
	}
	return &Library{
		root:    root,
		scanner: NewScanner().WithLogger(log),
		cache:   cache.New(ttl, cleanupMultiplier*ttl),
		log:     log,
	}
}

// Root returns the scanned directory.
func (l *Library) Root() string { return l.root }

// Ready reports whether the library root is an existing directory.
func (l *Library) Ready() bool {
	p, err := fsutil.ExpandHome(l.root)
	return err == nil && fsutil.IsDir(p)
}

// Loras returns every lora in the library.
func (l *Library) Loras() ([]types.Lora, error) {
	if x, found := l.cache.Get(scanKey); found {
		return x.([]types.Lora), nil
	}
	start := time.Now()
	loras, err := l.scanner.Scan(l.root)
	if err != nil {
		return nil, err
	}
	l.log.Debug().Str("root", l.root).Int("count", len(loras)).Dur("dur", time.Since(start)).Msg("library scanned")
	l.cache.Set(scanKey, loras, cache.DefaultExpiration)
	return loras, nil
}

// Invalidate drops the cached scan.
func (l *Library) Invalidate() { l.cache.Delete(scanKey) }

// Resolve filters the library by req.
func (l *Library) Resolve(req types.PoolRequest) (types.PoolResponse, error) {
	if req.SortBy == "" {
		req.SortBy = types.SortByFilename
	}
	if !req.SortBy.Valid() {
		return types.PoolResponse{}, invalidRequestError{msg: "unknown sort_by " + string(req.SortBy)}
	}
	loras, err := l.Loras()
	if err != nil {
		return types.PoolResponse{}, err
	}
	items := Filter(loras, req.PoolConfig, req.SortBy)
	return types.PoolResponse{Items: items, TotalCount: len(items)}, nil
}

// FetchPool resolves in-process, so schedulers can run without the HTTP
// server. Errors yield the empty pool.
func (l *Library) FetchPool(_ context.Context, req types.PoolRequest) types.PoolResponse {
	resp, err := l.Resolve(req)
	if err != nil {
		l.log.Warn().Err(err).Msg("resolve pool failed")
		return types.EmptyPool()
	}
	return resp
}
