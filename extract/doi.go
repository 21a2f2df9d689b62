package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"refx/config"
	"refx/misc"
)

const (
	doiLookupAttempts = 3
	doiLookupDelay    = 500 * time.Millisecond
	doiNegative       = "-" // cached "no DOI found" sentinel
)

// DOIEnricher resolves missing DOIs through an external bibliographic API
// with a persistent cache. Lookups are best-effort: every failure leaves the
// field empty and the pipeline moves on.
type DOIEnricher struct {
	pool     *sqlitex.Pool
	endpoint string
	client   *http.Client
	ttl      time.Duration
	log      *zap.Logger
}

// NewDOIEnricher opens (creating as needed) the cache database and returns
// a ready enricher.
func NewDOIEnricher(cfg config.DOIConfig, log *zap.Logger) (*DOIEnricher, error) {
	path := cfg.CachePath
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("unable to locate user cache directory: %w", err)
		}
		path = filepath.Join(dir, misc.GetAppName(), "doi_cache.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("unable to create cache directory: %w", err)
	}

	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{PoolSize: 2})
	if err != nil {
		return nil, fmt.Errorf("unable to open doi cache %q: %w", path, err)
	}

	conn, err := pool.Take(context.Background())
	if err != nil {
		pool.Close()
		return nil, err
	}
	err = sqlitex.ExecuteTransient(conn, `CREATE TABLE IF NOT EXISTS doi_cache (
		key INTEGER PRIMARY KEY,
		doi TEXT NOT NULL,
		stamp INTEGER NOT NULL
	)`, nil)
	pool.Put(conn)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to initialize doi cache: %w", err)
	}

	return &DOIEnricher{
		pool:     pool,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		client:   &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		ttl:      time.Duration(cfg.TTLDays) * 24 * time.Hour,
		log:      log,
	}, nil
}

func (e *DOIEnricher) Close() error {
	return e.pool.Close()
}

// Lookup returns the DOI for a raw reference, consulting the cache first.
// An empty result means no DOI could be found; a miss is cached only when the
// query itself succeeded.
func (e *DOIEnricher) Lookup(ctx context.Context, rawRef string) string {
	key := cacheKey(rawRef)

	if doi, ok := e.cached(ctx, key); ok {
		if doi == doiNegative {
			return ""
		}
		return doi
	}

	doi, err := e.query(ctx, rawRef)
	if err != nil {
		e.log.Debug("doi lookup failed", zap.Error(err))
		return ""
	}
	stored := doi
	if stored == "" {
		stored = doiNegative
	}
	e.store(ctx, key, stored)
	return doi
}

// cacheKey hashes the canonicalized raw reference: case and runs of
// whitespace must not produce distinct entries.
func cacheKey(rawRef string) int64 {
	canon := strings.ToLower(strings.Join(strings.Fields(rawRef), " "))
	h := fnv.New64a()
	h.Write([]byte(canon))
	return int64(h.Sum64())
}

func (e *DOIEnricher) cached(ctx context.Context, key int64) (string, bool) {
	conn, err := e.pool.Take(ctx)
	if err != nil {
		return "", false
	}
	defer e.pool.Put(conn)

	var doi string
	found := false
	err = sqlitex.Execute(conn, `SELECT doi, stamp FROM doi_cache WHERE key = ?`, &sqlitex.ExecOptions{
		Args: []any{key},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			stamp := time.Unix(stmt.ColumnInt64(1), 0)
			if e.ttl > 0 && time.Since(stamp) > e.ttl {
				return nil
			}
			doi = stmt.ColumnText(0)
			found = true
			return nil
		},
	})
	if err != nil {
		return "", false
	}
	return doi, found
}

func (e *DOIEnricher) store(ctx context.Context, key int64, doi string) {
	conn, err := e.pool.Take(ctx)
	if err != nil {
		return
	}
	defer e.pool.Put(conn)

	err = sqlitex.Execute(conn, `INSERT OR REPLACE INTO doi_cache (key, doi, stamp) VALUES (?, ?, ?)`,
		&sqlitex.ExecOptions{Args: []any{key, doi, time.Now().Unix()}})
	if err != nil {
		e.log.Debug("doi cache write failed", zap.Error(err))
	}
}

// query asks the bibliographic API for the best match of the raw string.
func (e *DOIEnricher) query(ctx context.Context, rawRef string) (string, error) {
	u := e.endpoint + "/works?rows=1&query.bibliographic=" + url.QueryEscape(rawRef)

	var doi string
	err := retry.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return retry.Unrecoverable(err)
		}
		resp, err := e.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("unexpected status %s", resp.Status)
		}

		var payload struct {
			Message struct {
				Items []struct {
					DOI string `json:"DOI"`
				} `json:"items"`
			} `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return err
		}
		if len(payload.Message.Items) > 0 {
			doi = payload.Message.Items[0].DOI
		}
		return nil
	},
		retry.Attempts(doiLookupAttempts),
		retry.Delay(doiLookupDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	return doi, err
}
