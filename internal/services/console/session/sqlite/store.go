// Package sqlite provides the persistent session store used by the
// command-line client.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	platformerrors "github.com/louisbranch/kafkaview/internal/platform/errors"
	sqlitemigrate "github.com/louisbranch/kafkaview/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/kafkaview/internal/services/console/session"
	"github.com/louisbranch/kafkaview/internal/services/console/session/sqlite/migrations"
	_ "modernc.org/sqlite"
)

var (
	_ session.Store      = (*Store)(nil)
	_ session.CookieSink = (*Store)(nil)
)

// Store persists the session flag and backend cookies in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite session store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Get returns the stored value for key. Read failures count as absent.
func (s *Store) Get(key string) (string, bool) {
	if s == nil || s.sqlDB == nil {
		return "", false
	}
	var value string
	err := s.sqlDB.QueryRowContext(context.Background(),
		`SELECT value FROM session_values WHERE key = ?`, key,
	).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

// Set upserts value under key.
func (s *Store) Set(key, value string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("key is required")
	}
	_, err := s.sqlDB.ExecContext(context.Background(),
		`INSERT INTO session_values (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, toMillis(s.now()),
	)
	if err != nil {
		return platformerrors.Wrap(platformerrors.CodeSessionStore, "set session value", err)
	}
	return nil
}

// Remove deletes key. When the login flag goes, backend cookies go with it.
func (s *Store) Remove(key string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	ctx := context.Background()
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM session_values WHERE key = ?`, key); err != nil {
		return platformerrors.Wrap(platformerrors.CodeSessionStore, "remove session value", err)
	}
	if key == session.LoggedInKey {
		if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM backend_cookies`); err != nil {
			return platformerrors.Wrap(platformerrors.CodeSessionStore, "clear backend cookies", err)
		}
	}
	return nil
}

// LoadCookies returns persisted, unexpired backend cookies.
func (s *Store) LoadCookies(ctx context.Context) ([]*http.Cookie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT name, value, path, domain, expires_at, http_only, secure
		 FROM backend_cookies
		 WHERE expires_at = 0 OR expires_at > ?
		 ORDER BY name`,
		toMillis(s.now()),
	)
	if err != nil {
		return nil, fmt.Errorf("query backend cookies: %w", err)
	}
	defer rows.Close()

	var cookies []*http.Cookie
	for rows.Next() {
		var (
			cookie    http.Cookie
			expiresAt int64
			httpOnly  bool
			secure    bool
		)
		if err := rows.Scan(&cookie.Name, &cookie.Value, &cookie.Path, &cookie.Domain, &expiresAt, &httpOnly, &secure); err != nil {
			return nil, fmt.Errorf("scan backend cookie: %w", err)
		}
		if expiresAt > 0 {
			cookie.Expires = fromMillis(expiresAt)
		}
		cookie.HttpOnly = httpOnly
		cookie.Secure = secure
		cookies = append(cookies, &cookie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate backend cookies: %w", err)
	}
	return cookies, nil
}

// SaveCookies upserts cookies; expired or deleted cookies are removed.
func (s *Store) SaveCookies(ctx context.Context, cookies []*http.Cookie) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cookie save: %w", err)
	}
	now := s.now()
	for _, cookie := range cookies {
		if cookie == nil || strings.TrimSpace(cookie.Name) == "" {
			continue
		}
		if cookie.MaxAge < 0 || (!cookie.Expires.IsZero() && !cookie.Expires.After(now)) {
			if _, err := tx.ExecContext(ctx, `DELETE FROM backend_cookies WHERE name = ?`, cookie.Name); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("delete backend cookie %s: %w", cookie.Name, err)
			}
			continue
		}
		var expiresAt int64
		switch {
		case cookie.MaxAge > 0:
			expiresAt = toMillis(now.Add(time.Duration(cookie.MaxAge) * time.Second))
		case !cookie.Expires.IsZero():
			expiresAt = toMillis(cookie.Expires)
		}
		cookiePath := cookie.Path
		if cookiePath == "" {
			cookiePath = "/"
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO backend_cookies (name, value, path, domain, expires_at, http_only, secure, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(name) DO UPDATE SET
			   value = excluded.value,
			   path = excluded.path,
			   domain = excluded.domain,
			   expires_at = excluded.expires_at,
			   http_only = excluded.http_only,
			   secure = excluded.secure,
			   updated_at = excluded.updated_at`,
			cookie.Name, cookie.Value, cookiePath, cookie.Domain, expiresAt, cookie.HttpOnly, cookie.Secure, toMillis(now),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("save backend cookie %s: %w", cookie.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cookie save: %w", err)
	}
	return nil
}
