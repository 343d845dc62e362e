// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/AccelByte/extend-gitgame-progression/pkg/profile"
)

const createProfilesTable = `CREATE TABLE IF NOT EXISTS profiles (
	storage_key  TEXT PRIMARY KEY,
	payload_json TEXT NOT NULL,
	saved_at     TEXT NOT NULL
)`

const upsertProfile = `INSERT INTO profiles (storage_key, payload_json, saved_at)
VALUES (?, ?, ?)
ON CONFLICT(storage_key) DO UPDATE SET
	payload_json = excluded.payload_json,
	saved_at = excluded.saved_at`

// SQLiteStore keeps the profile document as one row of a local SQLite file.
type SQLiteStore struct {
	sqlDB *sql.DB
	key   string
}

// OpenSQLite opens (creating if needed) a SQLite store at path.
func OpenSQLite(path, key string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if key == "" {
		key = DefaultKey
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlDB.Exec(createProfilesTable); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create profiles table: %w", err)
	}

	logrus.Infof("opened sqlite profile store at %s", path)
	return &SQLiteStore{sqlDB: sqlDB, key: key}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetProfile retrieves the profile, or a default profile when none is stored.
func (s *SQLiteStore) GetProfile(ctx context.Context) (*profile.PlayerProfile, error) {
	var payload string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT payload_json FROM profiles WHERE storage_key = ?`, s.key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		logrus.Debugf("no profile stored under %s, returning defaults", s.key)
		return profile.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return decodeProfile([]byte(payload))
}

// SaveProfile upserts the whole document in one statement.
func (s *SQLiteStore) SaveProfile(ctx context.Context, p *profile.PlayerProfile) error {
	data, err := encodeProfile(p)
	if err != nil {
		return err
	}

	savedAt := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.sqlDB.ExecContext(ctx, upsertProfile, s.key, string(data), savedAt); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	logrus.Debugf("saved profile to sqlite key %s", s.key)
	return nil
}

// DeleteProfile removes the stored document.
func (s *SQLiteStore) DeleteProfile(ctx context.Context) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM profiles WHERE storage_key = ?`, s.key); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	logrus.Infof("deleted profile %s", s.key)
	return nil
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}
