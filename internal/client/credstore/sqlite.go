package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wintakam/wintakam/internal/common"
	"github.com/wintakam/wintakam/internal/cryptox"
	"github.com/wintakam/wintakam/internal/dbx"
)

// SQLiteStore keeps credentials in a local SQLite database. Each value is
// sealed with AES-GCM under a key derived (argon2id) from the application
// secret and a random per-database salt generated on first use.
type SQLiteStore struct {
	db  *sql.DB
	key []byte
}

// InitSchema creates the tables the store needs. Safe to call repeatedly.
func InitSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS credentials (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			nonce BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS store_meta (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("credstore schema: %w", err)
	}
	return nil
}

// NewSQLiteStore opens a store over db, deriving the sealing key from secret
// and the database's salt. The schema must already exist (see InitSchema).
func NewSQLiteStore(ctx context.Context, db *sql.DB, secret []byte) (*SQLiteStore, error) {
	salt, err := loadOrCreateSalt(ctx, db)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, key: cryptox.DeriveKey(secret, salt)}, nil
}

func loadOrCreateSalt(ctx context.Context, db *sql.DB) ([]byte, error) {
	var salt []byte
	err := db.QueryRowContext(ctx, `SELECT value FROM store_meta WHERE key = 'salt'`).Scan(&salt)
	if err == nil {
		return salt, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("credstore salt: %w", err)
	}

	salt = common.GenerateRandByteArray(16)
	if _, err := db.ExecContext(ctx, `INSERT INTO store_meta (key, value) VALUES ('salt', ?)`, salt); err != nil {
		return nil, fmt.Errorf("credstore salt: %w", err)
	}
	return salt, nil
}

func (s *SQLiteStore) Put(ctx context.Context, key, value string) error {
	ciphertext, nonce, err := cryptox.Encrypt([]byte(value), s.key)
	if err != nil {
		return fmt.Errorf("credstore seal: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO credentials (key, value, nonce) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, nonce = excluded.nonce
		`, key, ciphertext, nonce)
		if err != nil {
			return fmt.Errorf("credstore put[%s]: %w", key, err)
		}
		return nil
	})
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var ciphertext, nonce []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value, nonce FROM credentials WHERE key = ?`, key).Scan(&ciphertext, &nonce)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("credstore get[%s]: %w", key, err)
	}

	plaintext, err := cryptox.Decrypt(ciphertext, nonce, s.key)
	if err != nil {
		return "", fmt.Errorf("credstore open[%s]: %w", key, err)
	}
	return string(plaintext), nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, key); err != nil {
		return fmt.Errorf("credstore delete[%s]: %w", key, err)
	}
	return nil
}
