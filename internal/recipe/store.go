package recipe

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Analysis is a stored image analysis.
type Analysis struct {
	ImageHash string           `json:"image_hash" db:"image_hash"`
	Language  string           `json:"language" db:"language"`
	Nutrition *NutritionRecord `json:"nutrition"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// ImageHash returns the hex encoded SHA256 of the image data.
func ImageHash(imageData []byte) string {
	hash := sha256.Sum256(imageData)
	return hex.EncodeToString(hash[:])
}

const analysisSchema = `
CREATE TABLE IF NOT EXISTS nutrition_analyses (
	image_hash TEXT PRIMARY KEY,
	language TEXT NOT NULL,
	nutrition JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// PostgresStore keeps analyses in PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to dataSourceName and makes sure the schema exists.
func NewPostgresStore(dataSourceName string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewPostgresStoreFromDB(db)
}

// NewPostgresStoreFromDB wraps an open connection and creates the schema.
func NewPostgresStoreFromDB(db *sqlx.DB) (*PostgresStore, error) {
	if _, err := db.Exec(analysisSchema); err != nil {
		return nil, fmt.Errorf("failed to create nutrition_analyses table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// DB exposes the connection pool so other stores can share it.
func (s *PostgresStore) DB() *sqlx.DB {
	return s.db
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// SaveAnalysis inserts or replaces the analysis for a.ImageHash.
func (s *PostgresStore) SaveAnalysis(ctx context.Context, a *Analysis) error {
	nutritionJSON, err := json.Marshal(a.Nutrition)
	if err != nil {
		return fmt.Errorf("failed to marshal nutrition: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO nutrition_analyses (image_hash, language, nutrition) VALUES ($1, $2, $3) ON CONFLICT (image_hash) DO UPDATE SET language = $2, nutrition = $3, created_at = NOW()",
		a.ImageHash,
		a.Language,
		nutritionJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// GetAnalysis returns the analysis for imageHash, or nil when none is stored.
func (s *PostgresStore) GetAnalysis(ctx context.Context, imageHash string) (*Analysis, error) {
	var a Analysis
	var nutritionJSON []byte

	err := s.db.QueryRowxContext(ctx,
		"SELECT image_hash, language, nutrition, created_at FROM nutrition_analyses WHERE image_hash = $1",
		imageHash,
	).Scan(&a.ImageHash, &a.Language, &nutritionJSON, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis by hash: %w", err)
	}

	if err := json.Unmarshal(nutritionJSON, &a.Nutrition); err != nil {
		return nil, fmt.Errorf("failed to unmarshal nutrition: %w", err)
	}
	return &a, nil
}
