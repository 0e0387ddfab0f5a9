package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mkarev/go-note-keeper/internal/config"
	"github.com/mkarev/go-note-keeper/internal/logger"
)

// NewConnectPostgres opens and pings a PostgreSQL connection described by
// cfg and returns a [*DB] configured with dollar placeholders and the
// PostgreSQL error classifier.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occurred during database connection")
		return nil, fmt.Errorf("error occurred during database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return &DB{
		DB:         conn,
		dialect:    "pgx",
		builder:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		classifier: NewPostgresErrorClassifier(),
		logger:     log,
	}, nil
}
