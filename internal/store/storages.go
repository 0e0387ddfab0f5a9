package store

import (
	"context"
	"fmt"

	"github.com/mkarev/go-note-keeper/internal/config"
	"github.com/mkarev/go-note-keeper/internal/logger"
)

// Storages bundles all repositories behind their interfaces for injection
// into the service layer.
type Storages struct {
	UserRepository     UserRepository
	CategoryRepository CategoryRepository
	NoteRepository     NoteRepository
}

// NewStorages connects to the database selected by cfg, applies the schema
// migrations, and constructs all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var db *DB
	var err error

	switch cfg.DB.Driver {
	case "sqlite3":
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	}
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		CategoryRepository: NewCategoryRepository(db, log),
		NoteRepository:     NewNoteRepository(db, log),
	}, nil
}
