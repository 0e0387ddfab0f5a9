package service

import (
	"github.com/mkarev/go-note-keeper/internal/config"
	"github.com/mkarev/go-note-keeper/internal/logger"
	"github.com/mkarev/go-note-keeper/internal/store"
)

type Services struct {
	AuthService     AuthService
	CategoryService CategoryService
	NoteService     NoteService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, cfg.App, logger),
		CategoryService: NewCategoryService(storages.CategoryRepository, logger),
		NoteService:     NewNoteService(storages.NoteRepository, storages.CategoryRepository, logger),
	}
}
