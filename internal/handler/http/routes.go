package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// routes behind the access gate
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		// the static /categories subtree must be declared alongside the
		// /{id} wildcard; chi matches static segments first
		r.Route("/api/notes", func(r chi.Router) {
			r.Route("/categories", func(r chi.Router) {
				r.Post("/", h.createCategory)
				r.Get("/", h.listCategories)
				r.Get("/name/{name}", h.getCategoryByName)
				r.Get("/{id}", h.getCategory)
				r.Put("/{id}", h.updateCategory)
				r.Delete("/{id}", h.deleteCategory)
			})

			r.Post("/", h.createNote)
			r.Get("/", h.listNotes)
			r.Get("/title", h.getNoteByTitle)
			r.Get("/{id}", h.getNote)
			r.Put("/{id}", h.updateNote)
			r.Delete("/{id}", h.deleteNote)
		})
	})

	return router
}
