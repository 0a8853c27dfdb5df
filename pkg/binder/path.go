package binder

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Path binds chi URL parameters into struct fields tagged `path:"name"`.
func Path() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "path", func(name string) []string {
			if value := chi.URLParam(r, name); value != "" {
				return []string{value}
			}
			return nil
		}, ErrInvalidPath)
	}
}
