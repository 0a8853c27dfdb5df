package binder

import "net/http"

// Query binds URL query parameters into struct fields tagged `query:"name"`.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		q := r.URL.Query()
		return bindToStruct(v, "query", func(name string) []string {
			return q[name]
		}, ErrInvalidQuery)
	}
}
