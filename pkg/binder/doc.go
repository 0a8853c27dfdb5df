// Package binder decodes request data into structs for handler.Wrap.
// Form reads url-encoded and multipart bodies, Query reads the URL query and
// Path reads chi route parameters. Fields are matched by the form, query or
// path struct tag.
package binder
