// Package views renders the site's pages. Each page is an html/template
// file embedded in the binary and exposed as a templ.Component so handlers
// can return it through handler.Templ.
package views
