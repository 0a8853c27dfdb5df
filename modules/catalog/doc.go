// Package catalog serves the public package pages: home, about, project
// details and search. Project and search payloads go through read-through
// caches keyed by package name and query; identity is attached after the
// cache so cached payloads never carry it.
package catalog
