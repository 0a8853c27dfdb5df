// Package opensearch connects to the optional OpenSearch cluster that backs
// package search. See svc/packages for the index itself.
package opensearch
