package packages

import (
	"fmt"
	"time"
)

// Package is an indexed project. ID is the package name.
type Package struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	HomePage    string    `json:"home_page"`
	DocsURL     string    `json:"docs_url"`
	PackageURL  string    `json:"package_url"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	License     string    `json:"license"`
}

type Release struct {
	ID        int64     `json:"id"`
	Major     int       `json:"major"`
	Minor     int       `json:"minor"`
	Build     int       `json:"build"`
	CreatedAt time.Time `json:"created_at"`
	Comment   string    `json:"comment"`
	URL       string    `json:"url"`
	Size      int64     `json:"size"`
	PackageID string    `json:"package_id"`
}

// Version formats the release as major.minor.build. A nil release is 0.0.0.
func (r *Release) Version() string {
	if r == nil {
		return "0.0.0"
	}
	return fmt.Sprintf("%d.%d.%d", r.Major, r.Minor, r.Build)
}

type Maintainer struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profile_image_url"`
	PackageID       string `json:"package_id"`
}

// LatestPackage is a home page row: a package with one of its releases.
type LatestPackage struct {
	Name       string    `json:"name"`
	Summary    string    `json:"summary"`
	Version    string    `json:"version"`
	ReleasedAt time.Time `json:"released_at"`
}

type Stats struct {
	Releases int64 `json:"releases"`
	Users    int64 `json:"users"`
	Packages int64 `json:"packages"`
}

// Details is the project page payload. Package is nil when the name is
// unknown.
type Details struct {
	Package     *Package     `json:"package"`
	Release     *Release     `json:"release"`
	Maintainers []Maintainer `json:"maintainers"`
}

func (d Details) Found() bool {
	return d.Package != nil
}

// SearchResult is the search page payload.
type SearchResult struct {
	Query    string    `json:"query"`
	Packages []Package `json:"packages"`
}
