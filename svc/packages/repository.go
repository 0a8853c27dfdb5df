package packages

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/pkgindex/pkg/pg"
)

// Repository reads packages from the primary store. Missing rows are
// reported as nil values, not errors.
type Repository interface {
	Latest(ctx context.Context, limit int) ([]LatestPackage, error)
	Stats(ctx context.Context) (Stats, error)
	GetPackage(ctx context.Context, name string) (*Package, error)
	LatestRelease(ctx context.Context, name string) (*Release, error)
	Maintainers(ctx context.Context, name string) ([]Maintainer, error)
	SearchPrefix(ctx context.Context, prefix string, limit int) ([]Package, error)
	ListAfter(ctx context.Context, after string, limit int) ([]Package, error)
}

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGRepository struct {
	db DB
}

func NewPGRepository(db DB) *PGRepository {
	return &PGRepository{db: db}
}

const packageColumns = `p.id, p.created_at, p.updated_at, p.summary, p.description, p.home_page,
	p.docs_url, p.package_url, p.author_name, p.author_email, p.license`

func scanPackage(row pgx.Row) (Package, error) {
	var p Package
	err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.Summary, &p.Description, &p.HomePage,
		&p.DocsURL, &p.PackageURL, &p.AuthorName, &p.AuthorEmail, &p.License)
	return p, err
}

func (r *PGRepository) Latest(ctx context.Context, limit int) ([]LatestPackage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.summary, rel.major, rel.minor, rel.build, rel.created_at
		FROM releases rel
		JOIN packages p ON p.id = rel.package_id
		ORDER BY rel.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query latest packages: %w", err)
	}
	defer rows.Close()

	var out []LatestPackage
	for rows.Next() {
		var (
			lp  LatestPackage
			rel Release
		)
		if err := rows.Scan(&lp.Name, &lp.Summary, &rel.Major, &rel.Minor, &rel.Build, &lp.ReleasedAt); err != nil {
			return nil, fmt.Errorf("scan latest package: %w", err)
		}
		lp.Version = rel.Version()
		out = append(out, lp)
	}
	return out, rows.Err()
}

func (r *PGRepository) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM releases),
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM packages)`).Scan(&s.Releases, &s.Users, &s.Packages)
	if err != nil {
		return Stats{}, fmt.Errorf("query stats: %w", err)
	}
	return s, nil
}

func (r *PGRepository) GetPackage(ctx context.Context, name string) (*Package, error) {
	p, err := scanPackage(r.db.QueryRow(ctx, `SELECT `+packageColumns+` FROM packages p WHERE p.id = $1`, name))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query package: %w", err)
	}
	return &p, nil
}

func (r *PGRepository) LatestRelease(ctx context.Context, name string) (*Release, error) {
	var rel Release
	err := r.db.QueryRow(ctx, `
		SELECT id, major, minor, build, created_at, comment, url, size, package_id
		FROM releases
		WHERE package_id = $1
		ORDER BY major DESC, minor DESC, build DESC, created_at DESC
		LIMIT 1`, name).Scan(
		&rel.ID, &rel.Major, &rel.Minor, &rel.Build, &rel.CreatedAt, &rel.Comment, &rel.URL, &rel.Size, &rel.PackageID,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest release: %w", err)
	}
	return &rel, nil
}

func (r *PGRepository) Maintainers(ctx context.Context, name string) ([]Maintainer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, profile_image_url, package_id
		FROM maintainers
		WHERE package_id = $1
		ORDER BY name`, name)
	if err != nil {
		return nil, fmt.Errorf("query maintainers: %w", err)
	}
	defer rows.Close()

	var out []Maintainer
	for rows.Next() {
		var m Maintainer
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.ProfileImageURL, &m.PackageID); err != nil {
			return nil, fmt.Errorf("scan maintainer: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SearchPrefix matches package names starting with prefix, ignoring case.
func (r *PGRepository) SearchPrefix(ctx context.Context, prefix string, limit int) ([]Package, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+packageColumns+`
		FROM packages p
		WHERE p.id ILIKE $1 ESCAPE '\'
		ORDER BY p.id
		LIMIT $2`, EscapeLike(prefix)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search packages: %w", err)
	}
	return collectPackages(rows)
}

func collectPackages(rows pgx.Rows) ([]Package, error) {
	defer rows.Close()

	var out []Package
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListAfter pages through packages ordered by name, starting after the
// given name.
func (r *PGRepository) ListAfter(ctx context.Context, after string, limit int) ([]Package, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+packageColumns+`
		FROM packages p
		WHERE p.id > $1
		ORDER BY p.id
		LIMIT $2`, after, limit)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	return collectPackages(rows)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so s matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var _ Repository = (*PGRepository)(nil)
