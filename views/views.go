package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/pkgindex/handler"
	"github.com/dmitrymomot/pkgindex/svc/account"
	"github.com/dmitrymomot/pkgindex/svc/packages"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = mustParsePages(templateFS)

// Page carries layout data shared by every page.
type Page struct {
	AppName       string
	Title         string
	Authenticated bool
}

// Form carries submitted values and errors back into a form.
type Form struct {
	Values  map[string]string
	Errors  map[string][]string
	Message string
}

type HomeData struct {
	Stats  packages.Stats
	Latest []packages.LatestPackage
}

type layoutData struct {
	Page Page
	Data any
}

func mustParsePages(fsys fs.FS) map[string]*template.Template {
	layout := template.Must(template.ParseFS(fsys, "templates/layout.html"))

	names := []string{"home", "about", "project", "search", "register", "login", "account", "not_found", "error"}
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t := template.Must(layout.Clone())
		out[name] = template.Must(t.ParseFS(fsys, "templates/"+name+".html"))
	}
	return out
}

func page(name string, p Page, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return execute(w, name, "layout", layoutData{Page: p, Data: data})
	})
}

func fragment(name, block string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return execute(w, name, block, data)
	})
}

func execute(w io.Writer, name, block string, data any) error {
	t, ok := pages[name]
	if !ok {
		return fmt.Errorf("views: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, block, data)
}

func Home(p Page, data HomeData) templ.Component {
	return page("home", p, data)
}

func About(p Page) templ.Component {
	p.Title = "About"
	return page("about", p, nil)
}

func Project(p Page, d packages.Details) templ.Component {
	if d.Package != nil {
		p.Title = d.Package.ID
	}
	return page("project", p, d)
}

func Search(p Page, r packages.SearchResult) templ.Component {
	p.Title = "Search"
	return page("search", p, r)
}

// SearchResults renders the #search-results element alone.
func SearchResults(r packages.SearchResult) templ.Component {
	return fragment("search", "search_results", r)
}

func Register(p Page, f Form) templ.Component {
	p.Title = "Register"
	return page("register", p, f)
}

func Login(p Page, f Form) templ.Component {
	p.Title = "Log in"
	return page("login", p, f)
}

func Account(p Page, u *account.User) templ.Component {
	p.Title = u.Name
	return page("account", p, u)
}

func NotFound(p Page) templ.Component {
	p.Title = "Not found"
	return page("not_found", p, nil)
}

// ErrorPage renders the full error page.
func ErrorPage(p Page, params handler.ErrorPageParams) templ.Component {
	p.Title = "Error"
	return page("error", p, params)
}

// ErrorContent renders the #main element of the error page alone.
func ErrorContent(params handler.ErrorPageParams) templ.Component {
	return fragment("error", "content", layoutData{Data: params})
}
