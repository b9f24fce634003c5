package access

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/uninorte/lead-system/internal/core/session"
)

// Outcome is what navigation to a path results in.
type Outcome int

const (
	Render Outcome = iota
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Decision is the router's answer for one navigation event. Path is the
// rendered path for Render and the target for Redirect.
type Decision struct {
	Outcome Outcome
	Path    string
	Page    PageID
}

func render(path string, page PageID) Decision {
	return Decision{Outcome: Render, Path: path, Page: page}
}

func redirect(to string) Decision {
	return Decision{Outcome: Redirect, Path: to}
}

// Router is the role-gated navigation table. It is a convenience for the
// client; the backend re-checks every action on its own.
type Router struct {
	routes map[string]RouteDescriptor
}

// NewRouter validates the table: every non-public route needs at least one role.
func NewRouter(routes []RouteDescriptor) (*Router, error) {
	r := &Router{routes: make(map[string]RouteDescriptor, len(routes))}
	for _, d := range routes {
		if err := d.validate(); err != nil {
			return nil, err
		}
		p := Normalize(d.Path)
		if _, dup := r.routes[p]; dup {
			return nil, fmt.Errorf("%w: duplicate path %s", ErrInvalidRoute, p)
		}
		d.Path = p
		r.routes[p] = d
	}
	return r, nil
}

// MustDefaultRouter builds the router over DefaultRoutes.
func MustDefaultRouter() *Router {
	r, err := NewRouter(DefaultRoutes())
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve decides what navigating to path does for s (nil when signed out).
// Precedence:
//  1. login path: render when signed out, otherwise redirect to root;
//  2. public route: render;
//  3. the session's role is required by the route: render;
//  4. otherwise redirect to login when signed out, to root when the role is wrong.
//
// Unknown paths behave like a route no role may reach.
func (r *Router) Resolve(path string, s *session.Session) Decision {
	path = Normalize(path)

	if path == LoginPath {
		if s == nil {
			return render(LoginPath, PageLogin)
		}
		return redirect(RootPath)
	}

	d, known := r.routes[path]
	if known && d.Public {
		return render(path, d.Page)
	}

	if known && s != nil && d.Allows(s.Role()) {
		return render(path, d.Page)
	}

	if s == nil {
		return redirect(LoginPath)
	}
	return redirect(RootPath)
}

// Lookup returns the descriptor registered for path.
func (r *Router) Lookup(path string) (RouteDescriptor, bool) {
	d, ok := r.routes[Normalize(path)]
	return d, ok
}

// Normalize drops query and fragment, collapses a trailing slash and makes
// the path absolute.
func Normalize(path string) string {
	if u, err := url.Parse(path); err == nil {
		path = u.Path
	}
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = RootPath
		}
	}
	return path
}
