package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/uninorte/lead-system/internal/core/access"
	"github.com/uninorte/lead-system/internal/core/session"
)

// ErrLoginFailed is returned when the backend rejects a login. The held
// session is left as it was.
var ErrLoginFailed = errors.New("login failed")

// App is the client process: session holder, router and pages.
type App struct {
	holder *session.Holder
	router *access.Router
	api    *API
	out    io.Writer
	log    zerolog.Logger
}

func NewApp(holder *session.Holder, router *access.Router, api *API, out io.Writer, log zerolog.Logger) *App {
	return &App{holder: holder, router: router, api: api, out: out, log: log}
}

// Boot restores the persisted session, if any.
func (a *App) Boot(ctx context.Context) {
	if s, ok := a.holder.Restore(ctx); ok {
		a.log.Debug().Str("user_id", s.User().ID).Str("role", s.Role().String()).Msg("session restored")
	}
}

// Login authenticates against the backend and establishes the session.
func (a *App) Login(ctx context.Context, email, password string) error {
	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			a.notice("login failed: %s", apiErr.Message)
			return fmt.Errorf("%w: %w", ErrLoginFailed, err)
		}
		a.notice("login failed: backend unreachable")
		return fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	s, err := a.holder.Establish(ctx, res.AccessToken, res.User)
	if err != nil {
		a.notice("login failed: %v", err)
		return fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	a.printf("signed in as %s (%s)\n", s.User().Name, s.Role())
	return nil
}

// Logout revokes the credential on the backend when possible and clears the
// session regardless.
func (a *App) Logout(ctx context.Context) error {
	if s, ok := a.holder.Current(); ok {
		if err := a.api.WithToken(s.Credential()).Logout(ctx); err != nil {
			a.log.Warn().Err(err).Msg("token revocation failed")
		}
	}
	if err := a.holder.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.printf("signed out\n")
	return nil
}

// Whoami confirms the held session with the backend and prints it. A dead
// credential is cleared; an unreachable backend leaves the session as held.
func (a *App) Whoami(ctx context.Context) error {
	s, ok := a.holder.Current()
	if !ok {
		a.printf("not signed in\n")
		return nil
	}

	u, err := a.api.WithToken(s.Credential()).Me(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrAccountDisabled):
		a.invalidate(ctx, err)
		return err
	default:
		a.notice("could not confirm session: %v", err)
		a.printf("%s (%s) id=%s\n", s.User().Name, s.Role(), s.User().ID)
		return nil
	}

	if u.Name != s.User().Name || u.Role != s.Role() {
		refreshed, err := a.holder.Establish(ctx, s.Credential(), session.Identity{ID: u.ID, Name: u.Name, Role: string(u.Role)})
		if err != nil {
			return fmt.Errorf("refresh session: %w", err)
		}
		s = refreshed
	}
	a.printf("%s (%s) id=%s email=%s\n", s.User().Name, s.Role(), s.User().ID, u.Email)
	return nil
}

// Open navigates to path. A redirect is printed and followed once.
func (a *App) Open(ctx context.Context, path string) error {
	s := a.session()
	d := a.router.Resolve(path, s)
	if d.Outcome == access.Redirect {
		a.printf("-> redirect %s\n", d.Path)
		d = a.router.Resolve(d.Path, s)
		if d.Outcome == access.Redirect {
			a.printf("-> redirect %s\n", d.Path)
			return nil
		}
	}
	return a.mount(ctx, d.Page, s)
}

func (a *App) mount(ctx context.Context, page access.PageID, s *session.Session) error {
	if s == nil || page == access.PageLogin {
		a.loginPage()
		return nil
	}

	p := &pages{api: a.api.WithToken(s.Credential()), out: a.out}
	var err error
	switch page {
	case access.PageDashboard:
		err = p.dashboard(ctx, access.RootVariant(s.Role()))
	case access.PageLeads:
		err = p.leads(ctx)
	case access.PageUsers:
		err = p.users(ctx)
	case access.PageConfig:
		err = p.config(ctx)
	case access.PageAudit:
		err = p.audit(ctx)
	default:
		return fmt.Errorf("no page registered for %q", page)
	}
	return a.fetchFailed(ctx, page, err)
}

// fetchFailed turns page errors into the client's reactions: a rejected
// credential drops the session and lands on login; anything else is a notice.
func (a *App) fetchFailed(ctx context.Context, page access.PageID, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return nil
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrAccountDisabled):
		a.invalidate(ctx, err)
		return err
	case errors.Is(err, ErrForbidden):
		a.printf("-> redirect %s\n", access.RootPath)
		return err
	default:
		a.notice("could not load %s: %v", page, err)
		return err
	}
}

// invalidate drops a credential the backend no longer honours and sends the
// user to the login page.
func (a *App) invalidate(ctx context.Context, cause error) {
	if err := a.holder.Clear(ctx); err != nil {
		a.log.Error().Err(err).Msg("clear session")
	}
	if errors.Is(cause, ErrAccountDisabled) {
		a.notice("account deactivated, contact an administrator")
	} else {
		a.notice("session expired, sign in again")
	}
	a.printf("-> redirect %s\n", access.LoginPath)
	a.loginPage()
}

func (a *App) loginPage() {
	a.printf("Uninorte leads: sign in\n")
	a.printf("  leadctl login -email <email> -password <password>\n")
}

func (a *App) session() *session.Session {
	s, ok := a.holder.Current()
	if !ok {
		return nil
	}
	return &s
}

func (a *App) notice(format string, args ...any) {
	a.printf("! "+format+"\n", args...)
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}
