// Command leadctl is the terminal client of the lead management system. It
// keeps the signed-in session on disk and renders the role-gated pages.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/uninorte/lead-system/internal/client"
	"github.com/uninorte/lead-system/internal/core/access"
	"github.com/uninorte/lead-system/internal/core/session"
	"github.com/uninorte/lead-system/internal/infrastructure/sessionstore"
	"github.com/uninorte/lead-system/internal/pkg/config"
	"github.com/uninorte/lead-system/pkg/logger"
)

type commandFn func(ctx context.Context, app *client.App, args []string) error

type command struct {
	name        string
	usage       string
	description string
	run         commandFn
}

func commands() map[string]command {
	open := command{
		name:        "open",
		usage:       "open <path>",
		description: "Navigate to a page (/, /leads, /users, /config, /audit, /login)",
		run:         runOpen,
	}
	nav := open
	nav.name = "nav"
	nav.usage = "nav <path>"
	nav.description = "Alias of open"

	return map[string]command{
		"login": {
			name:        "login",
			usage:       "login -email <email> -password <password>",
			description: "Sign in and keep the session",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			usage:       "logout",
			description: "Revoke the token and forget the session",
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			usage:       "whoami",
			description: "Show the signed-in user",
			run:         runWhoami,
		},
		"open": open,
		"nav":  nav,
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 2
	}
	cmd, ok := commands()[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		printUsage(stderr)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadClient(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Output: stderr, Service: "leadctl"})

	path, err := sessionPath(cfg.SessionFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	holder := session.NewHolder(sessionstore.NewFileStore(path, cfg.SessionKey), log)
	app := client.NewApp(holder, access.MustDefaultRouter(), client.NewAPI(cfg.APIURL, nil), stdout, log)
	app.Boot(ctx)

	if err := cmd.run(ctx, app, args[1:]); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			log.Debug().Err(err).Str("command", cmd.name).Msg("command failed")
		}
		return 1
	}
	return 0
}

func runLogin(ctx context.Context, app *client.App, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		fs.Usage()
		return flag.ErrHelp
	}
	return app.Login(ctx, *email, *password)
}

func runLogout(ctx context.Context, app *client.App, _ []string) error {
	return app.Logout(ctx)
}

func runWhoami(ctx context.Context, app *client.App, _ []string) error {
	return app.Whoami(ctx)
}

func runOpen(ctx context.Context, app *client.App, args []string) error {
	path := access.RootPath
	if len(args) > 0 {
		path = args[0]
	}
	return app.Open(ctx, path)
}

// sessionPath falls back to <user config dir>/leadctl/session.
func sessionPath(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "leadctl", "session"), nil
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: leadctl <command> [flags]\n\nAvailable commands:\n")
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-44s %s\n", cmds[name].usage, cmds[name].description)
	}
}
