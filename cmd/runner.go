package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/huddle/internal/models"
	"github.com/desertthunder/huddle/internal/repositories"
	"github.com/desertthunder/huddle/internal/services"
	"github.com/desertthunder/huddle/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	db         *sql.DB
	sessions   *repositories.SessionRepository
	likes      *repositories.LikeRepository
	api        *services.APIService
	transport  http.RoundTripper
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	DB         *sql.DB
	Transport  http.RoundTripper
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
//
// A nil Config is loaded from ConfigPath by [Runner.Before].
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		db:         opts.DB,
		transport:  opts.Transport,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, playsCommand, playbookCommand, feedCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads configuration and applies global flags ahead of any command.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("debug") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	if r.config != nil {
		return ctx, nil
	}

	config, err := r.loadConfig()
	if err != nil {
		return ctx, err
	}
	r.config = config
	return ctx, nil
}

func (r *Runner) loadConfig() (*shared.Config, error) {
	config := shared.DefaultConfig()
	if r.configPath != "" {
		loaded, err := shared.LoadConfig(r.configPath)
		switch {
		case errors.Is(err, shared.ErrMissingConfig):
			r.logger.Debug("config file not found, using defaults", "path", r.configPath)
		case err != nil:
			return nil, err
		default:
			config = loaded
		}
	}

	if err := config.ApplyEnv(".env"); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Config returns the loaded configuration, falling back to defaults.
func (r *Runner) Config() *shared.Config {
	if r.config == nil {
		r.config = shared.DefaultConfig()
	}
	return r.config
}

// store opens the database and repositories on first use.
func (r *Runner) store() error {
	if r.sessions != nil {
		return nil
	}

	config := r.Config()
	if r.db == nil {
		db, err := shared.OpenDatabase(config.Database)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		r.db = db
	} else if err := shared.RunMigrations(r.db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.sessions = repositories.NewSessionRepository(r.db, config.Session.TTL())
	r.sessions.OnSignOut(func() {
		r.logger.Warn("session rejected by the server, signed out")
	})
	r.likes = repositories.NewLikeRepository(r.db)
	return nil
}

// client returns the backend client, authenticated through the session store.
func (r *Runner) client() (*services.APIService, error) {
	if r.api != nil {
		return r.api, nil
	}
	if err := r.store(); err != nil {
		return nil, err
	}

	r.api = services.NewAPIService(services.APIOpts{
		Config:    r.Config().API,
		Session:   r.sessions,
		Transport: r.transport,
		Logger:    shared.WithLogger(r.logger, "component", "api"),
	})
	return r.api, nil
}

// Close releases the database handle.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	r.sessions = nil
	r.likes = nil
	r.api = nil
	return err
}

// SetLogger swaps the logger, used while the TUI owns the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

func (r *Runner) writePlay(i int, p models.Play) {
	r.writePlain("%d. %s [%s]\n", i+1, p.Title(), p.ID)

	details := []string{}
	if p.Formation != "" {
		details = append(details, models.FormationLabel(p.Formation))
	}
	if p.PlayType != "" {
		details = append(details, models.PlayTypeLabel(p.PlayType))
	}
	details = append(details, "shared by "+p.SharedBy)
	if p.Liked {
		details = append(details, "♥ liked")
	}
	r.writePlain("   %s\n", strings.Join(details, " • "))

	if p.VideoURL != "" {
		r.writePlain("   %s\n", p.VideoURL)
	}
}
