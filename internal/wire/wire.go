// Package wire provides dependency injection for the dispatch application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"

	"github.com/example/dispatch/internal/adapters/broadcast"
	cliadapter "github.com/example/dispatch/internal/adapters/cli"
	"github.com/example/dispatch/internal/adapters/memory"
	"github.com/example/dispatch/internal/adapters/sqlite"
	"github.com/example/dispatch/internal/app"
	"github.com/example/dispatch/internal/config"
	"github.com/example/dispatch/internal/db"
	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/ports/secondary"
)

// Services is one fully wired registry and everything that observes it.
type Services struct {
	Config     *config.Config
	Logger     *slog.Logger
	Hub        *broadcast.Hub
	Players    primary.PlayerService
	Units      primary.UnitService
	Situations primary.SituationService
	Channels   primary.ChannelService
	Audit      primary.AuditService

	auditDB *sql.DB
}

// Close releases the audit database, if one was opened.
func (s *Services) Close() error {
	if s.auditDB == nil {
		return nil
	}
	return s.auditDB.Close()
}

// NewLogger returns the text logger used on stderr.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Build wires a fresh, empty registry from cfg and seeds the channel pool.
// An audit database that cannot be opened disables auditing instead of
// failing the build. The caller owns Close.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	threshold, err := cfg.SeniorThreshold()
	if err != nil {
		return nil, err
	}

	svc := &Services{
		Config: cfg,
		Logger: logger,
		Hub:    broadcast.NewHub(logger),
	}

	var logWriter secondary.LogWriter
	var auditRepo secondary.AuditLogRepository
	if cfg.AuditEnabled() {
		database, err := openAudit(cfg)
		if err != nil {
			logger.Warn("audit log disabled", "err", err)
		} else {
			svc.auditDB = database
			auditRepo = sqlite.NewAuditLogRepository(database)
			logWriter = sqlite.NewLogWriterAdapter(auditRepo)
		}
	}

	coord := app.NewCoordinator(
		app.Registries{
			Players:    memory.NewPlayerRepository(),
			Units:      memory.NewUnitRepository(),
			Situations: memory.NewSituationRepository(),
			Channels:   memory.NewChannelRepository(),
		},
		memory.SystemClock{},
		svc.Hub,
		logWriter,
		logger,
		app.Rules{
			SeniorThreshold: threshold,
			MarkingMaxLen:   cfg.MarkingMaxLen,
			AliveTTL:        cfg.AliveTTL,
			AwayAfter:       cfg.AwayAfter,
		},
	)

	channels := app.NewChannelService(coord)
	if err := channels.Seed(ctx, cfg.Channels); err != nil {
		return nil, errors.Join(err, svc.Close())
	}

	svc.Players = app.NewPlayerService(coord)
	svc.Units = app.NewUnitService(coord)
	svc.Situations = app.NewSituationService(coord)
	svc.Channels = channels
	svc.Audit = app.NewAuditService(auditRepo)
	return svc, nil
}

func openAudit(cfg *config.Config) (*sql.DB, error) {
	path, err := cfg.AuditPath()
	if err != nil {
		return nil, err
	}
	database, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return database, nil
}

var (
	services *Services
	once     sync.Once
)

// initServices loads config from the working directory and builds the
// process-wide registry. This is called once via sync.Once.
func initServices() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	services, err = Build(context.Background(), cfg, NewLogger(os.Stderr, level))
	if err != nil {
		log.Fatalf("failed to initialize registry: %v", err)
	}
}

// Get returns the singleton Services instance.
func Get() *Services {
	once.Do(initServices)
	return services
}

// Close releases the singleton, if it was ever built.
func Close() error {
	if services == nil {
		return nil
	}
	return services.Close()
}

// Hub returns the singleton change hub.
func Hub() *broadcast.Hub {
	return Get().Hub
}

// PlayerAdapterWithOutput returns a new PlayerAdapter writing to the given output.
// Each call creates a new adapter (adapters are stateless translators).
func PlayerAdapterWithOutput(out io.Writer) *cliadapter.PlayerAdapter {
	return cliadapter.NewPlayerAdapter(Get().Players, out)
}

// UnitAdapterWithOutput returns a new UnitAdapter writing to the given output.
func UnitAdapterWithOutput(out io.Writer) *cliadapter.UnitAdapter {
	return cliadapter.NewUnitAdapter(Get().Units, out)
}

// SituationAdapterWithOutput returns a new SituationAdapter writing to the given output.
func SituationAdapterWithOutput(out io.Writer) *cliadapter.SituationAdapter {
	return cliadapter.NewSituationAdapter(Get().Situations, out)
}

// ChannelAdapterWithOutput returns a new ChannelAdapter writing to the given output.
func ChannelAdapterWithOutput(out io.Writer) *cliadapter.ChannelAdapter {
	return cliadapter.NewChannelAdapter(Get().Channels, out)
}

// AuditAdapterWithOutput returns a new AuditAdapter writing to the given output.
func AuditAdapterWithOutput(out io.Writer) *cliadapter.AuditAdapter {
	return cliadapter.NewAuditAdapter(Get().Audit, out)
}

// StatusAdapterWithOutput returns a new StatusAdapter writing to the given output.
func StatusAdapterWithOutput(out io.Writer) *cliadapter.StatusAdapter {
	s := Get()
	return cliadapter.NewStatusAdapter(s.Players, s.Units, s.Situations, s.Channels, out)
}
