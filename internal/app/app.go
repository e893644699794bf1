package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/config"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/field"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/match"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/media"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/spirit"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/team"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/tournament"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/user"
	"github.com/ShubhamShuklaX/Tournify/internal/infrastructure/account/gotrue"
	"github.com/ShubhamShuklaX/Tournify/internal/infrastructure/jobqueue"
	"github.com/ShubhamShuklaX/Tournify/internal/infrastructure/realtime"
	cacherepo "github.com/ShubhamShuklaX/Tournify/internal/infrastructure/repository/cache"
	"github.com/ShubhamShuklaX/Tournify/internal/infrastructure/repository/memory"
	"github.com/ShubhamShuklaX/Tournify/internal/infrastructure/repository/postgres"
	s3storage "github.com/ShubhamShuklaX/Tournify/internal/infrastructure/storage/s3"
	"github.com/ShubhamShuklaX/Tournify/internal/interfaces/httpapi"
	basecache "github.com/ShubhamShuklaX/Tournify/internal/platform/cache"
	idgen "github.com/ShubhamShuklaX/Tournify/internal/platform/id"
	"github.com/ShubhamShuklaX/Tournify/internal/platform/logging"
	"github.com/ShubhamShuklaX/Tournify/internal/platform/resilience"
	"github.com/ShubhamShuklaX/Tournify/internal/usecase"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// Runtime is the assembled service: the HTTP server plus the long-running
// pieces main has to start and stop alongside it.
type Runtime struct {
	Server *http.Server
	Hub    *realtime.Hub
	db     *sqlx.DB
}

func (r *Runtime) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

type repositories struct {
	tournaments   tournament.Repository
	registrations tournament.RegistrationRepository
	teams         team.Repository
	players       team.PlayerRepository
	fields        field.Repository
	matches       match.Repository
	spirit        spirit.Repository
	media         media.Repository
	profiles      user.ProfileRepository
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, db, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	ids := idgen.NewUUIDGenerator()
	hub := realtime.NewHub(cfg.CORSAllowedOrigins, logger)

	var queue usecase.JobQueue
	if cfg.QStashEnabled {
		queue = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	var presigner usecase.UploadPresigner
	if cfg.MediaEnabled {
		p, err := s3storage.NewPresigner(ctx, s3storage.Config{
			Bucket:          cfg.MediaBucket,
			Region:          cfg.MediaRegion,
			Endpoint:        cfg.MediaEndpoint,
			AccessKeyID:     cfg.MediaAccessKeyID,
			SecretAccessKey: cfg.MediaSecretAccessKey,
		})
		if err != nil {
			closeDB(db, logger)
			return nil, fmt.Errorf("build media presigner: %w", err)
		}
		presigner = p
	}

	tournamentSvc := usecase.NewTournamentService(repos.tournaments, repos.registrations, repos.teams, ids, logger)
	teamSvc := usecase.NewTeamService(repos.teams, repos.players, ids)
	fieldSvc := usecase.NewFieldService(repos.tournaments, repos.fields, ids)
	scheduleSvc := usecase.NewScheduleService(
		repos.tournaments,
		repos.registrations,
		repos.fields,
		repos.matches,
		ids,
		hub,
		usecase.ScheduleConfig{
			MatchMinutes: cfg.ScheduleMatchDuration,
			BreakMinutes: cfg.ScheduleBreakDuration,
		},
		logger,
	)
	matchSvc := usecase.NewMatchService(repos.tournaments, repos.matches, hub, logger)
	standingSvc := usecase.NewStandingService(repos.tournaments, repos.registrations, repos.matches)
	spiritSvc := usecase.NewSpiritService(repos.tournaments, repos.matches, repos.spirit, ids, logger)
	dashboardSvc := usecase.NewDashboardService(repos.tournaments, repos.matches, standingSvc, spiritSvc)
	reminderSvc := usecase.NewReminderService(
		repos.tournaments,
		spiritSvc,
		queue,
		hub,
		usecase.ReminderConfig{Workers: cfg.ReminderWorkers},
		logger,
	)
	mediaSvc := usecase.NewMediaService(repos.tournaments, repos.media, presigner, ids, cfg.MediaPresignTTL)
	approvalSvc := usecase.NewApprovalService(repos.profiles, logger)
	sessionSvc := usecase.NewSessionService(
		buildVerifier(cfg, logger),
		repos.profiles,
		usecase.SessionConfig{
			ProfileRetries:        cfg.SessionProfileRetries,
			ProfileInitialBackoff: cfg.SessionProfileBackoff,
		},
		logger,
	)

	handler := httpapi.NewHandler(
		tournamentSvc,
		teamSvc,
		fieldSvc,
		scheduleSvc,
		matchSvc,
		standingSvc,
		spiritSvc,
		dashboardSvc,
		reminderSvc,
		mediaSvc,
		approvalSvc,
		hub,
		cfg.PublicBaseURL,
		logger,
	)
	router := httpapi.NewRouter(handler, sessionSvc, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	logger.Info("http server assembled",
		"storage_driver", cfg.StorageDriver,
		"auth_mode", cfg.AuthMode,
		"cache_enabled", cfg.CacheEnabled,
		"qstash_enabled", cfg.QStashEnabled,
		"media_enabled", cfg.MediaEnabled,
	)

	return &Runtime{Server: server, Hub: hub, db: db}, nil
}

func buildVerifier(cfg config.Config, logger *logging.Logger) usecase.PrincipalVerifier {
	if cfg.AuthMode == config.AuthModeJWT {
		return gotrue.NewJWTVerifier(cfg.AuthJWTSecret)
	}

	return gotrue.NewClient(gotrue.ClientConfig{
		BaseURL:  cfg.AuthBaseURL,
		UserPath: cfg.AuthUserPath,
		APIKey:   cfg.AuthAPIKey,
		Timeout:  cfg.AuthTimeout,
		CacheTTL: cfg.AuthCacheTTL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AuthCircuitEnabled,
			FailureThreshold: cfg.AuthCircuitFailureCount,
			OpenTimeout:      cfg.AuthCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AuthCircuitHalfOpenMaxReq,
		},
		Logger: logger,
	})
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	var (
		repos repositories
		db    *sqlx.DB
	)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		var err error
		db, err = openDB(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		repos = repositories{
			tournaments:   postgres.NewTournamentRepository(db),
			registrations: postgres.NewRegistrationRepository(db),
			teams:         postgres.NewTeamRepository(db),
			players:       postgres.NewPlayerRepository(db),
			fields:        postgres.NewFieldRepository(db),
			matches:       postgres.NewMatchRepository(db),
			spirit:        postgres.NewSpiritRepository(db),
			media:         postgres.NewMediaRepository(db),
			profiles:      postgres.NewProfileRepository(db),
		}
		target := parsePostgresTarget(cfg.DBURL, false)
		logger.Info("postgres storage ready", "db_name", target.dbName, "db_host", target.host)
	default:
		repos = repositories{
			tournaments:   memory.NewTournamentRepository(memory.SeedTournaments()),
			registrations: memory.NewRegistrationRepository(memory.SeedRegistrations()),
			teams:         memory.NewTeamRepository(memory.SeedTeams()),
			players:       memory.NewPlayerRepository(memory.SeedPlayers()),
			fields:        memory.NewFieldRepository(memory.SeedFields()),
			matches:       memory.NewMatchRepository(nil),
			spirit:        memory.NewSpiritRepository(nil),
			media:         memory.NewMediaRepository(),
			profiles:      memory.NewProfileRepository(memory.SeedProfiles()),
		}
		logger.Info("memory storage ready", "tournaments", len(memory.SeedTournaments()))
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.tournaments = cacherepo.NewTournamentRepository(repos.tournaments, store)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.fields = cacherepo.NewFieldRepository(repos.fields, store)
	}

	return repos, db, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	target := parsePostgresTarget(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", target.dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(target.dbName),
		otelsql.WithQueryFormatter(formatStatementForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("close postgres failed", "error", err)
	}
}
