package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	_ "pet-adoption/docs"
	mem "pet-adoption/internal/adapters/storage/memory"
	pg "pet-adoption/internal/adapters/storage/postgres"
	"pet-adoption/internal/adapters/storage/redisstore"
	"pet-adoption/internal/domain/activity"
	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/feed"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/users"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/ports/tx"
)

type Options struct {
	Logger       logger.Logger     // nil => sin logs
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
	// Opcional: si viene, los watermarks del feed van a Redis.
	Redis redis.UniversalClient

	Workflow       applications.Policy
	TracerProvider trace.TracerProvider // nil => provider global
	Metrics        *metrics.Metrics     // nil => registry nuevo
}

type repos struct {
	pets         pets.Repository
	applications applications.Repository
	events       activity.Repository
	watermarks   activity.WatermarkStore
	users        users.Repository
	tx           tx.Runner
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))
	r.Use(m.Middleware)
	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", healthHandler(opts.DB))
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	st := buildRepos(opts)

	// Services por módulo
	eventLog := activity.NewLog(st.events)
	petsSvc := pets.NewService(st.pets, eventLog, st.tx, pets.WithTransitionObserver(m))

	appOpts := []applications.Option{
		applications.WithPolicy(opts.Workflow),
		applications.WithTransitionObserver(m),
	}
	if opts.TracerProvider != nil {
		appOpts = append(appOpts, applications.WithTracerProvider(opts.TracerProvider))
	}
	appsSvc := applications.NewService(st.applications, petsSvc, eventLog, st.tx, appOpts...)

	feedSvc := feed.NewService(petsSvc, appsSvc, eventLog, st.watermarks)
	usersSvc := users.NewService(st.users, eventLog, st.tx)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc)
	pets.RegisterRoutes(r, petsSvc)
	applications.RegisterRoutes(r, appsSvc)
	feed.RegisterRoutes(r, feedSvc)

	log.Info("router.ready", map[string]any{
		"storage":               storageName(opts),
		"auth_verifier":         opts.AuthVerifier != nil,
		"auto_reject_competing": opts.Workflow.AutoRejectCompeting,
	})
	return r
}

func buildRepos(opts Options) repos {
	var st repos
	if opts.DB != nil {
		st = repos{
			pets:         pg.NewPetsRepo(opts.DB),
			applications: pg.NewApplicationsRepo(opts.DB),
			events:       pg.NewEventsRepo(opts.DB),
			watermarks:   pg.NewWatermarksRepo(opts.DB),
			users:        pg.NewUsersRepo(opts.DB),
			tx:           pg.NewTxRunner(opts.DB),
		}
	} else {
		st = repos{
			pets:         mem.NewPetRepo(),
			applications: mem.NewApplicationRepo(),
			events:       mem.NewEventRepo(),
			watermarks:   mem.NewWatermarkRepo(),
			users:        mem.NewUserRepo(),
			tx:           mem.NewTxRunner(),
		}
	}
	if opts.Redis != nil {
		st.watermarks = redisstore.NewWatermarks(opts.Redis)
	}
	return st
}

func storageName(opts Options) string {
	if opts.DB != nil {
		return "postgres"
	}
	return "memory"
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				http.Error(w, "db unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
