package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/aswin071/Expense-Tracker/internal/config"
	"github.com/aswin071/Expense-Tracker/internal/logging"
	"github.com/aswin071/Expense-Tracker/internal/migrations"
	"github.com/aswin071/Expense-Tracker/internal/repo"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
)

// Deps are the storage handles the router is built on. Redis may be nil.
type Deps struct {
	Users    repo.UserRepo
	Expenses repo.ExpenseRepo
	Redis    *redis.Client
	Log      *slog.Logger
}

type App struct {
	cfg    config.Config
	log    *slog.Logger
	pg     *pgxpool.Pool
	sqlite *sql.DB
	redis  *redis.Client
	router *gin.Engine
}

func New(cfg config.Config, log *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}
	deps := Deps{Log: log}

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		if err := runPostgresMigrations(cfg.DB.PGDSN, log); err != nil {
			return nil, err
		}
		pool, err := newPostgres(cfg.DB.PGDSN)
		if err != nil {
			return nil, err
		}
		a.pg = pool
		deps.Users = repo.NewPGUserRepo(pool)
		deps.Expenses = repo.NewPGExpenseRepo(pool)
	case config.DriverSQLite:
		db, err := repo.OpenSQLite(cfg.DB.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.sqlite = db
		if err := migrations.Up(db, migrations.SQLite, log); err != nil {
			_ = db.Close()
			return nil, err
		}
		deps.Users = repo.NewSQLiteUserRepo(db)
		deps.Expenses = repo.NewSQLiteExpenseRepo(db)
	default:
		return nil, fmt.Errorf("unsupported DB driver %q", cfg.DB.Driver)
	}
	log.Info("database ready", "driver", cfg.DB.Driver)

	if cfg.Redis.Enabled() {
		rdb, err := newRedis(cfg.Redis)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.redis = rdb
		deps.Redis = rdb
		log.Info("redis ready", "addr", cfg.Redis.Addr)
	} else {
		log.Warn("redis not configured, caching and token revocation disabled")
	}

	a.router = NewRouter(cfg, deps)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close() error {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.pg != nil {
		a.pg.Close()
	}
	if a.sqlite != nil {
		return a.sqlite.Close()
	}
	return nil
}

func newPostgres(dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}

	return pool, nil
}

func newRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

func runPostgresMigrations(dsn string, log *slog.Logger) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("goose open db: %w", err)
	}
	defer db.Close()

	return migrations.Up(db, migrations.Postgres, log)
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(cfg config.Config, deps Deps) *gin.Engine {
	if cfg.App.Env == "prod" || cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if deps.Log == nil {
		deps.Log = slog.Default()
	}

	r := gin.New()
	r.Use(logging.Middleware(deps.Log), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.HTTP.CORSAllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	Setup(r, cfg, deps)
	return r
}
