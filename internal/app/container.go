package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"devskillshub/internal/config"
	"devskillshub/internal/database"
	"devskillshub/internal/database/migration"
	dbpostgres "devskillshub/internal/database/postgres"
	"devskillshub/internal/infrastructure/cache"
	"devskillshub/internal/infrastructure/github"
	"devskillshub/internal/infrastructure/kv"
	"devskillshub/internal/infrastructure/persistence/postgres"
	"devskillshub/internal/pkg/jwt"
	"devskillshub/internal/repository"
	"devskillshub/internal/usecase"
	"devskillshub/internal/ws"
)

const tokenIssuer = "devskillshub"

type Container struct {
	Config config.Config
	Logger *log.Logger

	Medium kv.Medium
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	JWT    jwt.Service

	Skills   *repository.SkillStore
	Contacts *repository.ContactRepository
	GitHub   github.Client

	SkillUC   *usecase.Skill
	ProjectUC *usecase.Project
	ContactUC *usecase.Contact
	AuthUC    *usecase.Auth
}

func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}
	c := &Container{Config: cfg, Logger: logger}

	if err := c.openMedium(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	if c.Cache == nil {
		c.Cache = cache.NewRedis(cfg.Redis, logger)
	}

	c.Hub = ws.NewHub(logger)
	if cfg.Auth.Enabled() {
		c.JWT = jwt.NewHMACService(cfg.Auth.JWTSecret, cfg.Auth.AccessExpiresIn, tokenIssuer)
	}

	c.Skills = repository.NewSkillStore(c.Medium, cfg.Storage.Key, logger)
	c.Contacts = repository.NewContactRepository(c.Medium, cfg.Storage.Key+"_contact", logger)
	c.GitHub = github.NewClient(cfg.GitHub.BaseURL, cfg.GitHub.Timeout, logger)

	c.SkillUC = usecase.NewSkillUsecase(c.Skills, c.Hub, logger)
	c.ProjectUC = usecase.NewProjectUsecase(c.GitHub, c.Cache, cfg.Redis.TTL, logger)
	c.ContactUC = usecase.NewContactUsecase(c.Contacts, logger)
	c.AuthUC = usecase.NewAuthUsecase(c.JWT, cfg.Auth.OwnerPasswordHash, logger)

	logger.Printf("[App] container ready storage=%s key=%s auth=%t", cfg.Storage.Backend, cfg.Storage.Key, cfg.Auth.Enabled())
	return c, nil
}

func (c *Container) openMedium(ctx context.Context) error {
	cfg := c.Config
	switch cfg.Storage.Backend {
	case config.StorageBackendMemory:
		c.Medium = kv.NewMemory()
	case config.StorageBackendFile:
		f, err := kv.NewFile(cfg.Storage.Dir)
		if err != nil {
			return err
		}
		c.Medium = f
	case config.StorageBackendRedis:
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		r, err := cache.Connect(ctx, cfg.Redis, c.Logger)
		if err != nil {
			return err
		}
		c.Medium = r
		c.Cache = r
	case config.StorageBackendPostgres:
		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		c.DB = db

		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := (migration.Runner{Dir: cfg.Database.MigrationsDir}).Run(ctx, db.SQLDB()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if err := migration.EnsureTableColumns(ctx, db.SQLDB(), "kv_store", "key", "value", "updated_at"); err != nil {
			return err
		}
		c.Medium = postgres.NewKVRepository(db)
	default:
		return fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
