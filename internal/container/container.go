// Package container wires the application together.
//
// Pattern: Composition Root
// - All dependencies are assembled in one place
// - Services receive only the ports they need
// - Shutdown runs in reverse order of initialization
package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	adapterhttp "github.com/manganova/api/internal/adapters/http"
	"github.com/manganova/api/internal/adapters/http/handlers"
	"github.com/manganova/api/internal/application/ports"
	"github.com/manganova/api/internal/application/services"
	"github.com/manganova/api/internal/config"
	"github.com/manganova/api/internal/i18n"
	"github.com/manganova/api/internal/infrastructure/persistence/postgres"
	"github.com/manganova/api/internal/infrastructure/storage"
	"github.com/manganova/api/internal/pkg/crypt"
	"github.com/manganova/api/internal/pkg/logger"
)

// ============================================
// Port Adapters
// ============================================

// argonHasher adapts the crypt package to the PasswordHasher port.
type argonHasher struct{}

func (argonHasher) Hash(password string) (string, error) {
	return crypt.HashPassword(password)
}

func (argonHasher) Verify(encodedHash, password string) (bool, error) {
	return crypt.VerifyPassword(encodedHash, password)
}

// tokenIssuer adapts the TokenManager to the TokenIssuer port.
type tokenIssuer struct {
	manager *crypt.TokenManager
}

func (t tokenIssuer) Generate(userID int64, email, username string, stayLoggedIn bool) (string, error) {
	return t.manager.Generate(userID, email, username, stayLoggedIn)
}

func (t tokenIssuer) Verify(token string) (*ports.TokenPayload, error) {
	claims, err := t.manager.Verify(token)
	if err != nil {
		return nil, err
	}
	return &ports.TokenPayload{
		UserID:       claims.UserID,
		Email:        claims.Email,
		Username:     claims.Username,
		StayLoggedIn: claims.StayLoggedIn,
	}, nil
}

// ============================================
// Container
// ============================================

// Container owns the application's dependency graph.
type Container struct {
	config    *config.Config
	buildTime string
	logger    *slog.Logger

	// Infrastructure
	pool       *pgxpool.Pool
	translator *i18n.Translator
	storage    ports.ObjectStorage
	tokens     ports.TokenIssuer
	hasher     ports.PasswordHasher

	// Repositories
	userRepo   ports.UserRepository
	titleRepo  ports.TitleRepository
	tagRepo    ports.TagRepository
	ratingRepo ports.RatingRepository
	groupRepo  ports.GroupRepository

	// Unit of Work
	uow ports.UnitOfWork

	// Services
	authService   *services.AuthService
	userService   *services.UserService
	titleService  *services.TitleService
	tagService    *services.TagService
	ratingService *services.RatingService
	groupService  *services.GroupService

	// HTTP
	httpServer *adapterhttp.Server
}

// New creates a container for the given configuration. buildTime is
// stamped at link time and reported by the health endpoints.
func New(cfg *config.Config, buildTime string) *Container {
	return &Container{
		config:    cfg,
		buildTime: buildTime,
	}
}

// ============================================
// Initialization
// ============================================

// Initialize builds every dependency, failing fast on the first error.
func (c *Container) Initialize(ctx context.Context) error {
	c.initLogger()
	c.logger.Info("Initializing application container...")

	if err := c.initTranslator(); err != nil {
		return fmt.Errorf("failed to initialize translator: %w", err)
	}

	if err := c.initDatabase(ctx); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	c.logger.Info("Database connected")

	if err := c.initStorage(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	c.initSecurity()
	c.initRepositories()
	c.initServices()
	c.logger.Info("Services initialized")

	c.initHTTPServer()
	c.logger.Info("HTTP server initialized")

	c.logger.Info("Container initialization complete")
	return nil
}

func (c *Container) initLogger() {
	logger.Setup(&logger.Config{
		Level:  c.config.Log.Level,
		Format: c.config.Log.Format,
	})
	c.logger = logger.L()
}

func (c *Container) initTranslator() error {
	translator, err := i18n.Init()
	if err != nil {
		return err
	}
	c.translator = translator
	return nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	db := c.config.Database
	pool, err := postgres.NewConnectionPool(ctx, postgres.Config{
		Host:            db.Host,
		Port:            db.Port,
		Database:        db.Database,
		User:            db.User,
		Password:        db.Password,
		SSLMode:         db.SSLMode,
		MaxConns:        db.MaxConnections,
		MinConns:        db.MinConnections,
		MaxConnLifetime: db.MaxConnLifetime,
		MaxConnIdleTime: db.MaxConnIdleTime,
	})
	if err != nil {
		return err
	}

	c.pool = pool
	return nil
}

func (c *Container) initStorage() error {
	fs, err := storage.NewFileSystem(c.config.Storage.Root, c.config.Storage.Bucket)
	if err != nil {
		return err
	}
	c.storage = fs
	return nil
}

func (c *Container) initSecurity() {
	auth := c.config.Auth
	c.tokens = tokenIssuer{manager: crypt.NewTokenManager(
		auth.JWTSecret,
		auth.JWTIssuer,
		auth.AccessTokenExpiry,
		auth.StayLoggedInExpiry,
	)}
	c.hasher = argonHasher{}
}

func (c *Container) initRepositories() {
	c.userRepo = postgres.NewUserRepository(c.pool)
	c.titleRepo = postgres.NewTitleRepository(c.pool)
	c.tagRepo = postgres.NewTagRepository(c.pool)
	c.ratingRepo = postgres.NewRatingRepository(c.pool)
	c.groupRepo = postgres.NewGroupRepository(c.pool)

	c.uow = postgres.NewUnitOfWork(c.pool)
}

func (c *Container) initServices() {
	policy := services.PasswordPolicy{
		EmailRegex:    c.config.Policy.EmailRegex,
		UsernameRegex: c.config.Policy.UsernameRegex,
		PasswordRegex: c.config.Policy.PasswordRegex,
	}

	c.authService = services.NewAuthService(
		c.userRepo,
		c.uow,
		c.hasher,
		c.tokens,
		policy,
		c.config.Auth.PasswordHistoryLimit,
	)
	c.userService = services.NewUserService(c.userRepo, c.uow, c.hasher)
	c.titleService = services.NewTitleService(c.titleRepo, c.tagRepo, c.uow, c.storage)
	c.tagService = services.NewTagService(c.tagRepo)
	c.ratingService = services.NewRatingService(c.ratingRepo, c.titleRepo)
	c.groupService = services.NewGroupService(c.groupRepo, c.uow)
}

func (c *Container) initHTTPServer() {
	router := adapterhttp.NewRouter(&adapterhttp.RouterConfig{
		Logger:         c.logger,
		Pool:           c.pool,
		Translator:     c.translator,
		Tokens:         c.tokens,
		TokenHeader:    c.config.Auth.TokenHeader,
		Version:        c.config.App.Version,
		BuildTime:      c.buildTime,
		Environment:    c.config.App.Environment,
		AllowedOrigins: c.config.CORS.AllowedOrigins,
	})

	router.Register(
		handlers.NewAuthHandler(c.authService, c.translator).Routes(),
		handlers.NewUserHandler(c.userService, c.translator).Routes(),
		handlers.NewTitleHandler(c.titleService, c.translator).Routes(),
		handlers.NewTagHandler(c.tagService, c.translator).Routes(),
		handlers.NewRatingHandler(c.ratingService, c.translator).Routes(),
		handlers.NewGroupHandler(c.groupService, c.translator).Routes(),
	)

	serverConfig := &adapterhttp.ServerConfig{
		Host:            c.config.Server.Host,
		Port:            fmt.Sprintf("%d", c.config.Server.Port),
		ReadTimeout:     c.config.Server.ReadTimeout,
		WriteTimeout:    c.config.Server.WriteTimeout,
		IdleTimeout:     c.config.Server.IdleTimeout,
		ShutdownTimeout: c.config.Server.ShutdownTimeout,
		Logger:          c.logger,
	}

	c.httpServer = adapterhttp.NewServer(serverConfig, router.Engine())
}

// ============================================
// Getters
// ============================================

// Config returns the loaded configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the application logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

// Pool returns the database connection pool.
func (c *Container) Pool() *pgxpool.Pool {
	return c.pool
}

// Translator returns the message translator.
func (c *Container) Translator() *i18n.Translator {
	return c.translator
}

// HTTPServer returns the HTTP server.
func (c *Container) HTTPServer() *adapterhttp.Server {
	return c.httpServer
}

// UnitOfWork returns the transactional boundary.
func (c *Container) UnitOfWork() ports.UnitOfWork {
	return c.uow
}

// AuthService returns the authentication service.
func (c *Container) AuthService() *services.AuthService {
	return c.authService
}

// TitleService returns the catalog service.
func (c *Container) TitleService() *services.TitleService {
	return c.titleService
}

// ============================================
// Run / Shutdown
// ============================================

// Run starts the HTTP server and blocks until a shutdown signal.
func (c *Container) Run() error {
	c.logger.Info("Starting Manga Nova API Server",
		slog.String("version", c.config.App.Version),
		slog.String("environment", c.config.App.Environment),
		slog.String("address", c.config.Server.Address()),
	)

	return c.httpServer.Run()
}

// Shutdown stops the components in reverse order. When the configuration
// asks for it (test environments), the schema is dropped before the pool
// closes.
func (c *Container) Shutdown(ctx context.Context) error {
	c.logger.Info("Shutting down container...")

	var errs []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("HTTP server shutdown: %w", err))
		}
	}

	if c.pool != nil {
		if c.config.Database.DropTables && !c.config.App.IsProd() {
			if err := postgres.DropAll(ctx, c.pool); err != nil {
				errs = append(errs, fmt.Errorf("schema teardown: %w", err))
			} else {
				c.logger.Info("Database schema dropped")
			}
		}

		done := make(chan struct{})
		go func() {
			c.pool.Close()
			close(done)
		}()

		select {
		case <-done:
			c.logger.Info("Database connection closed")
		case <-ctx.Done():
			c.logger.Warn("Database close timeout")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	c.logger.Info("Container shutdown complete")
	return nil
}

// ============================================
// Builder
// ============================================

// Builder assembles a container with selected components replaced, mainly
// for tests that inject an existing pool or logger.
type Builder struct {
	cfg       *config.Config
	buildTime string
	logger    *slog.Logger
	pool      *pgxpool.Pool
	storage   ports.ObjectStorage
}

// NewBuilder creates a container builder.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{cfg: cfg, buildTime: "unknown"}
}

// WithBuildTime sets the reported build timestamp.
func (b *Builder) WithBuildTime(buildTime string) *Builder {
	b.buildTime = buildTime
	return b
}

// WithLogger sets a custom logger.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithPool sets an already-connected pool.
func (b *Builder) WithPool(pool *pgxpool.Pool) *Builder {
	b.pool = pool
	return b
}

// WithObjectStorage sets a custom object store.
func (b *Builder) WithObjectStorage(store ports.ObjectStorage) *Builder {
	b.storage = store
	return b
}

// Build assembles the container.
func (b *Builder) Build(ctx context.Context) (*Container, error) {
	c := New(b.cfg, b.buildTime)

	if b.logger != nil {
		c.logger = b.logger
	} else {
		c.initLogger()
	}

	if err := c.initTranslator(); err != nil {
		return nil, err
	}

	if b.pool != nil {
		c.pool = b.pool
	} else {
		if err := c.initDatabase(ctx); err != nil {
			return nil, err
		}
	}

	if b.storage != nil {
		c.storage = b.storage
	} else {
		if err := c.initStorage(); err != nil {
			return nil, err
		}
	}

	c.initSecurity()
	c.initRepositories()
	c.initServices()
	c.initHTTPServer()

	return c, nil
}
