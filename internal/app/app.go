package app

import (
	"context"
	"net/http"

	"github.com/casbin/casbin/v3"
	"github.com/intelliverse/intelliverse/internal/pkg/clock"
	"github.com/intelliverse/intelliverse/internal/pkg/config"
	"github.com/intelliverse/intelliverse/internal/pkg/goroutine"
	"github.com/intelliverse/intelliverse/internal/pkg/hash"
	"github.com/intelliverse/intelliverse/internal/pkg/idempotency"
	"github.com/intelliverse/intelliverse/internal/pkg/instrument"
	"github.com/intelliverse/intelliverse/internal/pkg/jwt"
	"github.com/intelliverse/intelliverse/internal/pkg/mail"
	"github.com/intelliverse/intelliverse/internal/pkg/messaging"
	"github.com/intelliverse/intelliverse/internal/pkg/otp"
	"github.com/intelliverse/intelliverse/internal/pkg/router"
	"github.com/intelliverse/intelliverse/internal/pkg/storage"
	"github.com/intelliverse/intelliverse/internal/pkg/uid"
	"github.com/intelliverse/intelliverse/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	argon2id  hash.Hash
	bcrypt    hash.Hash
	password  hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	codes     otp.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	messaging messaging.Messaging
	storage   storage.Storage
	casbin    *casbin.Enforcer

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initStorage()
	app.initMessaging()
	app.initCasbin()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
