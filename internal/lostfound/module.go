package lostfound

import (
	"context"

	"github.com/casbin/casbin/v3"
	"github.com/intelliverse/intelliverse/internal/lostfound/inbound"
	"github.com/intelliverse/intelliverse/internal/lostfound/outbound/db"
	"github.com/intelliverse/intelliverse/internal/lostfound/outbound/mailer"
	"github.com/intelliverse/intelliverse/internal/lostfound/outbound/mq"
	"github.com/intelliverse/intelliverse/internal/lostfound/usecase"
	"github.com/intelliverse/intelliverse/internal/pkg/clock"
	"github.com/intelliverse/intelliverse/internal/pkg/config"
	"github.com/intelliverse/intelliverse/internal/pkg/goroutine"
	"github.com/intelliverse/intelliverse/internal/pkg/idempotency"
	"github.com/intelliverse/intelliverse/internal/pkg/instrument"
	"github.com/intelliverse/intelliverse/internal/pkg/mail"
	"github.com/intelliverse/intelliverse/internal/pkg/messaging"
	"github.com/intelliverse/intelliverse/internal/pkg/router"
	"github.com/intelliverse/intelliverse/internal/pkg/storage"
	"github.com/intelliverse/intelliverse/internal/pkg/uid"
	"github.com/intelliverse/intelliverse/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	// Ctx, when set, turns on the background event consumers.
	Ctx         context.Context
	DBConn      *pgxpool.Pool              `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Enforcer    *casbin.Enforcer           `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Storage     storage.Storage            `validate:"required"`
	Mail        mail.Mail                  `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	UUID        uid.StringID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)
	repoMail := mailer.NewMailer(dep.Mail, dep.Config.GetString("modules.lostfound.mail_from"), dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        repoDB,
		RepoMessaging: repoMsg,
		RepoMail:      repoMail,
		Idempotency:   dep.Idempotency,
		Storage:       dep.Storage,
		Enforcer:      dep.Enforcer,
		Validator:     dep.Validator,
		Config:        dep.Config,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Goroutine:     dep.Goroutine,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}

	return nil
}
