package auth

import (
	"github.com/intelliverse/intelliverse/internal/auth/inbound"
	"github.com/intelliverse/intelliverse/internal/auth/outbound/cache"
	"github.com/intelliverse/intelliverse/internal/auth/outbound/db"
	"github.com/intelliverse/intelliverse/internal/auth/outbound/mailer"
	"github.com/intelliverse/intelliverse/internal/auth/usecase"
	"github.com/intelliverse/intelliverse/internal/pkg/clock"
	"github.com/intelliverse/intelliverse/internal/pkg/config"
	"github.com/intelliverse/intelliverse/internal/pkg/hash"
	"github.com/intelliverse/intelliverse/internal/pkg/instrument"
	"github.com/intelliverse/intelliverse/internal/pkg/jwt"
	"github.com/intelliverse/intelliverse/internal/pkg/mail"
	"github.com/intelliverse/intelliverse/internal/pkg/otp"
	"github.com/intelliverse/intelliverse/internal/pkg/router"
	"github.com/intelliverse/intelliverse/internal/pkg/uid"
	"github.com/intelliverse/intelliverse/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	CacheConn  *redis.Client              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	HMAC       hash.Hash                  `validate:"required"`
	Password   hash.Hash                  `validate:"required"`
	Codes      otp.Generator              `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)
	repoCache := cache.NewCache(dep.CacheConn, dep.Clock, dep.Instrument)
	repoMailer := mailer.NewMailer(dep.Mail, dep.Config.GetString("modules.auth.mail_from"), dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        repoDB,
		RepoChallenge: repoCache,
		RepoSession:   repoCache,
		Mailer:        repoMailer,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Password:      dep.Password,
		HMAC:          dep.HMAC,
		Codes:         dep.Codes,
		UID:           dep.UID,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
