package app

import (
	"log/slog"
	"os"

	"github.com/intelliverse/intelliverse/internal/auth"
	"github.com/intelliverse/intelliverse/internal/lostfound"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.auth.enabled") {
		if err := auth.New(auth.Dependency{
			DBConn:     a.dbConn,
			CacheConn:  a.cacheConn,
			Router:     a.router,
			Mail:       a.mail,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			HMAC:       a.hmac,
			Password:   a.password,
			Codes:      a.codes,
			Clock:      a.clock,
			Validator:  a.validator,
			JWT:        a.jwt,
		}); err != nil {
			slog.Error("failed to init module auth", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.lostfound.enabled") {
		if err := lostfound.New(lostfound.Dependency{
			Ctx:         a.ctx,
			DBConn:      a.dbConn,
			Router:      a.router,
			Enforcer:    a.casbin,
			Idempotency: a.idemp,
			Messaging:   a.messaging,
			Storage:     a.storage,
			Mail:        a.mail,
			Config:      a.config,
			Instrument:  a.ins,
			Goroutine:   a.goroutine,
			UID:         a.uid,
			UUID:        a.uuid,
			Clock:       a.clock,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module lostfound", "error", err)
			os.Exit(1)
		}
	}
}
