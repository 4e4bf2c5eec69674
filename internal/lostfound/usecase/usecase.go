package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/intelliverse/intelliverse/internal/lostfound/entity"
	"github.com/intelliverse/intelliverse/internal/pkg/clock"
	"github.com/intelliverse/intelliverse/internal/pkg/config"
	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
	"github.com/intelliverse/intelliverse/internal/pkg/goroutine"
	"github.com/intelliverse/intelliverse/internal/pkg/idempotency"
	"github.com/intelliverse/intelliverse/internal/pkg/instrument"
	"github.com/intelliverse/intelliverse/internal/pkg/jwt"
	"github.com/intelliverse/intelliverse/internal/pkg/storage"
	"github.com/intelliverse/intelliverse/internal/pkg/uid"
	"github.com/intelliverse/intelliverse/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type ItemReportedEvent struct {
	ItemID     int64
	Title      string
	Location   string
	Status     string
	ReportedBy int64
}

type ItemClaimedEvent struct {
	ItemID    int64
	ClaimedBy int64
}

type repoDB interface {
	CreateItem(ctx context.Context, in entity.NewItem) error
	GetItemByID(ctx context.Context, id int64) (entity.Item, error)
	GetItemReporter(ctx context.Context, id int64) (entity.ItemReporter, error)
	GetItemList(ctx context.Context, filter entity.ItemListFilter) ([]entity.Item, int64, error)
	ClaimItem(ctx context.Context, id, claimedBy int64, at time.Time) error
	DeleteItem(ctx context.Context, id int64) error
}

type repoMessaging interface {
	PublishItemReported(ctx context.Context, msg ItemReportedEvent) error
	PublishItemClaimed(ctx context.Context, msg ItemClaimedEvent) error
}

type repoMail interface {
	SendReportNotice(ctx context.Context, to, title, location, status string) error
	SendClaimNotice(ctx context.Context, to, name, title string) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	repoMail      repoMail
	idemp         idempotency.Idempotency
	storage       storage.Storage
	enforcer      *casbin.Enforcer
	validator     validator.Validator
	cfg           config.Config
	uid           uid.NumberID
	clock         clock.Clocker
	routine       *goroutine.Manager
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	RepoMail      repoMail
	Idempotency   idempotency.Idempotency
	Storage       storage.Storage
	Enforcer      *casbin.Enforcer
	Validator     validator.Validator
	Config        config.Config
	UID           uid.NumberID
	Clock         clock.Clocker
	Goroutine     *goroutine.Manager
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		repoMail:      dep.RepoMail,
		idemp:         dep.Idempotency,
		storage:       dep.Storage,
		enforcer:      dep.Enforcer,
		validator:     dep.Validator,
		cfg:           dep.Config,
		uid:           dep.UID,
		clock:         dep.Clock,
		routine:       dep.Goroutine,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("lostfound.usecase").Start(ctx, name)
}

func (s *Usecase) imageBucket() string {
	return s.cfg.GetString("modules.lostfound.image_bucket")
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	ok, err := s.enforcer.Enforce(clm.UserRole, obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}

// imageURL mints a short-lived download URL for the item image, or "" when
// the item has none. A signing failure degrades to no URL rather than
// failing the read.
func (s *Usecase) imageURL(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}

	url, err := s.storage.PresignGet(ctx, s.imageBucket(), key, s.cfg.GetMinute("modules.lostfound.image_url_ttl_minutes"))
	if err != nil {
		slog.WarnContext(ctx, "failed to presign image url", "key", key, "error", err)
		return ""
	}

	return url
}
