package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/intelliverse/intelliverse/internal/lostfound/entity"
	"github.com/intelliverse/intelliverse/internal/pkg/config"
	"github.com/intelliverse/intelliverse/internal/pkg/goerror"
	"github.com/intelliverse/intelliverse/internal/pkg/goroutine"
	"github.com/intelliverse/intelliverse/internal/pkg/idempotency"
	"github.com/intelliverse/intelliverse/internal/pkg/instrument"
	"github.com/intelliverse/intelliverse/internal/pkg/jwt"
	"github.com/intelliverse/intelliverse/internal/pkg/storage"
	"github.com/intelliverse/intelliverse/internal/pkg/validator"
)

type mockRepoDB struct {
	createItemFn      func(ctx context.Context, in entity.NewItem) error
	getItemByIDFn     func(ctx context.Context, id int64) (entity.Item, error)
	getItemReporterFn func(ctx context.Context, id int64) (entity.ItemReporter, error)
	getItemListFn     func(ctx context.Context, filter entity.ItemListFilter) ([]entity.Item, int64, error)
	claimItemFn       func(ctx context.Context, id, claimedBy int64, at time.Time) error
	deleteItemFn      func(ctx context.Context, id int64) error
}

func (m *mockRepoDB) CreateItem(ctx context.Context, in entity.NewItem) error {
	if m.createItemFn != nil {
		return m.createItemFn(ctx, in)
	}
	return nil
}

func (m *mockRepoDB) GetItemByID(ctx context.Context, id int64) (entity.Item, error) {
	if m.getItemByIDFn != nil {
		return m.getItemByIDFn(ctx, id)
	}
	return entity.Item{}, goerror.ErrNotFound
}

func (m *mockRepoDB) GetItemReporter(ctx context.Context, id int64) (entity.ItemReporter, error) {
	if m.getItemReporterFn != nil {
		return m.getItemReporterFn(ctx, id)
	}
	return entity.ItemReporter{}, goerror.ErrNotFound
}

func (m *mockRepoDB) GetItemList(ctx context.Context, filter entity.ItemListFilter) ([]entity.Item, int64, error) {
	if m.getItemListFn != nil {
		return m.getItemListFn(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockRepoDB) ClaimItem(ctx context.Context, id, claimedBy int64, at time.Time) error {
	if m.claimItemFn != nil {
		return m.claimItemFn(ctx, id, claimedBy, at)
	}
	return nil
}

func (m *mockRepoDB) DeleteItem(ctx context.Context, id int64) error {
	if m.deleteItemFn != nil {
		return m.deleteItemFn(ctx, id)
	}
	return nil
}

// mockRepoMessaging records publishes behind a mutex because the usecases
// announce events from managed goroutines.
type mockRepoMessaging struct {
	mu       sync.Mutex
	reported []ItemReportedEvent
	claimed  []ItemClaimedEvent
}

func (m *mockRepoMessaging) PublishItemReported(_ context.Context, msg ItemReportedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reported = append(m.reported, msg)
	return nil
}

func (m *mockRepoMessaging) PublishItemClaimed(_ context.Context, msg ItemClaimedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.claimed = append(m.claimed, msg)
	return nil
}

func (m *mockRepoMessaging) reportedEvents() []ItemReportedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ItemReportedEvent(nil), m.reported...)
}

func (m *mockRepoMessaging) claimedEvents() []ItemClaimedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ItemClaimedEvent(nil), m.claimed...)
}

type reportNotice struct {
	to, title, location, status string
}

type claimNotice struct {
	to, name, title string
}

type mockRepoMail struct {
	sendErr error
	reports []reportNotice
	claims  []claimNotice
}

func (m *mockRepoMail) SendReportNotice(_ context.Context, to, title, location, status string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.reports = append(m.reports, reportNotice{to: to, title: title, location: location, status: status})
	return nil
}

func (m *mockRepoMail) SendClaimNotice(_ context.Context, to, name, title string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.claims = append(m.claims, claimNotice{to: to, name: name, title: title})
	return nil
}

// mockIdempotency remembers completed keys and short-circuits repeats.
type mockIdempotency struct {
	done map[string]bool
}

func (m *mockIdempotency) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (m *mockIdempotency) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (m *mockIdempotency) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (m *mockIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	if m.done == nil {
		m.done = map[string]bool{}
	}
	if m.done[key] {
		return idempotency.ErrAlreadyCompleted
	}
	if err := fn(ctx); err != nil {
		return err
	}
	m.done[key] = true
	return nil
}

type mockStorage struct {
	storage.Storage
	presignGetFn func(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	presignPutFn func(ctx context.Context, bucket, key string, opts storage.PutOptions, expiry time.Duration) (string, error)
	deleted      []string
}

func (m *mockStorage) PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	if m.presignGetFn != nil {
		return m.presignGetFn(ctx, bucket, key, expiry)
	}
	return "https://cdn.test/" + key, nil
}

func (m *mockStorage) PresignPut(ctx context.Context, bucket, key string, opts storage.PutOptions, expiry time.Duration) (string, error) {
	if m.presignPutFn != nil {
		return m.presignPutFn(ctx, bucket, key, opts, expiry)
	}
	return "https://upload.test/" + key, nil
}

func (m *mockStorage) DeleteObject(_ context.Context, _, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

type stubConfig struct {
	config.Config
	deskEmail string
}

func (s stubConfig) GetString(key string) string {
	if key == "modules.lostfound.desk_email" {
		return s.deskEmail
	}
	return "lostfound-images"
}

func (stubConfig) GetMinute(string) time.Duration { return 15 * time.Minute }

type stubUID struct{ next int64 }

func (s *stubUID) Generate() int64 {
	s.next++
	return s.next
}

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

const enforcerModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	m, err := model.NewModelFromString(enforcerModel)
	if err != nil {
		t.Fatalf("NewModelFromString() error = %v", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	if _, err := e.AddPolicy("admin", "lostfound.item", "delete"); err != nil {
		t.Fatalf("AddPolicy() error = %v", err)
	}

	return e
}

type testDeps struct {
	db      *mockRepoDB
	mq      *mockRepoMessaging
	mail    *mockRepoMail
	idemp   *mockIdempotency
	storage *mockStorage
	uid     *stubUID
	clock   fixedClock
	routine *goroutine.Manager
}

func newTestUsecase(t *testing.T) (*Usecase, *testDeps) {
	t.Helper()
	return newTestUsecaseWithConfig(t, stubConfig{deskEmail: "lostfound-desk@nu.edu.pk"})
}

func newTestUsecaseWithConfig(t *testing.T, cfg config.Config) (*Usecase, *testDeps) {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	deps := &testDeps{
		db:      &mockRepoDB{},
		mq:      &mockRepoMessaging{},
		mail:    &mockRepoMail{},
		idemp:   &mockIdempotency{},
		storage: &mockStorage{},
		uid:     &stubUID{},
		clock:   fixedClock{now: time.Now().Truncate(time.Second)},
		routine: goroutine.NewManager(8),
	}

	uc := New(Dependency{
		RepoDB:        deps.db,
		RepoMessaging: deps.mq,
		RepoMail:      deps.mail,
		Idempotency:   deps.idemp,
		Storage:       deps.storage,
		Enforcer:      newTestEnforcer(t),
		Validator:     v,
		Config:        cfg,
		UID:           deps.uid,
		Clock:         deps.clock,
		Goroutine:     deps.routine,
		Instrument:    instrument.NewNoop(),
	})

	return uc, deps
}

func authCtx(userID int64, role string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{
		UserID:    userID,
		UserEmail: "user@nu.edu.pk",
		UserRole:  role,
	})
}

func assertBusinessCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	if err == nil {
		t.Fatal("error = nil, want business error")
	}

	gerr, ok := err.(*goerror.Error)
	if !ok {
		t.Fatalf("error = %v (%T), want *goerror.Error", err, err)
	}

	if gerr.Code() != code {
		t.Fatalf("error code = %v, want %v", gerr.Code(), code)
	}
}
