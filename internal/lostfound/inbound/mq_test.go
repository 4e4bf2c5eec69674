package inbound

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/intelliverse/intelliverse/internal/lostfound/usecase"
	"github.com/intelliverse/intelliverse/internal/pkg/config"
	"github.com/intelliverse/intelliverse/internal/pkg/goroutine"
	"github.com/intelliverse/intelliverse/internal/pkg/instrument"
	"github.com/intelliverse/intelliverse/internal/pkg/messaging"
	"github.com/intelliverse/intelliverse/internal/shared/event"
)

type fakeUC struct {
	reported []usecase.ConsumeItemReportedInput
	claimed  []usecase.ConsumeItemClaimedInput
}

func (f *fakeUC) Report(context.Context, usecase.ReportInput) (*usecase.ReportOutput, error) {
	return nil, nil
}

func (f *fakeUC) List(context.Context, usecase.ListInput) (*usecase.ListOutput, error) {
	return nil, nil
}

func (f *fakeUC) Detail(context.Context, usecase.DetailInput) (*usecase.ListItem, error) {
	return nil, nil
}

func (f *fakeUC) Claim(context.Context, usecase.ClaimInput) (*usecase.ClaimOutput, error) {
	return nil, nil
}

func (f *fakeUC) Delete(context.Context, usecase.DeleteInput) error { return nil }

func (f *fakeUC) ImageUpload(context.Context, usecase.ImageUploadInput) (*usecase.ImageUploadOutput, error) {
	return nil, nil
}

func (f *fakeUC) ConsumeItemReported(_ context.Context, in usecase.ConsumeItemReportedInput) error {
	f.reported = append(f.reported, in)
	return nil
}

func (f *fakeUC) ConsumeItemClaimed(_ context.Context, in usecase.ConsumeItemClaimedInput) error {
	f.claimed = append(f.claimed, in)
	return nil
}

type fakeMessage struct {
	body    []byte
	headers []messaging.Header
}

func (m fakeMessage) Body() []byte                { return m.body }
func (m fakeMessage) Headers() []messaging.Header { return m.headers }
func (m fakeMessage) ID() string                  { return "" }
func (m fakeMessage) Subject() string             { return "" }
func (m fakeMessage) Timestamp() time.Time        { return time.Time{} }
func (m fakeMessage) Ack(context.Context) error   { return nil }

type fakeMessenger struct {
	mu     sync.Mutex
	topics []string
}

func (f *fakeMessenger) Close() error { return nil }

func (f *fakeMessenger) Publish(context.Context, string, messaging.OutgoingMessage) (messaging.PublishResult, error) {
	return messaging.PublishResult{}, nil
}

func (f *fakeMessenger) Consume(_ context.Context, source string, _ messaging.Handler, _ ...messaging.ConsumeOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, source)
	return nil
}

func (f *fakeMessenger) consumedTopics() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.topics...)
}

type consumerConfig struct {
	config.Config
	names []string
}

func (c consumerConfig) GetArray(string) []string { return c.names }

type fixedUUID struct{}

func (fixedUUID) Generate() string { return "generated-cid" }

func TestRegisterMQConsumerRunsEnabledConsumers(t *testing.T) {
	routine := goroutine.NewManager(4)
	messenger := &fakeMessenger{}
	cfg := consumerConfig{names: []string{
		event.ItemReportedConsumerNotice,
		event.ItemClaimedConsumerNotice,
	}}

	RegisterMQConsumer(context.Background(), cfg, routine, messenger, fixedUUID{}, &fakeUC{}, instrument.NewNoop())

	if err := routine.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	topics := messenger.consumedTopics()
	if len(topics) != 2 {
		t.Fatalf("consumed topics = %v, want 2", topics)
	}

	want := map[string]bool{
		event.ItemReportedDestination: true,
		event.ItemClaimedDestination:  true,
	}
	for _, topic := range topics {
		if !want[topic] {
			t.Errorf("unexpected consumed topic %q", topic)
		}
	}
}

func TestRegisterMQConsumerRespectsEnabledNames(t *testing.T) {
	routine := goroutine.NewManager(4)
	messenger := &fakeMessenger{}
	cfg := consumerConfig{names: []string{event.ItemClaimedConsumerNotice}}

	RegisterMQConsumer(context.Background(), cfg, routine, messenger, fixedUUID{}, &fakeUC{}, instrument.NewNoop())

	if err := routine.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	topics := messenger.consumedTopics()
	if len(topics) != 1 || topics[0] != event.ItemClaimedDestination {
		t.Errorf("consumed topics = %v, want only %q", topics, event.ItemClaimedDestination)
	}
}

func TestMQHandlerItemClaimedNotice(t *testing.T) {
	fake := &fakeUC{}
	h := &MQHandler{uc: fake, uuid: fixedUUID{}, ins: instrument.NewNoop()}

	msg := fakeMessage{
		body:    []byte(`{"item_id":5,"claimed_by":9}`),
		headers: []messaging.Header{{Key: "cID", Value: []byte("abc-123")}},
	}

	if err := h.ItemClaimedNotice(context.Background(), msg); err != nil {
		t.Fatalf("ItemClaimedNotice() error = %v", err)
	}

	if len(fake.claimed) != 1 || fake.claimed[0].ItemID != 5 || fake.claimed[0].ClaimedBy != 9 {
		t.Errorf("claimed inputs = %+v", fake.claimed)
	}
}

func TestMQHandlerItemReportedNotice(t *testing.T) {
	fake := &fakeUC{}
	h := &MQHandler{uc: fake, uuid: fixedUUID{}, ins: instrument.NewNoop()}

	msg := fakeMessage{body: []byte(`{"item_id":5,"title":"Keys","location":"Cafeteria","status":"found","reported_by":7}`)}

	if err := h.ItemReportedNotice(context.Background(), msg); err != nil {
		t.Fatalf("ItemReportedNotice() error = %v", err)
	}

	if len(fake.reported) != 1 || fake.reported[0].Title != "Keys" {
		t.Errorf("reported inputs = %+v", fake.reported)
	}
}

func TestMQHandlerDropsMalformedBody(t *testing.T) {
	fake := &fakeUC{}
	h := &MQHandler{uc: fake, uuid: fixedUUID{}, ins: instrument.NewNoop()}

	msg := fakeMessage{body: []byte(`{not json`)}

	if err := h.ItemClaimedNotice(context.Background(), msg); err != nil {
		t.Fatalf("ItemClaimedNotice() error = %v, want nil for malformed body", err)
	}

	if len(fake.claimed) != 0 {
		t.Errorf("claimed inputs = %+v, want none", fake.claimed)
	}
}
