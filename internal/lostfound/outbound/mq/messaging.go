package mq

import (
	"context"
	"encoding/json"

	"github.com/intelliverse/intelliverse/internal/lostfound/usecase"
	"github.com/intelliverse/intelliverse/internal/pkg/instrument"
	"github.com/intelliverse/intelliverse/internal/pkg/messaging"
	"github.com/intelliverse/intelliverse/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishItemReported(ctx context.Context, msg usecase.ItemReportedEvent) error {
	ctx, span := m.ins.Tracer("lostfound.outbound.mq").Start(ctx, "PublishItemReported")
	defer span.End()

	body, err := json.Marshal(event.ItemReportedMessage{
		ItemID:     msg.ItemID,
		Title:      msg.Title,
		Location:   msg.Location,
		Status:     msg.Status,
		ReportedBy: msg.ReportedBy,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.ItemReportedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishItemClaimed(ctx context.Context, msg usecase.ItemClaimedEvent) error {
	ctx, span := m.ins.Tracer("lostfound.outbound.mq").Start(ctx, "PublishItemClaimed")
	defer span.End()

	body, err := json.Marshal(event.ItemClaimedMessage{
		ItemID:    msg.ItemID,
		ClaimedBy: msg.ClaimedBy,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.ItemClaimedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
