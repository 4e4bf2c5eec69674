package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/intelliverse/intelliverse/internal/lostfound/usecase"
	"github.com/intelliverse/intelliverse/internal/pkg/instrument"
	"github.com/intelliverse/intelliverse/internal/pkg/messaging"
	"github.com/intelliverse/intelliverse/internal/pkg/uid"
	"github.com/intelliverse/intelliverse/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) ItemReportedNotice(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("lostfound.inbound.mq").Start(ctx, "ItemReportedNotice")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: item reported notice", "msg_body", string(body))

	var payload event.ItemReportedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of item reported notice", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeItemReported(ctx, usecase.ConsumeItemReportedInput{
		ItemID:     payload.ItemID,
		Title:      payload.Title,
		Location:   payload.Location,
		Status:     payload.Status,
		ReportedBy: payload.ReportedBy,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume item reported", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) ItemClaimedNotice(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("lostfound.inbound.mq").Start(ctx, "ItemClaimedNotice")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: item claimed notice", "msg_body", string(body))

	var payload event.ItemClaimedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of item claimed notice", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeItemClaimed(ctx, usecase.ConsumeItemClaimedInput{
		ItemID:    payload.ItemID,
		ClaimedBy: payload.ClaimedBy,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume item claimed", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
