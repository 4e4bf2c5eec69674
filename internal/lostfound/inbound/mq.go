package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/intelliverse/intelliverse/internal/pkg/config"
	"github.com/intelliverse/intelliverse/internal/pkg/goroutine"
	"github.com/intelliverse/intelliverse/internal/pkg/instrument"
	"github.com/intelliverse/intelliverse/internal/pkg/messaging"
	"github.com/intelliverse/intelliverse/internal/pkg/uid"
	"github.com/intelliverse/intelliverse/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.lostfound.consumer_names")

	var consumers = []struct {
		name    string // queue group, so replicas share one subscription
		topic   string // destination where publisher sent message
		handler messaging.Handler
	}{
		{
			name:    event.ItemReportedConsumerNotice,
			topic:   event.ItemReportedDestination,
			handler: mqHandler.ItemReportedNotice,
		},
		{
			name:    event.ItemClaimedConsumerNotice,
			topic:   event.ItemClaimedDestination,
			handler: mqHandler.ItemClaimedNotice,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx,
					consumer.topic,
					consumer.handler,
					messaging.WithQueueGroup(consumer.name),
					messaging.WithAutoAck(true),
					messaging.WithConcurrency(10),
				)
			})
		}
	}
}
