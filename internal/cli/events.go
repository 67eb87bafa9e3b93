package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"customerapi/internal/models"
	"customerapi/pkg/logger"
	"customerapi/pkg/rabbitmq"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Tail customer events from RabbitMQ",
	Long: `Consume the customer event queue and log every created, updated and
deleted event until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.RabbitMQ.URL == "" {
			return fmt.Errorf("RABBITMQ_URL is required")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue})
		if err != nil {
			return err
		}
		defer mq.Close()

		done, err := mq.ConsumeCustomerEvents(logEvent(log))
		if err != nil {
			return err
		}
		log.Info("waiting for customer events", zap.String("queue", cfg.RabbitMQ.Queue))

		select {
		case <-ctx.Done():
		case <-done:
			return fmt.Errorf("event channel closed by broker")
		}
		return nil
	},
}

func logEvent(l *zap.Logger) func(models.CustomerEvent) error {
	return func(event models.CustomerEvent) error {
		l.Info("customer event",
			zap.String("type", string(event.Type)),
			zap.Int64("customerId", event.CustomerID),
			zap.String("email", event.Email),
			zap.String(logger.CorrelationIDKey, event.CorrelationID),
			zap.Time("occurredAt", event.OccurredAt),
		)
		return nil
	}
}
