package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bikeshop/inventory-worker/internal/app/inventory/entity"
	"bikeshop/inventory-worker/internal/app/inventory/service"
	"bikeshop/pkg/logger"
	"bikeshop/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

const metricsService = "inventory-worker"

// messageReader часть kafka.Reader, нужная consumer
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConsumer обрабатывает события из топика inventory_events
type KafkaConsumer struct {
	reader       messageReader
	inventorySvc service.InventoryServiceInterface
	topic        string
	groupID      string
	retryDelay   time.Duration
	stopChan     chan struct{}
	doneChan     chan struct{}
}

func NewKafkaConsumer(
	brokers []string,
	topic string,
	groupID string,
	minBytes int,
	maxBytes int,
	inventorySvc service.InventoryServiceInterface,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       minBytes,
		MaxBytes:       maxBytes,
		StartOffset:    kafka.FirstOffset,
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
	})

	return newKafkaConsumer(reader, topic, groupID, inventorySvc)
}

func newKafkaConsumer(reader messageReader, topic, groupID string, inventorySvc service.InventoryServiceInterface) *KafkaConsumer {
	return &KafkaConsumer{
		reader:       reader,
		inventorySvc: inventorySvc,
		topic:        topic,
		groupID:      groupID,
		retryDelay:   time.Second,
		stopChan:     make(chan struct{}),
		doneChan:     make(chan struct{}),
	}
}

// Start запускает consumer в отдельной горутине
func (c *KafkaConsumer) Start(ctx context.Context) {
	logger.Info().Str("topic", c.topic).Str("group", c.groupID).Msg("Starting Kafka consumer")
	go c.consume(ctx)
}

// Stop дожидается окончания обработки текущего сообщения
func (c *KafkaConsumer) Stop() {
	logger.Info().Msg("Stopping Kafka consumer...")
	close(c.stopChan)
	<-c.doneChan
	if err := c.reader.Close(); err != nil {
		logger.Warn().Err(err).Msg("Failed to close Kafka reader")
	}
	logger.Info().Msg("Kafka consumer stopped")
}

func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.doneChan)

	for {
		select {
		case <-c.stopChan:
			return
		case <-ctx.Done():
			return
		default:
		}

		readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		message, err := c.reader.FetchMessage(readCtx)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if !errors.Is(err, context.DeadlineExceeded) {
				metrics.RecordKafkaError(metricsService, c.topic, "fetch")
				logger.Warn().Err(err).Msg("Error fetching message")
			}
			continue
		}

		c.handle(ctx, message)
	}
}

// handle повторяет временные ошибки, пока consumer не остановят;
// offset коммитится только после успешной обработки или отбраковки
func (c *KafkaConsumer) handle(ctx context.Context, message kafka.Message) {
	for {
		start := time.Now()
		err := c.processMessage(ctx, message)
		if err == nil {
			metrics.RecordKafkaMessageConsumed(metricsService, c.topic, c.groupID, time.Since(start))
			break
		}

		if errors.Is(err, service.ErrUnprocessableEvent) {
			metrics.RecordKafkaError(metricsService, c.topic, "process")
			logger.Error().Err(err).
				Int64("offset", message.Offset).
				Int("partition", message.Partition).
				Msg("Dropping unprocessable message")
			break
		}

		metrics.RecordKafkaError(metricsService, c.topic, "process")
		logger.Warn().Err(err).Int64("offset", message.Offset).Msg("Error processing message, retrying")
		select {
		case <-c.stopChan:
			return
		case <-ctx.Done():
			return
		case <-time.After(c.retryDelay):
		}
	}

	if err := c.reader.CommitMessages(ctx, message); err != nil {
		metrics.RecordKafkaError(metricsService, c.topic, "commit")
		logger.Error().Err(err).Int64("offset", message.Offset).Msg("Error committing message")
	}
}

func (c *KafkaConsumer) processMessage(ctx context.Context, message kafka.Message) error {
	var event entity.InventoryEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("%w: %v", service.ErrUnprocessableEvent, err)
	}

	logger.Debug().
		Str("event_type", event.EventType).
		Str("option_id", event.OptionID.String()).
		Int64("offset", message.Offset).
		Int("partition", message.Partition).
		Msg("Received inventory event")

	return c.inventorySvc.ProcessEvent(ctx, &event)
}
