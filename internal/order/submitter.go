// Package order provides the cart.OrderSubmitter backends that receive
// checked-out orders.
package order

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	kafkago "github.com/segmentio/kafka-go"
	"jericho-storefront/internal/cart"
	"jericho-storefront/internal/config"
	"jericho-storefront/internal/domain"
	"jericho-storefront/internal/metrics"
	orderrepo "jericho-storefront/internal/repository/order"
)

var (
	_ cart.OrderSubmitter = (*Stub)(nil)
	_ cart.OrderSubmitter = (*KafkaPublisher)(nil)
	_ cart.OrderSubmitter = (*Recorder)(nil)
	_ cart.OrderSubmitter = (*Instrumented)(nil)
)

// Stub accepts every order and only logs it.
type Stub struct {
	logger *log.Logger

	mu       sync.Mutex
	accepted []string
}

func NewStub(logger *log.Logger) *Stub {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Stub{logger: logger}
}

func (s *Stub) Submit(_ context.Context, o domain.Order) error {
	s.mu.Lock()
	s.accepted = append(s.accepted, o.ID)
	s.mu.Unlock()
	s.logger.Printf("order stub: accepted id=%s lines=%d total=%s", o.ID, len(o.Lines), o.Total.StringFixed(2))
	return nil
}

// Accepted returns the ids of every order seen so far.
func (s *Stub) Accepted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.accepted...)
}

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaPublisher writes each order as a JSON message keyed by order id.
type KafkaPublisher struct {
	writer MessageWriter
	logger *log.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *log.Logger) *KafkaPublisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return newKafkaPublisher(w, logger)
}

func newKafkaPublisher(w MessageWriter, logger *log.Logger) *KafkaPublisher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &KafkaPublisher{writer: w, logger: logger}
}

func (k *KafkaPublisher) Submit(ctx context.Context, o domain.Order) error {
	payload, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal order %s: %w", o.ID, err)
	}
	err = k.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(o.ID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	})
	if err != nil {
		k.logger.Printf("order kafka: publish id=%s error=%v", o.ID, err)
		return fmt.Errorf("publish order %s: %w", o.ID, err)
	}
	k.logger.Printf("order kafka: published id=%s", o.ID)
	return nil
}

func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}

// Recorder stores orders in Postgres.
type Recorder struct {
	repo orderrepo.Repository
}

func NewRecorder(repo orderrepo.Repository) *Recorder {
	return &Recorder{repo: repo}
}

func (r *Recorder) Submit(ctx context.Context, o domain.Order) error {
	if err := r.repo.Create(ctx, o); err != nil {
		return fmt.Errorf("record order %s: %w", o.ID, err)
	}
	return nil
}

// Instrumented counts submissions of the wrapped backend.
type Instrumented struct {
	name string
	next cart.OrderSubmitter
	now  func() time.Time
}

func Instrument(name string, next cart.OrderSubmitter) *Instrumented {
	return &Instrumented{name: name, next: next, now: time.Now}
}

func (i *Instrumented) Submit(ctx context.Context, o domain.Order) error {
	start := i.now()
	err := i.next.Submit(ctx, o)
	metrics.RecordOrder(i.name, i.now().Sub(start), err)
	return err
}

// FromConfig builds the submitter named by cfg.OrderSubmitter, wrapped with
// metrics. The returned close func releases backend resources.
func FromConfig(cfg config.Config, pool *pgxpool.Pool, logger *log.Logger) (cart.OrderSubmitter, func() error, error) {
	noop := func() error { return nil }
	switch cfg.OrderSubmitter {
	case "", config.SubmitterStub:
		return Instrument(config.SubmitterStub, NewStub(logger)), noop, nil
	case config.SubmitterKafka:
		if len(cfg.KafkaBrokers) == 0 || cfg.KafkaOrderTopic == "" {
			return nil, nil, fmt.Errorf("kafka submitter: brokers and topic required")
		}
		pub := NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic, logger)
		return Instrument(config.SubmitterKafka, pub), pub.Close, nil
	case config.SubmitterPostgres:
		if pool == nil {
			return nil, nil, fmt.Errorf("postgres submitter: DB_DSN required")
		}
		rec := NewRecorder(orderrepo.NewPostgres(pool, logger))
		return Instrument(config.SubmitterPostgres, rec), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown order submitter %q", cfg.OrderSubmitter)
	}
}
