package order

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"jericho-storefront/internal/config"
	"jericho-storefront/internal/domain"
)

type stubWriter struct {
	err      error
	messages []kafkago.Message
	closed   bool
}

func (w *stubWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *stubWriter) Close() error {
	w.closed = true
	return nil
}

type stubRepo struct {
	created []domain.Order
	err     error
}

func (r *stubRepo) Create(_ context.Context, o domain.Order) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, o)
	return nil
}

func (r *stubRepo) GetByID(context.Context, string) (*domain.Order, error) {
	return nil, domain.ErrNotFound
}

func (r *stubRepo) ListRecent(context.Context, int) ([]domain.Order, error) {
	return r.created, nil
}

func sampleOrder() domain.Order {
	return domain.Order{
		ID: "order-1",
		Lines: []domain.OrderLine{
			{ProductID: 1, Name: "Jacket", UnitPrice: decimal.RequireFromString("89.99"), Quantity: 2, Subtotal: decimal.RequireFromString("179.98")},
		},
		Total:    decimal.RequireFromString("179.98"),
		PlacedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStub_AcceptsEverything(t *testing.T) {
	s := NewStub(nil)
	if err := s.Submit(context.Background(), sampleOrder()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got := s.Accepted(); len(got) != 1 || got[0] != "order-1" {
		t.Fatalf("unexpected accepted ids %v", got)
	}
}

func TestKafkaPublisher_WritesKeyedJSON(t *testing.T) {
	w := &stubWriter{}
	pub := newKafkaPublisher(w, nil)

	if err := pub.Submit(context.Background(), sampleOrder()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(w.messages) != 1 || string(w.messages[0].Key) != "order-1" {
		t.Fatalf("unexpected messages %+v", w.messages)
	}
	var decoded domain.Order
	if err := json.Unmarshal(w.messages[0].Value, &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if !decoded.Total.Equal(decimal.RequireFromString("179.98")) || decoded.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected payload %+v", decoded)
	}

	if err := pub.Close(); err != nil || !w.closed {
		t.Fatalf("expected writer closed")
	}
}

func TestKafkaPublisher_PropagatesWriteError(t *testing.T) {
	pub := newKafkaPublisher(&stubWriter{err: errors.New("broker down")}, nil)
	if err := pub.Submit(context.Background(), sampleOrder()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRecorder(t *testing.T) {
	repo := &stubRepo{}
	rec := NewRecorder(repo)
	if err := rec.Submit(context.Background(), sampleOrder()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected order stored")
	}

	repo.err = errors.New("db down")
	if err := rec.Submit(context.Background(), sampleOrder()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestInstrument_PassesThrough(t *testing.T) {
	want := errors.New("boom")
	inst := Instrument("test", NewRecorder(&stubRepo{err: want}))
	if err := inst.Submit(context.Background(), sampleOrder()); !errors.Is(err, want) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestFromConfig(t *testing.T) {
	sub, closeFn, err := FromConfig(config.Config{OrderSubmitter: config.SubmitterStub}, nil, nil)
	if err != nil || sub == nil || closeFn() != nil {
		t.Fatalf("stub: %v", err)
	}
	if _, _, err := FromConfig(config.Config{OrderSubmitter: config.SubmitterPostgres}, nil, nil); err == nil {
		t.Fatalf("postgres without pool should fail")
	}
	if _, _, err := FromConfig(config.Config{OrderSubmitter: "carrier-pigeon"}, nil, nil); err == nil {
		t.Fatalf("unknown submitter should fail")
	}
	if _, _, err := FromConfig(config.Config{OrderSubmitter: config.SubmitterKafka}, nil, nil); err == nil {
		t.Fatalf("kafka without brokers should fail")
	}
}
