package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucianotavernard/order-svc/internal/service/models/outbox"
)

type fakeOutboxRepo struct {
	pending      []outbox.Message
	pendingErr   error
	deleted      []int64
	retryUpdates []retryUpdate
}

type retryUpdate struct {
	id          int64
	retryCount  int
	lastError   string
	nextRetryAt time.Time
}

func (r *fakeOutboxRepo) Insert(ctx context.Context, msg outbox.Message) error {
	return errors.New("not implemented")
}

func (r *fakeOutboxRepo) GetPendingMessages(ctx context.Context, limit int) ([]outbox.Message, error) {
	if r.pendingErr != nil {
		return nil, r.pendingErr
	}
	if limit < len(r.pending) {
		return r.pending[:limit], nil
	}

	return r.pending, nil
}

func (r *fakeOutboxRepo) Delete(ctx context.Context, id int64) error {
	r.deleted = append(r.deleted, id)

	return nil
}

func (r *fakeOutboxRepo) UpdateRetry(
	ctx context.Context,
	id int64,
	retryCount int,
	lastError string,
	nextRetryAt time.Time,
) error {
	r.retryUpdates = append(r.retryUpdates, retryUpdate{
		id:          id,
		retryCount:  retryCount,
		lastError:   lastError,
		nextRetryAt: nextRetryAt,
	})

	return nil
}

type fakePublisher struct {
	err       error
	published []amqp.Publishing
	keys      []string
}

func (p *fakePublisher) Publish(
	exchange, key string,
	mandatory, immediate bool,
	msg amqp.Publishing,
) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, msg)
	p.keys = append(p.keys, key)

	return nil
}

func pendingMessage(id int64, retryCount int) outbox.Message {
	return outbox.Message{
		ID:          id,
		QueueName:   "oms.order.created",
		RoutingKey:  "oms.order.created",
		Payload:     []byte(`{"id":"o1"}`),
		ContentType: "application/json",
		RetryCount:  retryCount,
		MaxRetries:  5,
	}
}

func TestProcessMessages_PublishesAndDeletes(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []outbox.Message{pendingMessage(1, 0), pendingMessage(2, 0)}}
	pub := &fakePublisher{}
	w := NewWorker(repo, pub)

	w.processMessages(context.Background())

	require.Len(t, pub.published, 2)
	assert.Equal(t, "application/json", pub.published[0].ContentType)
	assert.Equal(t, []byte(`{"id":"o1"}`), pub.published[0].Body)
	assert.Equal(t, []string{"oms.order.created", "oms.order.created"}, pub.keys)
	assert.Equal(t, []int64{1, 2}, repo.deleted)
	assert.Empty(t, repo.retryUpdates)
}

func TestProcessMessages_PublishFailureSchedulesRetry(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []outbox.Message{pendingMessage(7, 1)}}
	pub := &fakePublisher{err: errors.New("broker unreachable")}
	w := NewWorker(repo, pub)

	before := time.Now()
	w.processMessages(context.Background())

	assert.Empty(t, repo.deleted)
	require.Len(t, repo.retryUpdates, 1)

	update := repo.retryUpdates[0]
	assert.Equal(t, int64(7), update.id)
	assert.Equal(t, 2, update.retryCount)
	assert.Equal(t, "broker unreachable", update.lastError)

	// retry 2 backs off 2^2 * 30 = 120 seconds
	assert.WithinDuration(t, before.Add(120*time.Second), update.nextRetryAt, 5*time.Second)
}

func TestProcessMessages_RepositoryFailureIsSkipped(t *testing.T) {
	repo := &fakeOutboxRepo{pendingErr: errors.New("connection refused")}
	pub := &fakePublisher{}
	w := NewWorker(repo, pub)

	w.processMessages(context.Background())

	assert.Empty(t, pub.published)
	assert.Empty(t, repo.deleted)
}

func TestProcessMessages_RespectsBatchSize(t *testing.T) {
	repo := &fakeOutboxRepo{}
	for i := int64(1); i <= 10; i++ {
		repo.pending = append(repo.pending, pendingMessage(i, 0))
	}
	pub := &fakePublisher{}
	w := NewWorker(repo, pub)
	w.batchSize = 4

	w.processMessages(context.Background())

	assert.Len(t, pub.published, 4)
}

func TestStop_EndsStart(t *testing.T) {
	repo := &fakeOutboxRepo{}
	w := NewWorker(repo, &fakePublisher{})
	w.pollInterval = 10 * time.Millisecond

	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	w.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
