package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	"eats-backend/internal/events"
	testlog "eats-backend/internal/testutil"
)

type fakeSession struct {
	ctx context.Context

	mu     sync.Mutex
	marked int
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(*sarama.ConsumerMessage, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked++
}

func (s *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (s *fakeSession) Commit()                                  {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) Claims() map[string][]int32               { return nil }
func (s *fakeSession) MemberID() string                         { return "" }
func (s *fakeSession) GenerationID() int32                      { return 0 }

func (s *fakeSession) MarkedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marked
}

type fakeClaim struct {
	ch chan *sarama.ConsumerMessage
}

func (c fakeClaim) Topic() string              { return "t" }
func (c fakeClaim) Partition() int32           { return 0 }
func (c fakeClaim) InitialOffset() int64       { return 0 }
func (c fakeClaim) HighWaterMarkOffset() int64 { return 0 }
func (c fakeClaim) Messages() <-chan *sarama.ConsumerMessage {
	return c.ch
}

func oneMessage(value []byte) fakeClaim {
	ch := make(chan *sarama.ConsumerMessage, 1)
	ch <- &sarama.ConsumerMessage{Value: value}
	close(ch)
	return fakeClaim{ch: ch}
}

func encodeDTO(t *testing.T, dto EventDTO) []byte {
	t.Helper()
	b, err := json.Marshal(dto)
	require.NoError(t, err)
	return b
}

func TestConsumeClaim_BadJSON_Skips(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, events.OrderEvent) error {
			t.Fatal("handler must not be called")
			return nil
		},
	}
	h := &groupHandler{c: c}

	sess := &fakeSession{ctx: context.Background()}
	err := h.ConsumeClaim(sess, oneMessage([]byte("not-json")))
	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
	require.True(t, rec.Has("kafka bad json"))
}

func TestConsumeClaim_MalformedEvent_Skips(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	calls := 0
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, events.OrderEvent) error {
			calls++
			return nil
		},
	}
	h := &groupHandler{c: c}

	for _, dto := range []EventDTO{
		{Type: "status_changed", OrderID: 0},
		{Type: "   ", OrderID: 7},
	} {
		sess := &fakeSession{ctx: context.Background()}
		err := h.ConsumeClaim(sess, oneMessage(encodeDTO(t, dto)))
		require.NoError(t, err)
		require.Equal(t, 1, sess.MarkedCount())
	}
	require.Equal(t, 0, calls)
	require.True(t, rec.Has("kafka malformed event"))
}

func TestConsumeClaim_TransientError_StopsForRedelivery(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	sentinel := errors.New("db down")
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, events.OrderEvent) error {
			return sentinel
		},
	}
	h := &groupHandler{c: c}

	sess := &fakeSession{ctx: context.Background()}
	dto := EventDTO{Type: events.TypeCourierAssigned, OrderID: 7, OccurredAt: time.Now().UTC()}
	err := h.ConsumeClaim(sess, oneMessage(encodeDTO(t, dto)))
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, 0, sess.MarkedCount(), "unhandled message must stay unacknowledged")
}

func TestConsumeClaim_PermanentError_SkipsButMarks(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(context.Context, events.OrderEvent) error {
			return Permanent(errors.New("no such courier"))
		},
	}
	h := &groupHandler{c: c}

	sess := &fakeSession{ctx: context.Background()}
	dto := EventDTO{Type: events.TypeCourierAssigned, OrderID: 7}
	err := h.ConsumeClaim(sess, oneMessage(encodeDTO(t, dto)))
	require.NoError(t, err)
	require.Equal(t, 1, sess.MarkedCount())
	require.True(t, rec.Has("kafka handle failed permanently, skipping message"))
}

func TestConsumeClaim_Success_Marks(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	calls := 0
	c := &Consumer{
		logger: rec.Logger(),
		handler: func(_ context.Context, ev events.OrderEvent) error {
			calls++
			require.Equal(t, int64(7), ev.OrderID)
			require.Equal(t, events.TypeStatusChanged, ev.Type)
			return nil
		},
	}
	h := &groupHandler{c: c}

	sess := &fakeSession{ctx: context.Background()}
	dto := EventDTO{Type: " status_changed ", OrderID: 7, Status: " delivered "}
	err := h.ConsumeClaim(sess, oneMessage(encodeDTO(t, dto)))
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, 1, sess.MarkedCount())
}

