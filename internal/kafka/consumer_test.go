package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/lmnh_kiosk/internal/domain"
	"github.com/Gunvolt24/lmnh_kiosk/internal/kafka/mocks"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// runAsync запускает Consumer.Run в отдельной горутине и возвращает канал с ошибкой.
func runAsync(ctx context.Context, c *Consumer) <-chan error {
	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(ctx) }()
	return errCh
}

func newTestConsumer(r reader, h messageHandler, limit int) *Consumer {
	return &Consumer{
		reader: r, handler: h, log: nopLogger{},
		limit:          limit,
		pollTimeout:    10 * time.Millisecond,
		processTimeout: 30 * time.Millisecond,
	}
}

func testReaderConfig() kafka.ReaderConfig {
	return kafka.ReaderConfig{Topic: "lmnh", GroupID: "g1", Brokers: []string{"b:9092"}}
}

// blockUntilDone - FetchMessage, который ждёт отмены своего контекста.
func blockUntilDone(ctx context.Context) (kafka.Message, error) {
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func waitErr(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for Run to stop")
		return nil
	}
}

// Успешная обработка + коммит, затем отмена контекста
func TestRun_Saved_Commits(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	h := mocks.NewMockmessageHandler(ctrl)

	r.EXPECT().Config().Return(testReaderConfig()).AnyTimes()
	r.EXPECT().FetchMessage(gomock.Any()).
		Return(kafka.Message{Offset: 1, Value: []byte("ok")}, nil)
	h.EXPECT().HandleMessage(gomock.Any(), []byte("ok")).Return(domain.OutcomeRatingSaved, nil)
	r.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Return(nil)
	// дальше только пустые опросы до отмены
	r.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(blockUntilDone).AnyTimes()

	c := newTestConsumer(r, h, -1)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := runAsync(ctx, c)

	time.Sleep(40 * time.Millisecond)
	cancel()

	if err := waitErr(t, errCh); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

// Отклонённое сообщение => тоже коммитим
func TestRun_Rejected_Commits(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	h := mocks.NewMockmessageHandler(ctrl)

	r.EXPECT().Config().Return(testReaderConfig()).AnyTimes()
	gomock.InOrder(
		r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{Offset: 7, Value: []byte("bad")}, nil),
		h.EXPECT().HandleMessage(gomock.Any(), []byte("bad")).Return(domain.OutcomeRejected, nil),
		r.EXPECT().CommitMessages(gomock.Any(), kafka.Message{Offset: 7, Value: []byte("bad")}).Return(nil),
	)

	c := newTestConsumer(r, h, 1)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("want nil after limit, got %v", err)
	}
}

// Фатальная ошибка обработки => выходим с ошибкой, без коммита
func TestRun_HandlerError_StopsWithoutCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	h := mocks.NewMockmessageHandler(ctrl)

	r.EXPECT().Config().Return(testReaderConfig()).AnyTimes()
	r.EXPECT().FetchMessage(gomock.Any()).
		Return(kafka.Message{Offset: 2, Value: []byte("x")}, nil)
	dbErr := errors.New("db down")
	h.EXPECT().HandleMessage(gomock.Any(), []byte("x")).Return(domain.Outcome(0), dbErr)
	// CommitMessages не ожидается: лишний вызов уронит тест как "unexpected call".

	c := newTestConsumer(r, h, -1)

	if err := c.Run(context.Background()); !errors.Is(err, dbErr) {
		t.Fatalf("want wrapped db error, got %v", err)
	}
}

// Ошибка брокера (не таймаут опроса) фатальна
func TestRun_FetchError_IsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	h := mocks.NewMockmessageHandler(ctrl)

	r.EXPECT().Config().Return(testReaderConfig()).AnyTimes()
	brokerErr := errors.New("broker error")
	r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{}, brokerErr)

	c := newTestConsumer(r, h, -1)

	if err := c.Run(context.Background()); !errors.Is(err, brokerErr) {
		t.Fatalf("want broker error, got %v", err)
	}
}

// Лимит считает только полученные сообщения, пустые опросы не в счёт
func TestRun_LimitCountsReceivedMessagesOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	h := mocks.NewMockmessageHandler(ctrl)

	r.EXPECT().Config().Return(testReaderConfig()).AnyTimes()
	gomock.InOrder(
		r.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(blockUntilDone), // пустой опрос
		r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{Offset: 1, Value: []byte("a")}, nil),
		r.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(blockUntilDone), // пустой опрос
		r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{Offset: 2, Value: []byte("b")}, nil),
	)
	h.EXPECT().HandleMessage(gomock.Any(), gomock.Any()).Return(domain.OutcomeHelpSaved, nil).Times(2)
	r.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	c := newTestConsumer(r, h, 2)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("want nil after limit, got %v", err)
	}
}

// Limit == 0 - ни одного опроса
func TestRun_ZeroLimit_NoFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	h := mocks.NewMockmessageHandler(ctrl)

	r.EXPECT().Config().Return(testReaderConfig()).AnyTimes()

	c := newTestConsumer(r, h, 0)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

// CommitMessages вернул ошибку - получаем предупреждение; цикл живёт дальше
func TestRun_CommitWarnOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	h := mocks.NewMockmessageHandler(ctrl)

	r.EXPECT().Config().Return(testReaderConfig()).AnyTimes()
	r.EXPECT().FetchMessage(gomock.Any()).
		Return(kafka.Message{Offset: 3, Value: []byte("ok")}, nil).Times(2)
	h.EXPECT().HandleMessage(gomock.Any(), []byte("ok")).Return(domain.OutcomeRatingSaved, nil).Times(2)
	r.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).
		Return(errors.New("temporary")).Times(2)

	c := newTestConsumer(r, h, 2)

	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

// Handler получает контекст с дедлайном processTimeout
func TestRun_ProcessTimeoutApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	h := mocks.NewMockmessageHandler(ctrl)

	r.EXPECT().Config().Return(testReaderConfig()).AnyTimes()
	r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{Offset: 1, Value: []byte("ok")}, nil)
	h.EXPECT().HandleMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ []byte) (domain.Outcome, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Errorf("expected deadline on handler context")
			}
			return domain.OutcomeRatingSaved, nil
		})
	r.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Return(nil)

	c := newTestConsumer(r, h, 1)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

// Close прокидывает вызов в reader.Close() ровно один раз
func TestClose_DelegatesToReaderOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	h := mocks.NewMockmessageHandler(ctrl)

	r.EXPECT().Close().Return(nil).Times(1)

	c := newTestConsumer(r, h, -1)
	if err := c.Close(); err != nil {
		t.Fatalf("expected nil from Close, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("expected nil from second Close, got %v", err)
	}
}
