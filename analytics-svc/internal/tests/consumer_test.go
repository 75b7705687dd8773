package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud-kitchen/analytics-svc/internal/domain"
	"cloud-kitchen/analytics-svc/internal/mocks"
	"cloud-kitchen/analytics-svc/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

func TestConsumer_ProcessEvent(t *testing.T) {
	tests := []struct {
		name           string
		event          domain.OrderEvent
		setupMockCache func(*mocks.SnapshotCache)
	}{
		{
			name:  "order created",
			event: domain.OrderEvent{Type: domain.EventOrderCreated, OrderID: 1},
			setupMockCache: func(mockCache *mocks.SnapshotCache) {
				mockCache.On("Invalidate", mock.Anything).Return(nil).Once()
			},
		},
		{
			name:  "status changed",
			event: domain.OrderEvent{Type: domain.EventOrderStatusChanged, OrderID: 1, Status: "delivered"},
			setupMockCache: func(mockCache *mocks.SnapshotCache) {
				mockCache.On("Invalidate", mock.Anything).Return(nil).Once()
			},
		},
		{
			name:  "invalidate error",
			event: domain.OrderEvent{Type: domain.EventOrderPaymentChanged, OrderID: 1},
			setupMockCache: func(mockCache *mocks.SnapshotCache) {
				mockCache.On("Invalidate", mock.Anything).Return(errors.New("redis error")).Once()
			},
		},
		{
			name:           "unknown type",
			event:          domain.OrderEvent{Type: "new_review", OrderID: 1},
			setupMockCache: func(mockCache *mocks.SnapshotCache) {},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockCache := mocks.NewSnapshotCache(t)
			testCase.setupMockCache(mockCache)

			consumer := &service.Consumer{Cache: mockCache}
			consumer.ProcessEvent(context.Background(), testCase.event)
		})
	}
}

func TestConsumer_Start(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := mocks.NewMessageReader(t)
	cache := mocks.NewSnapshotCache(t)

	reader.On("ReadMessage", mock.Anything).
		Return(kafka.Message{Value: []byte(`{"type":"order_created","orderId":5}`)}, nil).Once()
	reader.On("ReadMessage", mock.Anything).
		Return(kafka.Message{Value: []byte(`not json`)}, nil).Once()
	reader.On("ReadMessage", mock.Anything).
		Return(kafka.Message{Value: []byte(`{"type":"something_else","orderId":5}`)}, nil).Once()
	reader.On("ReadMessage", mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(kafka.Message{}, context.Canceled).Once()
	cache.On("Invalidate", mock.Anything).Return(nil).Once()

	done := make(chan struct{})
	go func() {
		service.NewConsumer(reader, cache).Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop after cancellation")
	}
}
