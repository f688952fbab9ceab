package storefront

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/storebot/backend/internal/domain/commerce"
)

// MockPlatform is a mock implementation of commerce.Platform
type MockPlatform struct {
	mock.Mock
}

func (m *MockPlatform) ListProducts(ctx context.Context, pageSize int) ([]commerce.Product, error) {
	args := m.Called(ctx, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]commerce.Product), args.Error(1)
}

func (m *MockPlatform) GetProduct(ctx context.Context, productID int64) (*commerce.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.Product), args.Error(1)
}

func (m *MockPlatform) CreateOrder(ctx context.Context, order *commerce.OrderRequest) (*commerce.OrderConfirmation, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.OrderConfirmation), args.Error(1)
}

// MockMessenger is a mock implementation of Messenger
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendText(ctx context.Context, chatID int64, text string, opts *MessageOptions) error {
	args := m.Called(ctx, chatID, text, opts)
	return args.Error(0)
}

func (m *MockMessenger) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, opts *MessageOptions) error {
	args := m.Called(ctx, chatID, photoURL, caption, opts)
	return args.Error(0)
}

func (m *MockMessenger) AckCallback(ctx context.Context, callbackID, text string) error {
	args := m.Called(ctx, callbackID, text)
	return args.Error(0)
}
