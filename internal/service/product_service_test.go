package service

import (
	"context"
	"errors"
	"testing"

	"licenseshop/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func TestProductService_GetAll(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	testProducts := []model.Product{
		{ID: 1, Slug: "antivirus", Name: "Antivirus", BasePrice: 80000},
		{ID: 2, Slug: "vpn-pro", Name: "VPN Pro", BasePrice: 150000},
	}

	tests := []struct {
		name          string
		limit         int
		offset        int
		expectedLimit int
		mockReturn    []model.Product
		mockError     error
		expectError   bool
	}{
		{
			name:          "Success with valid pagination",
			limit:         10,
			offset:        0,
			expectedLimit: 10,
			mockReturn:    testProducts,
		},
		{
			name:          "Zero limit defaults to 10",
			limit:         0,
			offset:        0,
			expectedLimit: 10,
			mockReturn:    testProducts,
		},
		{
			name:          "Limit exceeding max caps at 100",
			limit:         500,
			offset:        0,
			expectedLimit: 100,
			mockReturn:    testProducts,
		},
		{
			name:          "Negative offset defaults to 0",
			limit:         10,
			offset:        -5,
			expectedLimit: 10,
			mockReturn:    testProducts,
		},
		{
			name:          "Repository error",
			limit:         10,
			offset:        0,
			expectedLimit: 10,
			mockError:     errors.New("database error"),
			expectError:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := NewProductService(mockRepo, logger)

			expectedOffset := tt.offset
			if expectedOffset < 0 {
				expectedOffset = 0
			}

			mockRepo.On("GetAll", ctx, tt.expectedLimit, expectedOffset).
				Return(tt.mockReturn, tt.mockError)

			products, err := service.GetAll(ctx, tt.limit, tt.offset)

			if tt.expectError {
				require.Error(t, err)
				assert.Nil(t, products)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.mockReturn, products)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProductService_Get(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	testProduct := &model.Product{ID: 1, Slug: "vpn-pro", Name: "VPN Pro", BasePrice: 150000}

	t.Run("Numeric identifier resolves by ID", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewProductService(mockRepo, logger)

		mockRepo.On("GetByID", ctx, int64(1)).Return(testProduct, nil)

		product, err := service.Get(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, testProduct, product)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Non-numeric identifier resolves by slug", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewProductService(mockRepo, logger)

		mockRepo.On("GetBySlug", ctx, "vpn-pro").Return(testProduct, nil)

		product, err := service.Get(ctx, "vpn-pro")
		require.NoError(t, err)
		assert.Equal(t, testProduct, product)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewProductService(mockRepo, logger)

		mockRepo.On("GetBySlug", ctx, "nope").Return(nil, nil)

		product, err := service.Get(ctx, "nope")
		require.Error(t, err)
		assert.Equal(t, model.ErrProductNotFound, err)
		assert.Nil(t, product)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty identifier", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewProductService(mockRepo, logger)

		product, err := service.Get(ctx, "")
		require.Error(t, err)
		assert.Equal(t, model.ErrProductNotFound, err)
		assert.Nil(t, product)
	})

	t.Run("Repository error", func(t *testing.T) {
		mockRepo := new(MockProductRepository)
		service := NewProductService(mockRepo, logger)

		mockRepo.On("GetByID", ctx, int64(1)).Return(nil, errors.New("database error"))

		product, err := service.Get(ctx, "1")
		require.Error(t, err)
		assert.Nil(t, product)
		mockRepo.AssertExpectations(t)
	})
}
