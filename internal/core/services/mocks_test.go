package services

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
)

// MockEditBackend mocks driven.EditBackend.
type MockEditBackend struct {
	mock.Mock
}

func (m *MockEditBackend) Edit(ctx context.Context, req domain.EditRequest) (*domain.ProcessedFile, error) {
	args := m.Called(ctx, req)
	if f := args.Get(0); f != nil {
		return f.(*domain.ProcessedFile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEditBackend) Download(ctx context.Context, fileName string, w io.Writer) error {
	args := m.Called(ctx, fileName, w)
	return args.Error(0)
}

// MockGeometrySource mocks driven.PageGeometrySource.
type MockGeometrySource struct {
	mock.Mock
}

func (m *MockGeometrySource) PageGeometry(ctx context.Context, path string) ([]domain.PageGeometry, error) {
	args := m.Called(ctx, path)
	if g := args.Get(0); g != nil {
		return g.([]domain.PageGeometry), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockImageLoader mocks driven.ImageLoader.
type MockImageLoader struct {
	mock.Mock
}

func (m *MockImageLoader) Load(ctx context.Context, path string) (domain.ImagePayload, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(domain.ImagePayload), args.Error(1)
}

// MockPlanSource mocks driven.PlanSource.
type MockPlanSource struct {
	mock.Mock
}

func (m *MockPlanSource) Load(path string) (*domain.PlacementPlan, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlacementPlan), args.Error(1)
}
