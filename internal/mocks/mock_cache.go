package mocks

import (
	"context"

	"healio/internal/nutrition"
	"healio/internal/oauth"

	"github.com/stretchr/testify/mock"
)

type MockSummaryCache struct {
	mock.Mock
}

func (m *MockSummaryCache) GetSummary(ctx context.Context, userID uint, day string) (*nutrition.Summary, bool, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*nutrition.Summary), args.Bool(1), args.Error(2)
}

func (m *MockSummaryCache) Version(ctx context.Context, userID uint, day string) (string, error) {
	args := m.Called(ctx, userID, day)
	return args.String(0), args.Error(1)
}

func (m *MockSummaryCache) SetSummary(ctx context.Context, userID uint, day, version string, summary *nutrition.Summary) error {
	args := m.Called(ctx, userID, day, version, summary)
	return args.Error(0)
}

func (m *MockSummaryCache) InvalidateDay(ctx context.Context, userID uint, day string) error {
	args := m.Called(ctx, userID, day)
	return args.Error(0)
}

func (m *MockSummaryCache) InvalidateUser(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockIDTokenVerifier struct {
	mock.Mock
}

func (m *MockIDTokenVerifier) Verify(ctx context.Context, rawIDToken string) (*oauth.GoogleIdentity, error) {
	args := m.Called(ctx, rawIDToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth.GoogleIdentity), args.Error(1)
}
