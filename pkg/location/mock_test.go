package location

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"github.com/Vepler/http-sdk/pkg/transport"
)

// mockProvider implements registry.Provider for testing.
type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Client(name string) (transport.Client, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(transport.Client), args.Error(1)
}

// mockClient implements transport.Client for testing.
type mockClient struct {
	mock.Mock
}

func (m *mockClient) Query(ctx context.Context, path string, query url.Values, out any, opts ...transport.RequestOption) error {
	args := m.Called(ctx, path, query, out, opts)
	return args.Error(0)
}

func (m *mockClient) Post(ctx context.Context, path string, body, out any, opts ...transport.RequestOption) error {
	args := m.Called(ctx, path, body, out, opts)
	return args.Error(0)
}

func (m *mockClient) Get(ctx context.Context, path string, opts ...transport.RequestOption) ([]byte, error) {
	args := m.Called(ctx, path, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockClient) Config() transport.Config {
	args := m.Called()
	return args.Get(0).(transport.Config)
}
