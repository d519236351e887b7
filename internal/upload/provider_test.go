package upload

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProvider implements Provider for registry tests.
type mockProvider struct {
	name       string
	configured bool
	relayed    []string
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) Configure(config map[string]any) error {
	m.configured = true
	return nil
}

func (m *mockProvider) Upload(ctx context.Context, reader io.Reader, filename string, size int64) (*Result, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	m.relayed = append(m.relayed, filename+":"+string(content))
	return &Result{Success: true, FileName: filename, Size: int64(len(content))}, nil
}

func TestProviderRegistry(t *testing.T) {
	RegisterProvider("test-provider", func() Provider {
		return &mockProvider{name: "test-provider"}
	})

	provider, err := NewProvider("test-provider")
	require.NoError(t, err)
	assert.Equal(t, "test-provider", provider.Name())

	_, err = NewProvider("unknown-provider")
	assert.Error(t, err)
}

func TestBuiltinProvidersRegistered(t *testing.T) {
	provider, err := NewProvider("minio")
	require.NoError(t, err)
	assert.Equal(t, "minio", provider.Name())
}

func TestMockProviderRoundTrip(t *testing.T) {
	provider := &mockProvider{name: "test"}

	require.NoError(t, provider.Configure(map[string]any{"k": "v"}))
	assert.True(t, provider.configured)

	res, err := provider.Upload(context.Background(), strings.NewReader("test content"), "file.txt", -1)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "file.txt", res.FileName)
	assert.Equal(t, int64(len("test content")), res.Size)
	assert.Equal(t, []string{"file.txt:test content"}, provider.relayed)
}

func TestMinioProviderConfigValidation(t *testing.T) {
	cases := []struct {
		name   string
		config map[string]any
		errMsg string
	}{
		{
			name:   "missing endpoint",
			config: map[string]any{},
			errMsg: "endpoint is required",
		},
		{
			name: "missing access_key",
			config: map[string]any{
				"endpoint": "localhost:9000",
			},
			errMsg: "access_key is required",
		},
		{
			name: "missing secret_key",
			config: map[string]any{
				"endpoint":   "localhost:9000",
				"access_key": "minioadmin",
			},
			errMsg: "secret_key is required",
		},
		{
			name: "missing bucket",
			config: map[string]any{
				"endpoint":   "localhost:9000",
				"access_key": "minioadmin",
				"secret_key": "minioadmin",
			},
			errMsg: "bucket is required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := NewMinioProvider()
			err := provider.Configure(tc.config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestMinioProviderNotConfigured(t *testing.T) {
	provider := NewMinioProvider()

	_, err := provider.Upload(context.Background(), strings.NewReader("x"), "file.txt", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")

	assert.Error(t, provider.Ping(context.Background()))
}

func TestConfigValueHelpers(t *testing.T) {
	config := map[string]any{
		"endpoint": "minio.local:9000",
		"secure":   "false",
		"retries":  float64(3), // JSON numbers decode as float64
		"timeout":  "15",
	}

	v, ok := StringValue(config, "endpoint")
	assert.True(t, ok)
	assert.Equal(t, "minio.local:9000", v)

	_, ok = StringValue(config, "missing")
	assert.False(t, ok)

	assert.Equal(t, "fallback", StringValueDefault(config, "missing", "fallback"))
	assert.Equal(t, false, BoolValue(config, "secure", true))
	assert.Equal(t, true, BoolValue(config, "missing", true))
	assert.Equal(t, 3, IntValue(config, "retries", 0))
	assert.Equal(t, 15, IntValue(config, "timeout", 0))
	assert.Equal(t, 9, IntValue(config, "missing", 9))
}
