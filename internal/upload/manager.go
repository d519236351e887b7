package upload

import (
	"fmt"
)

// ProviderFactory creates a fresh provider instance.
type ProviderFactory func() Provider

// Registry maps provider names to factories. The serve and upload commands
// look the configured relay backend up here by name.
var Registry = make(map[string]ProviderFactory)

// RegisterProvider makes a relay backend available under name. Providers
// register themselves at init time.
func RegisterProvider(name string, factory ProviderFactory) {
	Registry[name] = factory
}

// NewProvider creates an unconfigured provider instance by name; callers
// must Configure it before relaying anything.
func NewProvider(name string) (Provider, error) {
	factory, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown upload provider: %s", name)
	}
	return factory(), nil
}

// The MinIO backend lives in this package; the gofile backend registers
// itself from its own package init.
func init() {
	RegisterProvider("minio", func() Provider {
		return NewMinioProvider()
	})
}
