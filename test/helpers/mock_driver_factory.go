package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/travian-go/internal/domain/ports"
)

// MockDriverFactory hands out a fixed driver, tracking how many sessions
// were requested.
type MockDriverFactory struct {
	mu      sync.Mutex
	Driver  ports.Driver
	Err     error
	Created int
}

func NewMockDriverFactory(driver ports.Driver) *MockDriverFactory {
	return &MockDriverFactory{Driver: driver}
}

func (f *MockDriverFactory) NewDriver(_ context.Context) (ports.Driver, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	f.Created++
	return f.Driver, nil
}
