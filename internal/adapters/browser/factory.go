package browser

import (
	"context"

	"github.com/andrescamacho/travian-go/internal/application/common"
	"github.com/andrescamacho/travian-go/internal/domain/ports"
)

// Factory builds logged-in browser sessions. The executor calls it once at
// startup and again whenever a session dies mid-run.
type Factory struct {
	opts Options
}

var _ ports.DriverFactory = (*Factory)(nil)

func NewFactory(opts Options) *Factory {
	return &Factory{opts: opts}
}

func (f *Factory) NewDriver(ctx context.Context) (ports.Driver, error) {
	logger := common.LoggerFromContext(ctx)
	logger.Log(common.LevelInfo, "starting browser session", map[string]interface{}{
		"server":   f.opts.ServerURL,
		"headless": f.opts.Headless,
	})

	driver, err := NewChromeDriver(ctx, f.opts)
	if err != nil {
		return nil, err
	}
	return driver, nil
}
