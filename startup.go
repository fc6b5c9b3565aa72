package ifsc_integration

import (
	"context"
	"log/slog"

	"github.com/rotisserie/eris"
	iiConfig "github.com/voxtmault/ifsc-integration/config"
	iiUtil "github.com/voxtmault/ifsc-integration/utils"
)

// ValidateConfig checks every configuration section before any service is built.
func ValidateConfig(ctx context.Context, cfg *iiConfig.InternalConfig) error {
	sections := []struct {
		name string
		obj  any
	}{
		{"ifsc", &cfg.IFSCConfig},
		{"proxy", &cfg.ForwardProxyConfig},
		{"logging", &cfg.LoggingConfig},
		{"http", &cfg.HTTPConfig},
		{"tracing", &cfg.TracingConfig},
	}

	for _, section := range sections {
		if err := iiUtil.ValidateStruct(ctx, section.obj); err != nil {
			slog.Debug("Invalid configuration section", "section", section.name, "reason", err)
			return eris.Wrapf(err, "invalid %s configuration", section.name)
		}
	}

	return nil
}
