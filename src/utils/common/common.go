package common

import (
	"context"
	"errors"

	"github.com/fundflare/mirror/src/utils/config"
)

type contextKey int

const configKey contextKey = iota

// Puts the configuration into the context, so it doesn't need to be passed around explicitly
func SetConfig(ctx context.Context, config *config.Config) context.Context {
	return context.WithValue(ctx, configKey, config)
}

func GetConfig(ctx context.Context) (*config.Config, error) {
	out, ok := ctx.Value(configKey).(*config.Config)
	if !ok {
		return nil, errors.New("config not present in the context")
	}
	return out, nil
}
