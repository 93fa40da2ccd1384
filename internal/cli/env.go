package cli

import (
	"context"

	"go.uber.org/zap"

	"mmtype/internal/config"
)

type envKey struct{}

// Env is what the subcommands share once the command line is parsed.
type Env struct {
	Cfg config.Config
	Log *zap.Logger
	// closeLog releases the log destination file.
	closeLog func() error
}

func EnvFromContext(ctx context.Context) *Env {
	if env, ok := ctx.Value(envKey{}).(*Env); ok {
		return env
	}
	panic("cli env not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &Env{Cfg: config.Default(), Log: zap.NewNop(), closeLog: func() error { return nil }})
}
