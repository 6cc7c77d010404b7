package state

import (
	"context"
	"testing"
)

func TestEnvRoundTrip(t *testing.T) {
	ctx := ContextWithEnv(context.Background())

	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("no environment in context")
	}
	env.NoDirs = true
	if again := EnvFromContext(ctx); again != env || !again.NoDirs {
		t.Error("context must carry a single shared environment")
	}
	if env.Uptime() < 0 {
		t.Error("uptime went backwards")
	}
}

func TestEnvFromContextMissing(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for context without environment")
		}
	}()
	EnvFromContext(context.Background())
}
