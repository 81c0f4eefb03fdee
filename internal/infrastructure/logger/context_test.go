package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.NotNil(t, FromContext(nil))

	l := zap.NewExample()
	assert.Same(t, l, FromContext(WithContext(context.Background(), l)))
}

func TestWithRequestIDAndUser(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx, _ := WithRequestID(context.Background(), base, "req-1")
	ctx, _ = WithUser(ctx, FromContext(ctx), 7, "a@b.com")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "a@b.com", GetUserEmail(ctx))

	FromContext(ctx).Info("done")
	logs := recorded.All()
	require.Len(t, logs, 1)
	fields := logs[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, int64(7), fields["user_id"])
	assert.Equal(t, "a@b.com", fields["user_email"])
}

func TestGetters_EmptyContext(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
	assert.Empty(t, GetUserEmail(context.Background()))
}
