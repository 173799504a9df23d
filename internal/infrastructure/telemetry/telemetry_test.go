package telemetry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false, ServiceName: "pm-tool"}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestStartServiceSpan_NoopProvider(t *testing.T) {
	ctx, span := StartServiceSpan(context.Background(), "ledger", "apply")
	defer span.End()

	SetAttributes(span, SpanAttrMaterialID, "m-1", SpanAttrQuantity, 5, 42, "skipped")
	RecordError(span, errors.New("boom"))
	RecordError(nil, errors.New("ignored"))

	assert.Equal(t, "", GetTraceID(ctx))
}

func TestSamplerFor(t *testing.T) {
	assert.Contains(t, samplerFor(1).Description(), "AlwaysOn")
	assert.Contains(t, samplerFor(0).Description(), "AlwaysOff")
	assert.Contains(t, samplerFor(0.5).Description(), "TraceIDRatioBased")
	assert.True(t, strings.HasPrefix(samplerFor(0.5).Description(), "ParentBased"))
}

func TestDBTracingPlugin_Register(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	disabled := NewDBTracingPlugin(DBTracingConfig{Enabled: false}, zap.NewNop())
	assert.NoError(t, disabled.Register(db))

	enabled := NewDBTracingPlugin(DBTracingConfig{Enabled: true, DBSystem: "sqlite"}, zap.NewNop())
	require.NoError(t, enabled.Register(db))

	var n int
	require.NoError(t, db.Raw("SELECT 1").Scan(&n).Error)
	assert.Equal(t, 1, n)
}
