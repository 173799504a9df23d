package telemetry

import (
	"context"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include query variables; dev only
	SlowQueryThresh time.Duration // default 200ms
	DBSystem        string        // "sqlite" or "postgresql"
}

type queryStartKey struct{}

// DBTracingPlugin wraps the otelgorm plugin with slow query marking.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a new database tracing plugin.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

// Register installs otelgorm and the slow query callbacks on db.
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBSystem)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	cb := db.Callback()
	steps := []struct {
		name string
		err  error
	}{
		{"create:before", cb.Create().Before("gorm:create").Register("pm_timing:before_create", before)},
		{"query:before", cb.Query().Before("gorm:query").Register("pm_timing:before_query", before)},
		{"update:before", cb.Update().Before("gorm:update").Register("pm_timing:before_update", before)},
		{"delete:before", cb.Delete().Before("gorm:delete").Register("pm_timing:before_delete", before)},
		{"create:after", cb.Create().After("gorm:create").Register("pm_slow:create", p.markSlow)},
		{"query:after", cb.Query().After("gorm:query").Register("pm_slow:query", p.markSlow)},
		{"update:after", cb.Update().After("gorm:update").Register("pm_slow:update", p.markSlow)},
		{"delete:after", cb.Delete().After("gorm:delete").Register("pm_slow:delete", p.markSlow)},
	}
	for _, s := range steps {
		if s.err != nil {
			return s.err
		}
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", p.config.DBSystem),
	)
	return nil
}

func (p *DBTracingPlugin) markSlow(tx *gorm.DB) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > p.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}
