package telemetry

import (
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const queryStartKey = "telemetry:query_start"

// DBConfig controls GORM instrumentation.
type DBConfig struct {
	Tracing bool
	// LogFullSQL keeps bind variables in span statements. Development only.
	LogFullSQL         bool
	SlowQueryThreshold time.Duration
}

// dbInstruments records per-statement duration and failures.
type dbInstruments struct {
	duration  *Histogram
	errors    *Counter
	slowAfter time.Duration
}

// InstrumentGORM registers otelgorm (when tracing is on) and callbacks that
// record query latency and errors on meter. Slow statements also get a
// db.slow attribute on their span.
func InstrumentGORM(db *gorm.DB, cfg DBConfig, meter metric.Meter, logger *zap.Logger) error {
	if cfg.Tracing {
		opts := []otelgorm.Option{otelgorm.WithDBName("postgresql")}
		if !cfg.LogFullSQL {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
			return err
		}
	}

	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        "cms_db_query_duration_seconds",
		Description: "Duration of database statements",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	if err != nil {
		return err
	}
	failures, err := NewCounter(meter, "cms_db_query_errors_total", "Database statements that failed", "{statements}")
	if err != nil {
		return err
	}

	slow := cfg.SlowQueryThreshold
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}
	inst := &dbInstruments{duration: duration, errors: failures, slowAfter: slow}

	if err := inst.register(db); err != nil {
		return err
	}
	logger.Info("Database instrumentation enabled",
		zap.Bool("tracing", cfg.Tracing),
		zap.Duration("slow_query_threshold", slow),
	)
	return nil
}

func (i *dbInstruments) register(db *gorm.DB) error {
	cb := db.Callback()
	regs := []error{
		cb.Create().Before("gorm:create").Register("telemetry:before_create", startTimer),
		cb.Create().After("gorm:create").Register("telemetry:after_create", i.observe("create")),
		cb.Query().Before("gorm:query").Register("telemetry:before_query", startTimer),
		cb.Query().After("gorm:query").Register("telemetry:after_query", i.observe("query")),
		cb.Update().Before("gorm:update").Register("telemetry:before_update", startTimer),
		cb.Update().After("gorm:update").Register("telemetry:after_update", i.observe("update")),
		cb.Delete().Before("gorm:delete").Register("telemetry:before_delete", startTimer),
		cb.Delete().After("gorm:delete").Register("telemetry:after_delete", i.observe("delete")),
		cb.Row().Before("gorm:row").Register("telemetry:before_row", startTimer),
		cb.Row().After("gorm:row").Register("telemetry:after_row", i.observe("row")),
		cb.Raw().Before("gorm:raw").Register("telemetry:before_raw", startTimer),
		cb.Raw().After("gorm:raw").Register("telemetry:after_raw", i.observe("raw")),
	}
	return errors.Join(regs...)
}

func startTimer(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

func (i *dbInstruments) observe(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		elapsed := time.Since(start)
		ctx := db.Statement.Context

		attrs := []attribute.KeyValue{AttrDBOperation.String(op), AttrDBTable.String(db.Statement.Table)}
		i.duration.RecordDuration(ctx, elapsed, attrs...)

		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			i.errors.Inc(ctx, attrs...)
		}
		if elapsed >= i.slowAfter {
			trace.SpanFromContext(ctx).SetAttributes(
				attribute.Bool("db.slow", true),
				attribute.Int64("db.duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
