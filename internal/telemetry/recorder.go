package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName  = "todo"
	loggerName = "todo"
)

type instruments struct {
	mutationTotal    metric.Int64Counter
	saveTotal        metric.Int64Counter
	loadDroppedTotal metric.Int64Counter
	themeToggleTotal metric.Int64Counter
	importTotal      metric.Int64Counter

	saveDurationHist metric.Float64Histogram
}

var (
	instOnce sync.Once
	inst     instruments
)

// initInstruments registers the metric instruments against the current
// global MeterProvider. Called by Init and lazily on first use.
func initInstruments() {
	instOnce.Do(func() {
		m := otel.GetMeterProvider().Meter(meterName)

		inst.mutationTotal, _ = m.Int64Counter("todo.mutations.total",
			metric.WithDescription("Task store mutations by operation"),
		)
		inst.saveTotal, _ = m.Int64Counter("todo.saves.total",
			metric.WithDescription("Task list saves"),
		)
		inst.loadDroppedTotal, _ = m.Int64Counter("todo.load.dropped.total",
			metric.WithDescription("Malformed task records dropped on load"),
		)
		inst.themeToggleTotal, _ = m.Int64Counter("todo.theme.toggles.total",
			metric.WithDescription("Theme toggles"),
		)
		inst.importTotal, _ = m.Int64Counter("todo.import.tasks.total",
			metric.WithDescription("Tasks imported from a remote source"),
		)
		inst.saveDurationHist, _ = m.Float64Histogram("todo.save.duration_ms",
			metric.WithDescription("Task list save latency in milliseconds"),
			metric.WithUnit("ms"),
		)
	})
}

// statusStr returns "ok" or "error" depending on whether err is nil.
func statusStr(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// emit sends an OTel log event with the given body and attributes.
func emit(ctx context.Context, body string, sev otellog.Severity, attrs ...otellog.KeyValue) {
	logger := global.GetLoggerProvider().Logger(loggerName)
	var r otellog.Record
	r.SetBody(otellog.StringValue(body))
	r.SetSeverity(sev)
	r.AddAttributes(attrs...)
	logger.Emit(ctx, r)
}

// errKV returns a log KeyValue with the error message, or empty string if nil.
func errKV(err error) otellog.KeyValue {
	if err != nil {
		return otellog.String("error", err.Error())
	}
	return otellog.String("error", "")
}

// severity returns SeverityInfo on success, SeverityError on failure.
func severity(err error) otellog.Severity {
	if err != nil {
		return otellog.SeverityError
	}
	return otellog.SeverityInfo
}

// RecordMutation records a task store mutation. changed is false for no-ops
// such as blank text or an unknown id.
func RecordMutation(ctx context.Context, op string, changed bool, err error) {
	initInstruments()
	status := statusStr(err)
	inst.mutationTotal.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("op", op),
			attribute.Bool("changed", changed),
			attribute.String("status", status),
		),
	)
	emit(ctx, "task."+op, severity(err),
		otellog.String("op", op),
		otellog.Bool("changed", changed),
		otellog.String("status", status),
		errKV(err),
	)
}

// RecordSave records a full task list write.
func RecordSave(ctx context.Context, count int, d time.Duration, err error) {
	initInstruments()
	status := statusStr(err)
	attrs := metric.WithAttributes(attribute.String("status", status))
	inst.saveTotal.Add(ctx, 1, attrs)
	inst.saveDurationHist.Record(ctx, float64(d.Microseconds())/1000, attrs)
	emit(ctx, "store.save", severity(err),
		otellog.Int("tasks", count),
		otellog.String("status", status),
		errKV(err),
	)
}

// RecordLoad records a task list load and how many records were dropped.
func RecordLoad(ctx context.Context, kept, dropped int, err error) {
	initInstruments()
	if dropped > 0 {
		inst.loadDroppedTotal.Add(ctx, int64(dropped))
	}
	sev := severity(err)
	if err == nil && dropped > 0 {
		sev = otellog.SeverityWarn
	}
	emit(ctx, "store.load", sev,
		otellog.Int("kept", kept),
		otellog.Int("dropped", dropped),
		errKV(err),
	)
}

// RecordThemeToggle records a theme toggle.
func RecordThemeToggle(ctx context.Context, theme string, err error) {
	initInstruments()
	status := statusStr(err)
	inst.themeToggleTotal.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("theme", theme),
			attribute.String("status", status),
		),
	)
	emit(ctx, "theme.toggle", severity(err),
		otellog.String("theme", theme),
		otellog.String("status", status),
		errKV(err),
	)
}

// RecordImport records an import run from a remote source.
func RecordImport(ctx context.Context, source string, imported int, err error) {
	initInstruments()
	status := statusStr(err)
	inst.importTotal.Add(ctx, int64(imported),
		metric.WithAttributes(
			attribute.String("source", source),
			attribute.String("status", status),
		),
	)
	emit(ctx, "import", severity(err),
		otellog.String("source", source),
		otellog.Int("imported", imported),
		otellog.String("status", status),
		errKV(err),
	)
}
