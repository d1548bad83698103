package telemetry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ContentMetrics counts publishing, affiliate and scheduler activity.
type ContentMetrics struct {
	postsPublished   *Counter
	linkClicks       *Counter
	commissions      *Counter
	commissionAmount *Counter
	jobRuns          *Counter
	jobDuration      *Histogram
	jobProcessed     *Counter
}

// NewContentMetrics creates the instruments on meter.
func NewContentMetrics(meter metric.Meter) (*ContentMetrics, error) {
	m := &ContentMetrics{}
	var err error

	if m.postsPublished, err = NewCounter(meter, "cms_posts_published_total", "Posts and pages that went live", "{posts}"); err != nil {
		return nil, err
	}
	if m.linkClicks, err = NewCounter(meter, "cms_partner_link_clicks_total", "Partner link clicks by outcome", "{clicks}"); err != nil {
		return nil, err
	}
	if m.commissions, err = NewCounter(meter, "cms_commissions_total", "Commission state changes", "{commissions}"); err != nil {
		return nil, err
	}
	if m.commissionAmount, err = NewCounter(meter, "cms_commission_amount_cents_total", "Commission amount in minor units by status", "{cents}"); err != nil {
		return nil, err
	}
	if m.jobRuns, err = NewCounter(meter, "cms_scheduler_job_runs_total", "Scheduled job executions", "{runs}"); err != nil {
		return nil, err
	}
	if m.jobDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "cms_scheduler_job_duration_seconds",
		Description: "Duration of scheduled job executions",
		Unit:        "s",
		Boundaries:  []float64{0.01, 0.1, 0.5, 1, 5, 30, 60, 300},
	}); err != nil {
		return nil, err
	}
	if m.jobProcessed, err = NewCounter(meter, "cms_scheduler_items_processed_total", "Items processed by scheduled jobs", "{items}"); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordPostPublished counts a post or page going live.
func (m *ContentMetrics) RecordPostPublished(ctx context.Context, tenantID uuid.UUID, postType string) {
	m.postsPublished.Inc(ctx, AttrTenantID.String(tenantID.String()), AttrPostType.String(postType))
}

// Click outcomes.
const (
	ClickCounted   = "counted"
	ClickDuplicate = "duplicate"
	ClickInactive  = "inactive"
)

// RecordLinkClick counts a partner link hit with its outcome.
func (m *ContentMetrics) RecordLinkClick(ctx context.Context, tenantID uuid.UUID, outcome string) {
	m.linkClicks.Inc(ctx, AttrTenantID.String(tenantID.String()), AttrClickOutcome.String(outcome))
}

// RecordCommission counts a commission entering status along with its amount.
func (m *ContentMetrics) RecordCommission(ctx context.Context, tenantID uuid.UUID, status string, amount decimal.Decimal) {
	attrs := []attribute.KeyValue{AttrTenantID.String(tenantID.String()), AttrCommissionStatus.String(status)}
	m.commissions.Inc(ctx, attrs...)
	if cents := amount.Shift(2).Round(0).IntPart(); cents > 0 {
		m.commissionAmount.Add(ctx, cents, attrs...)
	}
}

// RecordJobRun records one scheduled job execution.
func (m *ContentMetrics) RecordJobRun(ctx context.Context, job, status string, elapsed time.Duration, processed int) {
	attrs := []attribute.KeyValue{AttrJobName.String(job), AttrJobStatus.String(status)}
	m.jobRuns.Inc(ctx, attrs...)
	m.jobDuration.RecordDuration(ctx, elapsed, attrs...)
	if processed > 0 {
		m.jobProcessed.Add(ctx, int64(processed), AttrJobName.String(job))
	}
}
