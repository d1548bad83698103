package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Job names
const (
	JobPublishScheduledPosts = "publish-scheduled-posts"
	JobRollupPartnerEarnings = "rollup-partner-earnings"
)

// ScheduledPublisher publishes future posts whose publish time has passed
type ScheduledPublisher interface {
	PublishDue(ctx context.Context, tenantID uuid.UUID, now time.Time) (int, error)
}

// EarningsRoller materialises the earnings of every active partner for a period
type EarningsRoller interface {
	RollupEarnings(ctx context.Context, tenantID uuid.UUID, period string) (int, error)
}

// PublishScheduledPostsJob flips due `future` posts to `publish`
type PublishScheduledPostsJob struct {
	publisher ScheduledPublisher
}

// NewPublishScheduledPostsJob creates the job
func NewPublishScheduledPostsJob(publisher ScheduledPublisher) *PublishScheduledPostsJob {
	return &PublishScheduledPostsJob{publisher: publisher}
}

// Name implements Job
func (j *PublishScheduledPostsJob) Name() string { return JobPublishScheduledPosts }

// Run implements Job
func (j *PublishScheduledPostsJob) Run(ctx context.Context, tenantID uuid.UUID, now time.Time) (int, error) {
	return j.publisher.PublishDue(ctx, tenantID, now)
}

// RollupEarningsJob recomputes the current month's earnings. During the first
// day of a month the previous month is recomputed too so late approvals land.
type RollupEarningsJob struct {
	roller EarningsRoller
}

// NewRollupEarningsJob creates the job
func NewRollupEarningsJob(roller EarningsRoller) *RollupEarningsJob {
	return &RollupEarningsJob{roller: roller}
}

// Name implements Job
func (j *RollupEarningsJob) Name() string { return JobRollupPartnerEarnings }

// Run implements Job
func (j *RollupEarningsJob) Run(ctx context.Context, tenantID uuid.UUID, now time.Time) (int, error) {
	total := 0
	for _, period := range rollupPeriods(now) {
		n, err := j.roller.RollupEarnings(ctx, tenantID, period)
		total += n
		if err != nil {
			return total, fmt.Errorf("rollup %s: %w", period, err)
		}
	}
	return total, nil
}

func rollupPeriods(now time.Time) []string {
	now = now.UTC()
	current := now.Format("2006-01")
	if now.Day() != 1 {
		return []string{current}
	}
	previous := now.AddDate(0, 0, -1).Format("2006-01")
	return []string{previous, current}
}
