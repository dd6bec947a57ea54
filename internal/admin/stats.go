package admin

import (
	"context"
	"sort"
	"time"

	"ikigai/domain/session"
	"ikigai/internal"
	"ikigai/internal/errors"
	"ikigai/ports"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Overview aggregates the dashboard numbers for one period
type Overview struct {
	Period           string  `json:"period"`
	TotalSessions    int     `json:"totalSessions"`
	CompletedCount   int     `json:"completedCount"`
	AnalyzedCount    int     `json:"analyzedCount"`
	ConversionRate   float64 `json:"conversionRate"`
	RevenueEstimate  float64 `json:"revenueEstimate"`
	RevenueChangePct float64 `json:"revenueChangePct"`

	// Daily session creation trend: positive slope means growth
	DailyTrendSlope float64 `json:"dailyTrendSlope"`

	// Minutes from creation to analysis, over analyzed sessions
	MeanCompletionMinutes   float64 `json:"meanCompletionMinutes"`
	MedianCompletionMinutes float64 `json:"medianCompletionMinutes"`
}

// StatsService computes the admin dashboard numbers from the read side of
// the session store
type StatsService struct {
	reader     ports.AdminReader
	priceBasic int64
	logger     *internal.Logger

	now func() time.Time
}

// NewStatsService creates a stats service. priceBasic is the basic plan
// price in cents, used for the revenue estimate.
func NewStatsService(reader ports.AdminReader, priceBasic int64, logger *internal.Logger) *StatsService {
	return &StatsService{
		reader:     reader,
		priceBasic: priceBasic,
		logger:     logger,
		now:        time.Now,
	}
}

// PeriodStart resolves a dashboard period ("7d", "30d", "90d", "all") to its
// cutoff time. Unknown values fall back to 7 days.
func PeriodStart(period string, now time.Time) time.Time {
	switch period {
	case "30d":
		return now.AddDate(0, 0, -30)
	case "90d":
		return now.AddDate(0, 0, -90)
	case "all":
		return time.Time{}
	default:
		return now.AddDate(0, 0, -7)
	}
}

// Overview computes the dashboard numbers for the given period
func (s *StatsService) Overview(ctx context.Context, period string) (*Overview, error) {
	now := s.now()
	since := PeriodStart(period, now)

	total, err := s.reader.CountSince(ctx, since)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count sessions")
	}
	completed, err := s.reader.CountByStatusSince(ctx, session.StatusCompleted, since)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count completed sessions")
	}
	analyzed, err := s.reader.CountByStatusSince(ctx, session.StatusAnalyzed, since)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count analyzed sessions")
	}

	overview := &Overview{
		Period:          period,
		TotalSessions:   total,
		CompletedCount:  completed,
		AnalyzedCount:   analyzed,
		RevenueEstimate: float64(analyzed) * float64(s.priceBasic) / 100,
	}
	if total > 0 {
		overview.ConversionRate = float64(analyzed) / float64(total)
	}

	// Previous period of equal length, for the revenue delta. "all" has no
	// previous period. Subtracting the current period's count from the
	// doubled window leaves exactly the previous window.
	if !since.IsZero() {
		prevStart := since.Add(-now.Sub(since))
		bothPeriods, err := s.reader.CountByStatusSince(ctx, session.StatusAnalyzed, prevStart)
		if err != nil {
			return nil, errors.Wrap(err, "failed to count previous analyzed")
		}
		prevAnalyzed := bothPeriods - analyzed
		if prevAnalyzed < 0 {
			prevAnalyzed = 0
		}
		prevRevenue := float64(prevAnalyzed) * float64(s.priceBasic) / 100
		if prevRevenue > 0 {
			overview.RevenueChangePct = (overview.RevenueEstimate - prevRevenue) / prevRevenue * 100
		}
	}

	snapshots, err := s.reader.ListSince(ctx, since, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sessions")
	}

	overview.DailyTrendSlope = dailyTrend(snapshots)
	overview.MeanCompletionMinutes, overview.MedianCompletionMinutes = completionStats(snapshots)

	s.logger.Debug("admin overview period=%s total=%d analyzed=%d", period, total, analyzed)
	return overview, nil
}

// dailyTrend fits a least-squares line over sessions-created-per-day and
// returns its slope (sessions per day per day)
func dailyTrend(snapshots []session.Snapshot) float64 {
	if len(snapshots) == 0 {
		return 0
	}

	perDay := make(map[string]float64)
	for _, snap := range snapshots {
		perDay[snap.CreatedAt.Format("2006-01-02")]++
	}
	if len(perDay) < 2 {
		return 0
	}

	days := make([]string, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Strings(days)

	xs := make([]float64, len(days))
	ys := make([]float64, len(days))
	for i, day := range days {
		xs[i] = float64(i)
		ys[i] = perDay[day]
	}

	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope
}

// completionStats returns mean and median minutes from creation to the last
// update, over analyzed sessions
func completionStats(snapshots []session.Snapshot) (mean, median float64) {
	var durations []float64
	for _, snap := range snapshots {
		if snap.Status != session.StatusAnalyzed {
			continue
		}
		durations = append(durations, snap.UpdatedAt.Sub(snap.CreatedAt).Minutes())
	}
	if len(durations) == 0 {
		return 0, 0
	}

	mean, _ = stats.Mean(durations)
	median, _ = stats.Median(durations)
	return mean, median
}
