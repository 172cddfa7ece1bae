package service

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/smatehq/timeclock/internal/timeclock/domain"
	"github.com/smatehq/timeclock/internal/timeclock/metrics"
	"github.com/smatehq/timeclock/internal/timeclock/store"
	"github.com/smatehq/timeclock/pkg/slogx"
)

const (
	DefaultReportWindowDays = 7
	MaxReportWindowDays     = 365
)

// ReportService aggregates worked hours over a trailing window.
type ReportService struct {
	Store   store.Store
	Metrics metrics.Recorder
}

// Report computes per-staff worked hours for the trailing windowDays and the
// aggregate stats over that window. Out-of-range windows clamp to the
// default. The windowed events come from one snapshot query; events are
// paired per user by walking them in timestamp order.
func (s *ReportService) Report(ctx context.Context, windowDays int) (domain.Report, error) {
	log := slogx.FromContext(ctx)
	started := time.Now()

	if windowDays < 1 || windowDays > MaxReportWindowDays {
		windowDays = DefaultReportWindowDays
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	since := time.Now().UTC().AddDate(0, 0, -windowDays)
	events, err := s.Store.ClockEvents().ListEventsSince(ctx, since)
	if err != nil {
		log.Error("failed to load report window", slog.Any("error", err))
		return domain.Report{}, domain.TransientError("report query failed")
	}

	type accum struct {
		name   string
		openIn time.Time
		hasIn  bool
		worked time.Duration
	}
	byUser := make(map[string]*accum)

	for _, e := range events {
		a, ok := byUser[e.UserID]
		if !ok {
			a = &accum{}
			if e.User != nil {
				// Fall back to email for users provisioned without a
				// name claim, so rows stay identifiable.
				a.name = e.User.Name
				if a.name == "" {
					a.name = e.User.Email
				}
			}
			byUser[e.UserID] = a
		}

		switch e.Kind {
		case domain.EventIn:
			// A later IN with one still open means the earlier shift was
			// never closed; it contributes nothing.
			a.openIn = e.CreatedAt
			a.hasIn = true
		case domain.EventOut:
			if a.hasIn {
				a.worked += e.CreatedAt.Sub(a.openIn)
				a.hasIn = false
			}
			// An OUT whose IN predates the window is dropped rather than
			// guessed at; the window boundary truncates the pair.
		}
	}

	report := domain.Report{
		WindowDays:   windowDays,
		PeoplePerDay: len(byUser),
	}

	var totalHours float64
	for userID, a := range byUser {
		hours := round2(a.worked.Hours())
		totalHours += hours
		report.PerStaff = append(report.PerStaff, domain.StaffHours{
			UserID: userID,
			Name:   a.name,
			Hours:  hours,
		})
	}
	sort.Slice(report.PerStaff, func(i, j int) bool {
		if report.PerStaff[i].Name != report.PerStaff[j].Name {
			return report.PerStaff[i].Name < report.PerStaff[j].Name
		}
		return report.PerStaff[i].UserID < report.PerStaff[j].UserID
	})

	report.AvgHoursPerDay = round2(totalHours / float64(windowDays))

	s.recorder().RecordReportLatency(time.Since(started))
	return report, nil
}

func (s *ReportService) recorder() metrics.Recorder {
	if s.Metrics == nil {
		return metrics.Nop{}
	}
	return s.Metrics
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
