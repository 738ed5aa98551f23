package utils

import (
	"time"
)

type ReporterState struct {
	Count       int
	CountInc    int
	ElapsedTime float64
}

// Reporter decides when a long-running loop should log progress: after
// countThreshold new items, or once interval has passed, whichever first.
type Reporter struct {
	countThreshold int
	interval       time.Duration
	format         func(ReporterState) string

	count           int
	startTime       time.Time
	lastReportTime  time.Time
	lastReportCount int

	now func() time.Time
}

func NewReporter(countThreshold int, interval time.Duration, format func(ReporterState) string) *Reporter {
	r := &Reporter{
		countThreshold: countThreshold,
		interval:       interval,
		format:         format,
		now:            time.Now,
	}
	r.startTime = r.now()
	r.lastReportTime = r.startTime
	return r
}

func (r *Reporter) Add(count int) (bool, string) {
	r.count += count

	countInc := r.count - r.lastReportCount
	elapsed := r.now().Sub(r.lastReportTime)
	if (r.countThreshold != 0 && countInc >= r.countThreshold) || elapsed >= r.interval {
		report := r.format(ReporterState{
			Count:       r.count,
			CountInc:    countInc,
			ElapsedTime: elapsed.Seconds(),
		})
		r.lastReportTime = r.now()
		r.lastReportCount = r.count
		return true, report
	}
	return false, ""
}

func (r *Reporter) Count() int {
	return r.count
}
