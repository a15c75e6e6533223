package training

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Progress is a periodic training snapshot.
type Progress struct {
	Episode   int     // Episodes completed in this run
	BestScore int     // Longest distance the agent has reached
	Average   float64 // Mean distance over the rolling window
	Epsilon   float64
}

// Reporter receives progress snapshots. A reporter error aborts the run.
type Reporter interface {
	Report(Progress) error
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Progress) error

func (f ReporterFunc) Report(p Progress) error { return f(p) }

// LogReporter writes progress lines through a charmbracelet logger.
type LogReporter struct {
	Logger *log.Logger
	Total  int
}

// NewLogReporter reports to logger; total is only used for display.
func NewLogReporter(logger *log.Logger, total int) *LogReporter {
	return &LogReporter{Logger: logger, Total: total}
}

func (r *LogReporter) Report(p Progress) error {
	r.Logger.Info("training",
		"episode", p.Episode,
		"of", r.Total,
		"best", p.BestScore,
		"avg", fmt.Sprintf("%.2f", p.Average),
		"epsilon", fmt.Sprintf("%.4f", p.Epsilon),
	)
	return nil
}

// MultiReporter fans a snapshot out to every reporter and joins their errors.
type MultiReporter []Reporter

func (m MultiReporter) Report(p Progress) error {
	var errs []error
	for _, r := range m {
		if r == nil {
			continue
		}
		if err := r.Report(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
