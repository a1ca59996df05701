package workflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionStarts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verifid_capture_session_starts_total",
		Help: "Camera session acquisitions by stage and outcome",
	}, []string{"stage", "outcome"})

	capturesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verifid_captures_total",
		Help: "Frames captured by stage",
	}, []string{"stage"})

	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verifid_submissions_total",
		Help: "Stage submissions by stage and outcome",
	}, []string{"stage", "outcome"})

	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "verifid_stage_duration_seconds",
		Help:    "Time from camera acquisition to stage confirmation",
		Buckets: []float64{1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{"stage"})
)
