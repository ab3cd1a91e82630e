package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marina_login_attempts_total",
			Help: "Total number of login attempts by status.",
		},
		[]string{"status"},
	)

	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marina_token_verifications_total",
			Help: "Total number of bearer token verifications by status.",
		},
		[]string{"status"},
	)

	resourceChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marina_resource_changes_total",
			Help: "Total number of successful create/update/delete operations by resource and action.",
		},
		[]string{"resource", "action"},
	)
)
