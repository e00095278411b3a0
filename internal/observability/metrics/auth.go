package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total number of accounts created",
		},
	)

	LoginsSucceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "logins_succeeded_total",
			Help: "Total number of successful logins",
		},
	)

	LoginsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "logins_failed_total",
			Help: "Total number of rejected logins",
		},
	)

	TokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_tokens_issued_total",
			Help: "Total number of bearer tokens issued",
		},
	)

	TokenValidationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "token_validations_total",
			Help: "Total number of bearer token validations",
		},
	)

	TokenValidationsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "token_validations_failed_total",
			Help: "Total number of failed bearer token validations",
		},
	)

	DevicesRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "devices_registered_total",
			Help: "Total number of devices registered",
		},
	)
)
