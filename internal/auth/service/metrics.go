package service

import (
	"github.com/fairwaylabs/launchpoint/internal/observability/metrics"
)

func incrementUsersRegistered() {
	metrics.UsersRegistered.Inc()
}

func incrementLoginsSucceeded() {
	metrics.LoginsSucceeded.Inc()
}

func incrementLoginsFailed() {
	metrics.LoginsFailed.Inc()
}

func incrementTokensIssued() {
	metrics.TokensIssued.Inc()
}

func incrementTokenValidations() {
	metrics.TokenValidationsTotal.Inc()
}

func incrementTokenValidationsFailed() {
	metrics.TokenValidationsFailed.Inc()
}
