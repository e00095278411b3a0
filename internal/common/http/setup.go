package http

import (
	"net/http"

	"github.com/fairwaylabs/launchpoint/internal/common/constants"
	"github.com/fairwaylabs/launchpoint/internal/common/httpmetrics"
	"github.com/fairwaylabs/launchpoint/internal/common/logger"
)

// BuildBaseHandler stacks the ambient middleware every request goes through:
// security headers, panic recovery, trace ids, a request size cap and HTTP
// metrics collection.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return SecurityHeadersMiddleware(recovery(TraceIDMiddleware(maxRequestSize(metrics.Wrap(handler)))))
}
