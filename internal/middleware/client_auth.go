package middleware

import (
	"supplyhealth-service/pkg/jwtutil"
	"supplyhealth-service/pkg/logger"
	"supplyhealth-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// ClientAuthMiddleware validates API client credentials sent with the Basic
// scheme and stores the client ID on the context
func ClientAuthMiddleware(clients jwtutil.Clients, m *prometheus.Metrics) echo.MiddlewareFunc {
	return echomiddleware.BasicAuthWithConfig(echomiddleware.BasicAuthConfig{
		Realm: "supply-health",
		Validator: func(clientID, secret string, c echo.Context) (bool, error) {
			log := logger.FromContext(c)
			m.AuthAttemptsCounter.Inc()

			if !clients.Verify(clientID, secret) {
				log.Warn("Invalid client credentials", zap.String("client_id", clientID))
				m.AuthErrorsCounter.Inc()
				return false, nil
			}

			m.AuthSuccessCounter.Inc()
			c.Set("client_id", clientID)
			c.Set("logger", log.With(zap.String("client_id", clientID)))
			return true, nil
		},
	})
}
