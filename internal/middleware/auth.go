package middleware

import (
	"net/http"
	"strings"

	"supplyhealth-service/pkg/jwtutil"
	"supplyhealth-service/pkg/logger"
	"supplyhealth-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware verifies the bearer token and stores its claims on the context
func AuthMiddleware(m *prometheus.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			// Track authentication attempts
			m.AuthAttemptsCounter.Inc()

			// Extract the token from the Authorization header
			tokenString := c.Request().Header.Get(echo.HeaderAuthorization)
			if tokenString == "" {
				log.Warn("Missing authorization token")
				m.AuthErrorsCounter.Inc()
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}

			// Remove "Bearer " prefix if present
			if len(tokenString) > 7 && strings.ToUpper(tokenString[0:7]) == "BEARER " {
				tokenString = tokenString[7:]
			}

			claims, err := jwtutil.ValidateToken(tokenString)
			if err != nil {
				log.Warn("Invalid token", zap.Error(err))
				m.AuthErrorsCounter.Inc()
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			m.AuthSuccessCounter.Inc()

			c.Set("subject", claims.Subject)
			c.Set("role", claims.Role)

			log = log.With(
				zap.String("subject", claims.Subject),
				zap.String("role", claims.Role),
			)
			c.Set("logger", log)
			c.SetRequest(c.Request().WithContext(logger.WithLogger(c.Request().Context(), log)))

			return next(c)
		}
	}
}
