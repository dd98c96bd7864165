package handler

import (
	"net/http"

	"supplyhealth-service/pkg/jwtutil"
	"supplyhealth-service/pkg/logger"
	"supplyhealth-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GrantClientCredentials is the only grant type the token endpoint accepts
const GrantClientCredentials = "client_credentials"

// TokenHandler issues bearer tokens to authenticated API clients
type TokenHandler struct {
	expiresIn int
	metrics   *prometheus.Metrics
}

// NewTokenHandler creates a token handler. expirationHours is reported as
// expires_in and must match the JWT configuration.
func NewTokenHandler(expirationHours int, m *prometheus.Metrics) *TokenHandler {
	return &TokenHandler{expiresIn: expirationHours * 3600, metrics: m}
}

// IssueToken handles client_credentials token requests
func (h *TokenHandler) IssueToken(c echo.Context) error {
	log := logger.FromContext(c)

	// Get client from context (set by ClientAuthMiddleware)
	clientID, ok := c.Get("client_id").(string)
	if !ok {
		log.Error("Client not found in context")
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error":             "invalid_client",
			"error_description": "Client authentication failed",
		})
	}

	if grantType := c.FormValue("grant_type"); grantType != GrantClientCredentials {
		log.Warn("Unsupported grant type", zap.String("grant_type", grantType))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":             "unsupported_grant_type",
			"error_description": "The authorization grant type is not supported",
		})
	}

	token, err := jwtutil.GenerateToken(clientID, jwtutil.ClientRole)
	if err != nil {
		log.Error("Failed to create token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":             "server_error",
			"error_description": "Failed to generate access token",
		})
	}

	h.metrics.TokensIssuedCounter.Inc()
	log.Info("Access token issued")

	return c.JSON(http.StatusOK, echo.Map{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   h.expiresIn,
	})
}
