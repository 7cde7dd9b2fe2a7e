package handler

import (
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"internhub/internal/auth"
	"internhub/internal/errors"
)

// principalFrom extracts the authenticated principal from the validated JWT
// on the request. Every workflow call receives it explicitly.
func principalFrom(c echo.Context) (auth.Principal, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return auth.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return auth.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	return auth.FromClaims(claims), nil
}

// idParam parses the :id path parameter.
func idParam(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}

// domainError maps a service error onto the HTTP response.
func domainError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
