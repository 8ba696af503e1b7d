package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

var errMissingEmployeeClaim = errors.New("token has no employee_id claim")

// employeeIDFromRequest pulls the authenticated employee's id out of the
// verified JWT. AuthRequired runs before every handler that calls this.
func employeeIDFromRequest(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", errMissingEmployeeClaim
	}

	return employeeID, nil
}
