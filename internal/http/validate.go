package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/taskdeck/taskdeck/pkg/httpx"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeJSON decodes and validates a request body. On failure it writes
// the 400 response itself and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

// validationMessage renders the first validation failure as a
// user-facing message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return "All fields are required"
	case "email":
		return "Invalid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must contain at least %s entries", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
