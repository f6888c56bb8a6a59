package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var errEmptyBody = errors.New("request body is empty")

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("nonblank", validateNonBlank); err != nil {
		panic(fmt.Sprintf("register nonblank validation: %v", err))
	}
	return v
}

func validateNonBlank(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	return ok && strings.TrimSpace(s) != ""
}

// decodeJSON reads the request body into dst and runs struct validation on it.
func (h *Handler) decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%s failed on %s", verrs[0].Field(), verrs[0].Tag())
		}
		return err
	}
	return nil
}
