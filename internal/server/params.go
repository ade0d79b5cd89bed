package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// tickerParams validates a ticker path variable
type tickerParams struct {
	Ticker string `validate:"required,max=20,printascii,excludesall=/?#&"`
}

// chartParams validates an analysis chart request
type chartParams struct {
	Ticker string `validate:"required,max=20,printascii,excludesall=/?#&"`
	Kind   string `validate:"required,oneof=margins income eps"`
}

// searchParams validates GET /api/search
type searchParams struct {
	Query string `validate:"required,max=64"`
}

// predictionParams validates GET /api/predictions
type predictionParams struct {
	Category string `validate:"max=64"`
	Search   string `validate:"max=100"`
	Sort     string `validate:"omitempty,oneof=volume probability closing recent"`
	Limit    int    `validate:"gte=0,lte=100"`
}

// parsePredictionParams reads the listing query string. A non-numeric limit
// is rejected rather than ignored.
func parsePredictionParams(r *http.Request) (predictionParams, error) {
	q := r.URL.Query()
	p := predictionParams{
		Category: strings.TrimSpace(q.Get("category")),
		Search:   strings.TrimSpace(q.Get("q")),
		Sort:     strings.ToLower(strings.TrimSpace(q.Get("sort"))),
	}
	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, fmt.Errorf("limit must be a number")
		}
		p.Limit = n
	}
	return p, nil
}

// validateParams runs struct validation and writes a 400 on failure.
func (s *Server) validateParams(w http.ResponseWriter, params interface{}) bool {
	if err := s.validate.Struct(params); err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, validationMessage(err), CodeBadRequest)
		return false
	}
	return true
}

// validationMessage renders the first field error as a readable message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request: " + err.Error()
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s is too long", field)
	case "gte", "lte":
		return fmt.Sprintf("%s must be between 0 and 100", field)
	case "excludesall", "printascii":
		return fmt.Sprintf("%s contains invalid characters", field)
	}
	return fmt.Sprintf("%s is invalid", field)
}
