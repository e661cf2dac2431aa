package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/match-backend/internal/domain"
	"github.com/DRSN-tech/match-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrExpectedJSON):
		return http.StatusBadRequest, e.ErrExpectedJSON.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrInvalidEntityID):
		return http.StatusBadRequest, e.ErrInvalidEntityID.Error()
	case errors.Is(err, e.ErrInvalidSalary):
		return http.StatusBadRequest, e.ErrInvalidSalary.Error()
	case errors.Is(err, e.ErrSalaryPrecision):
		return http.StatusBadRequest, e.ErrSalaryPrecision.Error()
	case errors.Is(err, e.ErrInvalidPriority):
		return http.StatusBadRequest, e.ErrInvalidPriority.Error()
	case errors.Is(err, e.ErrInvalidLimit):
		return http.StatusBadRequest, e.ErrInvalidLimit.Error()
	case errors.Is(err, e.ErrUnknownEntityType):
		return http.StatusBadRequest, e.ErrUnknownEntityType.Error()
	case errors.Is(err, e.ErrProfileNotFound):
		return http.StatusNotFound, e.ErrProfileNotFound.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func ensureJSONBody(r *http.Request) error {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "application/json") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedJSON)
	}
	return nil
}

// parseEntityID разбирает положительный идентификатор из path-параметра
func parseEntityID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, e.Wrap(raw, e.ErrInvalidEntityID)
	}
	return id, nil
}

// parseLimit разбирает query-параметр limit; 0 — значение по умолчанию
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, e.Wrap(raw, e.ErrInvalidLimit)
	}

	return limit, nil
}

// parsePool разбирает явный пул контрагентов из query-параметра
// вида "3,5,9"; пустая строка означает пул по умолчанию
func parsePool(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := parseEntityID(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// parseSalaryToCents converts a string like "120000.50" or "120000" to int64 cents.
// Empty string means an open bound and maps to 0. Returns error if:
// - invalid format
// - more than 2 decimal places
// - negative value
// - exceeds reasonable limit
func parseSalaryToCents(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidSalary
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidSalary
	}

	maxSalary := decimal.NewFromInt(1_000_000_000)
	if d.GreaterThan(maxSalary) {
		return 0, e.ErrInvalidSalary
	}

	if d.Exponent() < -2 {
		return 0, e.ErrSalaryPrecision
	}

	cents := d.Mul(decimal.NewFromInt(100)).Round(0)

	return cents.IntPart(), nil
}

type criterionPayload struct {
	Kind     string `json:"kind"`
	Value    string `json:"value"`
	Priority string `json:"priority"`
}

func parseCriteria(payloads []criterionPayload) ([]domain.PreferenceCriterion, error) {
	criteria := make([]domain.PreferenceCriterion, 0, len(payloads))
	seen := make(map[string]struct{}, len(payloads))
	for _, p := range payloads {
		if p.Kind == "" {
			return nil, e.Wrap("criterion kind", e.ErrMissingFields)
		}
		// Набор критериев заменяется целиком, повтор kind — ошибка клиента
		if _, ok := seen[p.Kind]; ok {
			return nil, e.Wrap("duplicate criterion kind: "+p.Kind, e.ErrStatusBadRequest)
		}
		seen[p.Kind] = struct{}{}

		priority, err := domain.ParsePriority(p.Priority)
		if err != nil {
			return nil, err
		}

		criteria = append(criteria, domain.NewPreferenceCriterion(domain.CriterionKind(p.Kind), p.Value, priority))
	}

	return criteria, nil
}
