package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренние ошибки с векторами и предпочтениями
	ErrMalformedEmbedding  = fmt.Errorf("malformed embedding bytes")
	ErrMalformedPreference = fmt.Errorf("malformed preference value")
	ErrQueueUnavailable    = fmt.Errorf("refresh queue unavailable")
	ErrEmptyVector         = fmt.Errorf("empty vector")

	// Ошибки сущностей
	ErrUnknownEntityType = fmt.Errorf("unknown entity type")
	ErrProfileNotFound   = fmt.Errorf("profile not found")

	// 400 Bad Request
	ErrStatusBadRequest    = fmt.Errorf("bad request")
	ErrExpectedJSON        = fmt.Errorf("expected application/json body")
	ErrMissingFields       = fmt.Errorf("missing required fields")
	ErrInvalidEntityID     = fmt.Errorf("invalid entity id")
	ErrInvalidSalary       = fmt.Errorf("invalid salary value")
	ErrSalaryPrecision     = fmt.Errorf("salary must have at most 2 decimal places")
	ErrInvalidPriority     = fmt.Errorf("invalid preference priority")
	ErrInvalidLimit        = fmt.Errorf("invalid limit")
	ErrInternalServerError = fmt.Errorf("internal server error")

	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
