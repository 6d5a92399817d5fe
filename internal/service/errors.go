package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/crucial707/equipment-registry/internal/repo"
	"github.com/lib/pq"
)

// ErrNotFound is returned when the requested equipment record does not exist.
var ErrNotFound = repo.ErrNotFound

// ValidationError lists every field that failed validation, keyed by form field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// OperationalError wraps a storage failure with the operation that hit it.
// The transaction, if any, has already been rolled back.
type OperationalError struct {
	Op  string
	Err error
}

func (e *OperationalError) Error() string {
	return "equipment " + e.Op + ": " + e.Err.Error()
}

func (e *OperationalError) Unwrap() error {
	return e.Err
}

// Reason is a short, non-technical description of the failure for end users.
func (e *OperationalError) Reason() string {
	var pqErr *pq.Error
	if errors.As(e.Err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return "registro duplicado"
		case "check_violation", "not_null_violation":
			return "dados rejeitados pelo banco de dados"
		case "numeric_value_out_of_range":
			return "valor fora do intervalo permitido"
		case "string_data_right_truncation":
			return "texto maior que o permitido"
		}
	}
	return "falha ao acessar o banco de dados"
}
