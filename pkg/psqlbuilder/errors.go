package psqlbuilder

import (
	"errors"

	"github.com/lib/pq"
)

// Коды SQLSTATE, на которые реагирует бизнес-логика
const (
	codeExclusionViolation   = "23P01"
	codeSerializationFailure = "40001"
	codeForeignKeyViolation  = "23503"
)

// IsExclusionViolation нарушение EXCLUDE-ограничения (пересечение интервалов)
func IsExclusionViolation(err error) bool {
	return hasCode(err, codeExclusionViolation)
}

// IsSerializationFailure конфликт сериализуемой транзакции, операцию можно повторить
func IsSerializationFailure(err error) bool {
	return hasCode(err, codeSerializationFailure)
}

// IsForeignKeyViolation ссылка на несуществующую запись
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, codeForeignKeyViolation)
}

func hasCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}
