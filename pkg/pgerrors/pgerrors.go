package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, на которые реагирует сервис
const (
	CodeUniqueViolation      = pq.ErrorCode("23505")
	CodeForeignKeyViolation  = pq.ErrorCode("23503")
	CodeSerializationFailure = pq.ErrorCode("40001")
	CodeDeadlockDetected     = pq.ErrorCode("40P01")
)

// Code возвращает SQLSTATE ошибки из цепочки, если это ошибка драйвера
func Code(err error) (pq.ErrorCode, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code, true
	}
	return "", false
}

// IsUniqueViolation нарушение уникального ограничения
func IsUniqueViolation(err error) bool {
	code, ok := Code(err)
	return ok && code == CodeUniqueViolation
}

// IsForeignKeyViolation нарушение внешнего ключа
func IsForeignKeyViolation(err error) bool {
	code, ok := Code(err)
	return ok && code == CodeForeignKeyViolation
}

// IsRetryable конфликт сериализации или дедлок - транзакцию можно повторить целиком
func IsRetryable(err error) bool {
	code, ok := Code(err)
	return ok && (code == CodeSerializationFailure || code == CodeDeadlockDetected)
}

// ConstraintName имя нарушенного ограничения
func ConstraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}
