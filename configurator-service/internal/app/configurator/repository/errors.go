package repository

import (
	"errors"

	"gorm.io/gorm"
)

const metricsService = "configurator-service"

// translate приводит ошибки gorm и PostgreSQL к ошибкам репозитория
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey), pgCode(err) == pgUniqueViolation:
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated), pgCode(err) == pgForeignKeyViolation:
		return ErrForeignKey
	}
	return err
}
