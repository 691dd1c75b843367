package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"content-api/internal/domain/entity"
)

// SQLSTATE codes the adapter distinguishes.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeInvalidTextRepresent = "22P02"
)

// classify maps a store error onto the domain error taxonomy.
// Errors that are already classified pass through unchanged.
func classify(op, entityName string, err error) error {
	if err == nil {
		return nil
	}

	var domainErr *entity.Error
	if errors.As(err, &domainErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return entity.Conflict(op, entityName, conflictMessage(entityName), err)
		case codeForeignKeyViolation:
			return entity.InvalidReference(op, err)
		case codeInvalidTextRepresent:
			// malformed UUID literal reaching the store
			return &entity.Error{Kind: entity.KindValidationFailed, Op: op, Entity: entityName, Msg: "invalid ID format", Err: err}
		}
	}

	return entity.Internal(op, err)
}

func conflictMessage(entityName string) string {
	switch entityName {
	case "category":
		return "category with this name already exists"
	case "association":
		return "article is already linked to this category"
	default:
		return entityName + " already exists"
	}
}
