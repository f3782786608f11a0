package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// validUUID guards UUID columns so malformed ids read as missing rows
// instead of cast errors
func validUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
