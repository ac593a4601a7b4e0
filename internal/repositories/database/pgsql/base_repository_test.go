package pgsql

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsMissingRow(t *testing.T) {
	malformed := &pgconn.PgError{Code: invalidTextRepresentation, Message: `invalid input syntax for type uuid: "42"`}

	assert.True(t, isMissingRow(pgx.ErrNoRows))
	assert.True(t, isMissingRow(malformed))
	assert.True(t, isMissingRow(fmt.Errorf("failed to query donations: %w", malformed)))
	assert.False(t, isMissingRow(&pgconn.PgError{Code: uniqueViolation}))
	assert.False(t, isMissingRow(assert.AnError))
}
