package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWhereBuilder(t *testing.T) {
	var w whereBuilder
	assert.Equal(t, "", w.sql())

	w.add("kind = $%d", "issue_report")
	w.add("fiscal_year = $%d", "2081/082")
	assert.Equal(t, " WHERE kind = $1 AND fiscal_year = $2", w.sql())
	assert.Equal(t, " LIMIT $3 OFFSET $4", w.page(20, 40))
	assert.Equal(t, []any{"issue_report", "2081/082", 20, 40}, w.args)
	assert.Equal(t, "", w.page(0, 0))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}
