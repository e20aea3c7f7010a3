package repositories

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"roll_no"`, quoteIdent("roll_no"))
	assert.Equal(t, `"he said ""hi"""`, quoteIdent(`he said "hi"`))
}

// Roll columns holding only integer-looking values are created as BIGINT,
// so the substring filter has to cast before matching or Postgres rejects
// the query with "operator does not exist: bigint ~~* unknown".
func TestTextMatchCastsColumnToText(t *testing.T) {
	sql, args, err := squirrel.Select("*").
		From(`"first_year_results"`).
		Where(textMatch("roll_no", "10")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	require.NoError(t, err)

	assert.Equal(t, `SELECT * FROM "first_year_results" WHERE "roll_no"::text ILIKE $1`, sql)
	assert.Equal(t, []interface{}{"%10%"}, args)
}
