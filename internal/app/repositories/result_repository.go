package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjun/srms/internal/app/ingest"
	"github.com/arjun/srms/internal/app/models"
	"github.com/arjun/srms/internal/pkg/apperrors"
	"github.com/arjun/srms/internal/pkg/dberrors"
	"github.com/arjun/srms/internal/pkg/logger"
)

// ResultRepository owns the per-year result tables: it materializes them on
// first upload, loads batches, and serves keyed queries. Table shapes are
// fixed after creation, so schema descriptors are cached per year tag and
// re-derived from the catalog on a cache miss (e.g. after a restart).
type ResultRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType

	mu      sync.RWMutex
	schemas map[models.YearTag]*ingest.TableSchema
}

// NewResultRepository creates a new ResultRepository
func NewResultRepository(db *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{
		db:      db,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		schemas: make(map[models.YearTag]*ingest.TableSchema),
	}
}

// quoteIdent quotes a dynamic identifier for DDL and squirrel column keys.
// Column names come from CSV headers, so they are never interpolated bare.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// textMatch builds a case-insensitive substring filter on a dynamic column.
// The column is cast to text because roll-like columns may have been
// inferred as BIGINT, and ILIKE has no operator for bigint operands.
func textMatch(col, query string) squirrel.ILike {
	return squirrel.ILike{quoteIdent(col) + "::text": "%" + query + "%"}
}

// EnsureTable makes sure the year's result table exists, creating it on
// first use with types inferred from the sample rows. Idempotent: when the
// table already exists the call only warms the schema cache; the existing
// shape stays authoritative no matter what columns this upload carries.
func (r *ResultRepository) EnsureTable(ctx context.Context, year models.YearTag, columns []string, sampleRows []map[string]string) error {
	if s := r.cachedSchema(year); s != nil {
		return nil
	}

	table := year.ResultTable()
	exists, err := r.tableExists(ctx, table)
	if err != nil {
		return err
	}
	if exists {
		_, err := r.loadSchema(ctx, year)
		return err
	}

	schema := ingest.BuildSchema(table, columns, sampleRows)

	defs := make([]string, 0, len(schema.Columns)+1)
	defs = append(defs, "id BIGSERIAL PRIMARY KEY")
	for _, c := range schema.Columns {
		defs = append(defs, quoteIdent(c.Name)+" "+c.Type.SQLType())
	}

	createSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (%s)`,
		quoteIdent(table), strings.Join(defs, ", "))

	if _, err := r.db.Exec(ctx, createSQL); err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error creating result table")
		return fmt.Errorf("error creating result table %s: %w", table, err)
	}

	logger.Info().Str("table", table).Int("columns", len(schema.Columns)).Msg("Result table created")

	r.mu.Lock()
	r.schemas[year] = &schema
	r.mu.Unlock()
	return nil
}

// Schema returns the year's table schema, from cache or the catalog.
// Returns apperrors.ErrResultTableMissing when no table exists yet.
func (r *ResultRepository) Schema(ctx context.Context, year models.YearTag) (*ingest.TableSchema, error) {
	if s := r.cachedSchema(year); s != nil {
		return s, nil
	}
	return r.loadSchema(ctx, year)
}

// InvalidateSchema drops the cached descriptor for a year. Called after the
// table itself is dropped.
func (r *ResultRepository) InvalidateSchema(year models.YearTag) {
	r.mu.Lock()
	delete(r.schemas, year)
	r.mu.Unlock()
}

func (r *ResultRepository) cachedSchema(year models.YearTag) *ingest.TableSchema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.schemas[year]
}

func (r *ResultRepository) tableExists(ctx context.Context, table string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = 'public' AND table_name = $1)`,
		table).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking result table existence: %w", err)
	}
	return exists, nil
}

// loadSchema derives the schema descriptor from the catalog and caches it.
func (r *ResultRepository) loadSchema(ctx context.Context, year models.YearTag) (*ingest.TableSchema, error) {
	table := year.ResultTable()

	rows, err := r.db.Query(ctx,
		`SELECT column_name, data_type FROM information_schema.columns
		 WHERE table_schema = 'public' AND table_name = $1
		 ORDER BY ordinal_position`,
		table)
	if err != nil {
		return nil, fmt.Errorf("error reading result table columns: %w", err)
	}
	defer rows.Close()

	schema := &ingest.TableSchema{Table: table}
	for rows.Next() {
		var name, dataType string
		if err := rows.Scan(&name, &dataType); err != nil {
			return nil, fmt.Errorf("error scanning column metadata: %w", err)
		}
		if name == "id" {
			continue
		}
		colType := ingest.TypeText
		switch dataType {
		case "bigint", "integer", "smallint":
			colType = ingest.TypeNumeric
		}
		schema.Columns = append(schema.Columns, ingest.ColumnDef{Name: name, Type: colType})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}

	if len(schema.Columns) == 0 {
		return nil, apperrors.ErrResultTableMissing
	}

	r.mu.Lock()
	r.schemas[year] = schema
	r.mu.Unlock()
	return schema, nil
}

// InsertBatch loads parsed rows into the year's table inside the caller's
// transaction. The INSERT statement is built once and reused per row; an
// absent key or empty string becomes NULL. Input order is preserved, so
// surrogate ids follow it. Any row failure aborts the batch.
func (r *ResultRepository) InsertBatch(ctx context.Context, tx pgx.Tx, year models.YearTag, columns []string, rows []map[string]string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
	}

	insertSQL, _, err := r.sb.Insert(quoteIdent(year.ResultTable())).
		Columns(quoted...).
		Values(make([]interface{}, len(columns))...).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert query: %w", err)
	}

	for i, row := range rows {
		args := make([]interface{}, len(columns))
		for j, c := range columns {
			if v, ok := row[c]; ok && v != "" {
				args[j] = v
			}
		}
		if _, err := tx.Exec(ctx, insertSQL, args...); err != nil {
			if dberrors.IsSchemaMismatchError(err) {
				return 0, apperrors.NewSchemaMismatchError(
					fmt.Sprintf("row %d rejected by the existing table schema: %v", i+1, err))
			}
			logger.Error().Err(err).Str("table", year.ResultTable()).Int("row", i+1).Msg("Error inserting result row")
			return 0, fmt.Errorf("error inserting result row %d: %w", i+1, err)
		}
	}

	return len(rows), nil
}

// List retrieves all rows for a year, newest-first by surrogate id, with
// optional case-insensitive substring filters on the roll-like and
// name-like columns.
func (r *ResultRepository) List(ctx context.Context, year models.YearTag, rollQuery, nameQuery string) ([]models.ResultRow, error) {
	schema, err := r.Schema(ctx, year)
	if err != nil {
		return nil, err
	}

	qb := r.sb.Select("*").
		From(quoteIdent(schema.Table)).
		OrderBy("id DESC")

	if rollQuery != "" {
		if col, ok := ingest.LocateRollBearingColumn(schema.ColumnNames()); ok {
			qb = qb.Where(textMatch(col, rollQuery))
		}
	}
	if nameQuery != "" {
		if col, ok := ingest.LocateNameColumn(schema.ColumnNames()); ok {
			qb = qb.Where(textMatch(col, nameQuery))
		}
	}

	querySQL, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list results query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySQL, args...)
	if err != nil {
		if dberrors.IsUndefinedTableError(err) {
			return nil, apperrors.ErrResultTableMissing
		}
		logger.Error().Err(err).Str("table", schema.Table).Msg("Error querying result rows")
		return nil, fmt.Errorf("error querying result rows: %w", err)
	}
	defer rows.Close()

	return scanResultRows(rows)
}

// GetByID retrieves one row by surrogate id.
func (r *ResultRepository) GetByID(ctx context.Context, year models.YearTag, id int64) (models.ResultRow, error) {
	schema, err := r.Schema(ctx, year)
	if err != nil {
		return nil, err
	}

	querySQL, args, err := r.sb.Select("*").
		From(quoteIdent(schema.Table)).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get result query: %w", err)
	}

	return r.queryOne(ctx, querySQL, args)
}

// GetByRoll retrieves the single row whose roll-bearing column equals the
// given roll number, newest-first when duplicates exist.
func (r *ResultRepository) GetByRoll(ctx context.Context, year models.YearTag, roll string) (models.ResultRow, error) {
	schema, err := r.Schema(ctx, year)
	if err != nil {
		return nil, err
	}

	rollCol, ok := ingest.LocateRollBearingColumn(schema.ColumnNames())
	if !ok {
		return nil, apperrors.NewNotFoundError("no roll number column found in result table")
	}

	querySQL, args, err := r.sb.Select("*").
		From(quoteIdent(schema.Table)).
		Where(squirrel.Eq{quoteIdent(rollCol): roll}).
		OrderBy("id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get result by roll query: %w", err)
	}

	return r.queryOne(ctx, querySQL, args)
}

func (r *ResultRepository) queryOne(ctx context.Context, querySQL string, args []interface{}) (models.ResultRow, error) {
	rows, err := r.db.Query(ctx, querySQL, args...)
	if err != nil {
		if dberrors.IsUndefinedTableError(err) {
			return nil, apperrors.ErrResultTableMissing
		}
		return nil, fmt.Errorf("error querying result row: %w", err)
	}
	defer rows.Close()

	out, err := scanResultRows(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, apperrors.ErrResultNotFound
	}
	return out[0], nil
}

// UpdateRowTx updates one row's editable columns inside the caller's
// transaction. Only columns present in the table schema are written; empty
// or nil values become NULL.
func (r *ResultRepository) UpdateRowTx(ctx context.Context, tx pgx.Tx, year models.YearTag, id int64, values map[string]*string) error {
	schema, err := r.Schema(ctx, year)
	if err != nil {
		return err
	}

	setMap := make(map[string]interface{}, len(values))
	for _, c := range schema.Columns {
		v, ok := values[c.Name]
		if !ok {
			continue
		}
		if v == nil || *v == "" {
			setMap[quoteIdent(c.Name)] = nil
		} else {
			setMap[quoteIdent(c.Name)] = *v
		}
	}
	if len(setMap) == 0 {
		return apperrors.NewValidationError("no editable columns in request")
	}

	updateSQL, args, err := r.sb.Update(quoteIdent(schema.Table)).
		SetMap(setMap).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update result query: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, updateSQL, args...)
	if err != nil {
		if dberrors.IsSchemaMismatchError(err) {
			return apperrors.NewSchemaMismatchError(
				fmt.Sprintf("update rejected by the existing table schema: %v", err))
		}
		logger.Error().Err(err).Str("table", schema.Table).Int64("id", id).Msg("Error updating result row")
		return fmt.Errorf("error updating result row: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResultNotFound
	}
	return nil
}

// DeleteRow removes one row by surrogate id.
func (r *ResultRepository) DeleteRow(ctx context.Context, year models.YearTag, id int64) error {
	deleteSQL, args, err := r.sb.Delete(quoteIdent(year.ResultTable())).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete result query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, deleteSQL, args...)
	if err != nil {
		if dberrors.IsUndefinedTableError(err) {
			return apperrors.ErrResultTableMissing
		}
		logger.Error().Err(err).Str("table", year.ResultTable()).Int64("id", id).Msg("Error deleting result row")
		return fmt.Errorf("error deleting result row: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResultNotFound
	}
	return nil
}

// DropTable clears a year entirely: the table is dropped and the cached
// schema invalidated, so the next upload re-infers a fresh shape.
func (r *ResultRepository) DropTable(ctx context.Context, year models.YearTag) error {
	table := year.ResultTable()
	if _, err := r.db.Exec(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, quoteIdent(table))); err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error dropping result table")
		return fmt.Errorf("error dropping result table %s: %w", table, err)
	}
	r.InvalidateSchema(year)
	logger.Info().Str("table", table).Msg("Result table dropped")
	return nil
}

// scanResultRows converts pgx rows into open column-keyed mappings. Numeric
// columns surface as int64, text as string, NULLs as nil.
func scanResultRows(rows pgx.Rows) ([]models.ResultRow, error) {
	fields := rows.FieldDescriptions()
	out := []models.ResultRow{}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("error reading result row values: %w", err)
		}
		row := make(models.ResultRow, len(fields))
		for i, f := range fields {
			row[f.Name] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating result rows: %w", err)
	}
	return out, nil
}
