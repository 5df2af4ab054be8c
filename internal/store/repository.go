package store

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"

	"orgcatalog.app/catalog/core/db"
)

// Field is one column/value pair of a Filter or Values list.
type Field struct {
	Column string
	Value  any
}

// Eq builds an equality condition or an assignment, depending on where it is used.
func Eq(column string, value any) Field {
	return Field{Column: column, Value: value}
}

// Filter is a conjunction of equality conditions, rendered in order.
type Filter []Field

// Values is an ordered list of column assignments for inserts and updates.
type Values []Field

// Repository implements the CRUD surface shared by every catalog table.
// It runs on whatever DBTX it was built with and never commits on its own.
// T must carry `db` tags matching the table's columns.
type Repository[T any] struct {
	q       db.DBTX
	table   string
	columns []string
}

// NewRepository binds a repository to a table. columns lists every selectable
// column, primary key "id" first; filters and values are checked against it.
func NewRepository[T any](q db.DBTX, table string, columns ...string) *Repository[T] {
	return &Repository[T]{q: q, table: table, columns: columns}
}

func (r *Repository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	return r.GetOneByFilter(ctx, Filter{Eq("id", id)})
}

func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	return r.ListByFilter(ctx, nil)
}

// GetOneByFilter returns the first row matching filter. Callers that expect
// several matches should use ListByFilter.
func (r *Repository[T]) GetOneByFilter(ctx context.Context, filter Filter) (*T, error) {
	where, args, err := r.where(filter, 1)
	if err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, r.selectSQL()+where+" ORDER BY id LIMIT 1", args...)
	if err != nil {
		return nil, Classify(err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, Classify(err)
	}
	return row, nil
}

func (r *Repository[T]) ListByFilter(ctx context.Context, filter Filter) ([]T, error) {
	where, args, err := r.where(filter, 1)
	if err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, r.selectSQL()+where+" ORDER BY id", args...)
	if err != nil {
		return nil, Classify(err)
	}
	return collect[T](rows)
}

// ListWhere runs a SELECT with a caller supplied condition. cond is trusted SQL
// and must use positional parameters matching args.
func (r *Repository[T]) ListWhere(ctx context.Context, cond string, args ...any) ([]T, error) {
	rows, err := r.q.Query(ctx, r.selectSQL()+" WHERE "+cond+" ORDER BY id", args...)
	if err != nil {
		return nil, Classify(err)
	}
	return collect[T](rows)
}

func (r *Repository[T]) Insert(ctx context.Context, values Values) (*T, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("insert into %s: no values", r.table)
	}
	if err := r.checkColumns(values); err != nil {
		return nil, err
	}

	cols := make([]string, len(values))
	params := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		cols[i] = quote(v.Column)
		params[i] = fmt.Sprintf("$%d", i+1)
		args[i] = v.Value
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		quote(r.table), strings.Join(cols, ", "), strings.Join(params, ", "), r.columnList())

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, Classify(err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, Classify(err)
	}
	return row, nil
}

// UpdateByID applies values to the row with the given id and returns the
// updated row. With no values the current row is returned untouched.
func (r *Repository[T]) UpdateByID(ctx context.Context, id int64, values Values) (*T, error) {
	if len(values) == 0 {
		return r.GetByID(ctx, id)
	}
	if err := r.checkColumns(values); err != nil {
		return nil, err
	}

	sets := make([]string, len(values))
	args := make([]any, 0, len(values)+1)
	for i, v := range values {
		sets[i] = fmt.Sprintf("%s = $%d", quote(v.Column), i+1)
		args = append(args, v.Value)
	}
	args = append(args, id)

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		quote(r.table), strings.Join(sets, ", "), len(args), r.columnList())

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, Classify(err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, Classify(err)
	}
	return row, nil
}

// DeleteByFilter deletes every matching row and returns how many were removed.
// An empty filter is rejected.
func (r *Repository[T]) DeleteByFilter(ctx context.Context, filter Filter) (int64, error) {
	if len(filter) == 0 {
		return 0, fmt.Errorf("delete from %s: %w", r.table, ErrEmptyFilter)
	}
	where, args, err := r.where(filter, 1)
	if err != nil {
		return 0, err
	}

	tag, err := r.q.Exec(ctx, "DELETE FROM "+quote(r.table)+where, args...)
	if err != nil {
		return 0, Classify(err)
	}
	return tag.RowsAffected(), nil
}

func (r *Repository[T]) selectSQL() string {
	return "SELECT " + r.columnList() + " FROM " + quote(r.table)
}

func (r *Repository[T]) columnList() string {
	quoted := make([]string, len(r.columns))
	for i, c := range r.columns {
		quoted[i] = quote(c)
	}
	return strings.Join(quoted, ", ")
}

func (r *Repository[T]) where(filter Filter, firstParam int) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}
	if err := r.checkColumns(filter); err != nil {
		return "", nil, err
	}

	conds := make([]string, len(filter))
	args := make([]any, len(filter))
	for i, f := range filter {
		conds[i] = fmt.Sprintf("%s = $%d", quote(f.Column), firstParam+i)
		args[i] = f.Value
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

func (r *Repository[T]) checkColumns(fields []Field) error {
	for _, f := range fields {
		if !slices.Contains(r.columns, f.Column) {
			return fmt.Errorf("%s.%s: %w", r.table, f.Column, ErrUnknownColumn)
		}
	}
	return nil
}

func quote(ident string) string {
	return pgx.Identifier{ident}.Sanitize()
}

func collect[T any](rows pgx.Rows) ([]T, error) {
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, Classify(err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
