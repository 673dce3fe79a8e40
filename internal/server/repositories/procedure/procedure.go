// Package procedure builds stored procedure invocations for the supported
// dialects and reads their result sets into generic rows.
package procedure

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/escc-report-api/internal/server/models"
)

// Param is one named procedure argument.
type Param struct {
	Name  string
	Value any
}

// SQLServerExec renders "EXEC proc @A = @A, ..." with sql.Named arguments,
// as understood by go-mssqldb. A Param whose Value is a sql.Out is passed
// as "@A = @A OUTPUT" and filled in by the driver.
func SQLServerExec(name string, params []Param) (string, []any) {
	var b strings.Builder
	b.WriteString("EXEC ")
	b.WriteString(name)

	args := make([]any, 0, len(params))
	for i, p := range params {
		if i == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "@%s = @%s", p.Name, p.Name)
		if _, ok := p.Value.(sql.Out); ok {
			b.WriteString(" OUTPUT")
		}
		args = append(args, sql.Named(p.Name, p.Value))
	}

	return b.String(), args
}

// PostgresSelect renders "SELECT * FROM proc(a => $1, ...)" using named
// notation so omitted parameters fall back to the function defaults.
func PostgresSelect(name string, params []Param) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(strings.ToLower(name))
	b.WriteString("(")

	args := make([]any, 0, len(params))
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s => $%d", strings.ToLower(p.Name), i+1)
		args = append(args, p.Value)
	}
	b.WriteString(")")

	return b.String(), args
}

// ScanRows reads every remaining row of rows. Byte slices become strings so
// that rows encode to readable JSON.
func ScanRows(rows *sql.Rows) ([]models.Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make([]models.Row, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			values[i] = normalize(v)
		}
		out = append(out, models.Row{Columns: columns, Values: values})
	}

	return out, rows.Err()
}

func normalize(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case time.Time:
		return t.UTC()
	default:
		return v
	}
}
