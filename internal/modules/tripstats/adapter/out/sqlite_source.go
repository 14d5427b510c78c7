package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/cespare/xxhash/v2"

	"bikeshare/internal/modules/tripstats/domain"
	apperrors "bikeshare/internal/platform/errors"

	_ "modernc.org/sqlite"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource reads every row of one table from a trip database opened
// read-only.
type SQLiteSource struct {
	table string
}

func NewSQLiteSource(table string) (*SQLiteSource, error) {
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid sqlite table name %q", table)
	}
	return &SQLiteSource{table: table}, nil
}

func (s *SQLiteSource) Read(ctx context.Context, path string) (domain.RawTable, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.RawTable{}, fmt.Errorf("%w: %s", apperrors.ErrNotFound, path)
		}
		return domain.RawTable{}, fmt.Errorf("stat %s: %w", path, err)
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT * FROM "`+s.table+`"`)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("%w: %s: query %s: %v", apperrors.ErrInvalidSource, path, s.table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("read columns: %w", err)
	}
	sum := xxhash.New()
	for _, name := range columns {
		_, _ = sum.WriteString(name)
		_, _ = sum.Write([]byte{0})
	}

	var records [][]string
	cells := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range cells {
		dest[i] = &cells[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return domain.RawTable{}, fmt.Errorf("scan %s: %w", s.table, err)
		}
		record := make([]string, len(cells))
		for i, cell := range cells {
			if cell.Valid {
				record[i] = cell.String
			}
			_, _ = sum.WriteString(record[i])
			_, _ = sum.Write([]byte{0})
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return domain.RawTable{}, fmt.Errorf("iterate %s: %w", s.table, err)
	}
	return domain.RawTable{
		Columns: columns,
		Records: records,
		Source:  domain.SourceInfo{Path: path, Format: FormatSQLite, Digest: sum.Sum64()},
	}, nil
}
