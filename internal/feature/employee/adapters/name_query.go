package adapters

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"employee_backend/internal/feature/employee/domain/entity"
)

// NameQueryStyle selects how the first/last name query is expressed and bound.
type NameQueryStyle int

const (
	// QueryPositional はクエリビルダーと位置パラメータ（?）を使います。
	QueryPositional NameQueryStyle = iota
	// QueryNamed はクエリビルダーと名前付きパラメータ（@first_name）を使います。
	QueryNamed
	// QueryRawPositional は生SQLと位置パラメータを使います。
	QueryRawPositional
	// QueryRawNamed は生SQLと名前付きパラメータのマップを使います。
	QueryRawNamed
)

func (s NameQueryStyle) String() string {
	switch s {
	case QueryPositional:
		return "positional"
	case QueryNamed:
		return "named"
	case QueryRawPositional:
		return "raw_positional"
	case QueryRawNamed:
		return "raw_named"
	default:
		return fmt.Sprintf("NameQueryStyle(%d)", int(s))
	}
}

const (
	rawByNamesPositional = "SELECT id, first_name, last_name, email FROM employee WHERE first_name = ? AND last_name = ? ORDER BY id"
	rawByNamesNamed      = "SELECT id, first_name, last_name, email FROM employee WHERE first_name = @first_name AND last_name = @last_name ORDER BY id"
)

// FindByNamesWith は指定されたスタイルで姓名検索を実行します。
// どのスタイルでも結果は同一です。
func (r *employeeGorm) FindByNamesWith(ctx context.Context, style NameQueryStyle, firstName, lastName string) ([]entity.Employee, error) {
	defer r.observe("find_by_names_"+style.String(), time.Now())

	tx := r.db.WithContext(ctx)
	out := []entity.Employee{}

	var err error
	switch style {
	case QueryPositional:
		err = tx.Where("first_name = ? AND last_name = ?", firstName, lastName).Order("id").Find(&out).Error
	case QueryNamed:
		err = tx.Where("first_name = @first_name AND last_name = @last_name",
			sql.Named("first_name", firstName), sql.Named("last_name", lastName)).Order("id").Find(&out).Error
	case QueryRawPositional:
		err = tx.Raw(rawByNamesPositional, firstName, lastName).Scan(&out).Error
	case QueryRawNamed:
		err = tx.Raw(rawByNamesNamed, map[string]any{
			"first_name": firstName,
			"last_name":  lastName,
		}).Scan(&out).Error
	default:
		return nil, fmt.Errorf("unknown name query style %v", style)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find employees by names (%s): %w", style, err)
	}
	return out, nil
}
