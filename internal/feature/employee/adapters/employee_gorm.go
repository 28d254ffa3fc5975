// Package adapters はemployeeフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"employee_backend/internal/feature/employee/domain/entity"
	"employee_backend/internal/feature/employee/usecase"
)

// pgUniqueViolation はPostgreSQLのユニーク制約違反を示すSQLSTATEです。
const pgUniqueViolation = "23505"

// emailUniqueIndex はemail列のユニークインデックス名です (migrations と GORM タグで共通)。
const emailUniqueIndex = "idx_employee_email"

// QueryObserver receives the latency of each repository query.
type QueryObserver interface {
	ObserveDBQuery(queryType string, elapsed time.Duration)
}

type noopObserver struct{}

func (noopObserver) ObserveDBQuery(string, time.Duration) {}

// employeeGorm はEmployeeRepositoryインターフェースのGORM実装です。
type employeeGorm struct {
	db  *gorm.DB
	obs QueryObserver
}

// employeeGormがEmployeeRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.EmployeeRepository = (*employeeGorm)(nil)

// NewEmployeeGorm は指定されたgorm.DB接続でemployeeGormの新しいインスタンスを生成します。
// obs が nil の場合、クエリ時間は記録されません。
func NewEmployeeGorm(db *gorm.DB, obs QueryObserver) *employeeGorm {
	if obs == nil {
		obs = noopObserver{}
	}
	return &employeeGorm{db: db, obs: obs}
}

// observe records the elapsed time since start under queryType.
func (r *employeeGorm) observe(queryType string, start time.Time) {
	r.obs.ObserveDBQuery(queryType, time.Since(start))
}

// Save はIDが0の場合は新規作成、それ以外は主キーで上書きします。
// 上書き対象の行が既に存在しない場合はIDを再利用せず、新しいIDで登録します。
// メールアドレスのユニーク制約に違反した場合、usecase.ErrEmployeeAlreadyExistsを返します。
func (r *employeeGorm) Save(ctx context.Context, e entity.Employee) (entity.Employee, error) {
	defer r.observe("save_employee", time.Now())

	db := r.db.WithContext(ctx)
	if e.ID != 0 {
		res := db.Model(&entity.Employee{ID: e.ID}).
			Updates(map[string]any{"first_name": e.FirstName, "last_name": e.LastName, "email": e.Email})
		if res.Error != nil {
			return entity.Employee{}, saveError(res.Error, e)
		}
		if res.RowsAffected > 0 {
			return e, nil
		}
		e.ID = 0
	}

	if err := db.Create(&e).Error; err != nil {
		return entity.Employee{}, saveError(err, e)
	}
	return e, nil
}

func saveError(err error, e entity.Employee) error {
	if isEmailConflict(err) {
		return fmt.Errorf("%w: %s", usecase.ErrEmployeeAlreadyExists, e.Email)
	}
	return fmt.Errorf("failed to save employee: %w", err)
}

// FindByID はIDで従業員を取得します。
func (r *employeeGorm) FindByID(ctx context.Context, id int64) (entity.Employee, bool, error) {
	defer r.observe("get_employee", time.Now())

	var e entity.Employee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Employee{}, false, nil
		}
		return entity.Employee{}, false, fmt.Errorf("failed to get employee %d: %w", id, err)
	}
	return e, true, nil
}

// FindAll は全従業員をID順で返します。
func (r *employeeGorm) FindAll(ctx context.Context) ([]entity.Employee, error) {
	defer r.observe("list_employees", time.Now())

	out := []entity.Employee{}
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return out, nil
}

// DeleteByID はIDで従業員を削除します。該当行がなくてもエラーにはなりません。
func (r *employeeGorm) DeleteByID(ctx context.Context, id int64) error {
	defer r.observe("delete_employee", time.Now())

	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Employee{}).Error; err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", id, err)
	}
	return nil
}

// FindByEmail はメールアドレスで従業員を取得します。
func (r *employeeGorm) FindByEmail(ctx context.Context, email string) (entity.Employee, bool, error) {
	defer r.observe("get_employee_by_email", time.Now())

	var e entity.Employee
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Employee{}, false, nil
		}
		return entity.Employee{}, false, fmt.Errorf("failed to get employee by email: %w", err)
	}
	return e, true, nil
}

// FindByNames は姓名の完全一致で従業員を検索します。
func (r *employeeGorm) FindByNames(ctx context.Context, firstName, lastName string) ([]entity.Employee, error) {
	return r.FindByNamesWith(ctx, QueryPositional, firstName, lastName)
}

// isEmailConflict reports whether err is a violation of the email unique index.
// PostgreSQL のエラーは制約名で判定し、主キーなど他の制約違反はストレージ障害として扱います。
// 制約名を持たないドライバ (SQLite) では TranslateError による gorm.ErrDuplicatedKey で判定します。
func isEmailConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == emailUniqueIndex
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
