package usecase

import (
	"context"
	"fmt"

	"employee_backend/internal/feature/employee/domain/entity"
)

// EmployeeRepository は従業員エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type EmployeeRepository interface {
	// Save はIDが0なら新規作成、それ以外は主キーで上書きし、永続化後の値を返します。
	Save(ctx context.Context, e entity.Employee) (entity.Employee, error)

	// FindByID はIDで従業員を取得します。存在しない場合は false を返します（エラーではありません）。
	FindByID(ctx context.Context, id int64) (entity.Employee, bool, error)

	// FindAll は全従業員を返します。0件の場合は空スライスを返します。
	FindAll(ctx context.Context) ([]entity.Employee, error)

	// DeleteByID はIDで従業員を削除します。存在しない場合は何もしません。
	DeleteByID(ctx context.Context, id int64) error

	// FindByEmail はメールアドレスで従業員を取得します。
	FindByEmail(ctx context.Context, email string) (entity.Employee, bool, error)

	// FindByNames は姓名の完全一致で従業員を検索します。
	FindByNames(ctx context.Context, firstName, lastName string) ([]entity.Employee, error)
}

// employeeUsecase は従業員管理のビジネスロジックを実装します。
type employeeUsecase struct {
	employees EmployeeRepository
}

// NewEmployeeUsecase はemployeeUsecaseの新しいインスタンスを生成します。
func NewEmployeeUsecase(employees EmployeeRepository) *employeeUsecase {
	return &employeeUsecase{employees: employees}
}

// SaveEmployee は新しい従業員を登録します。
// 同じメールアドレスの従業員が既に存在する場合、ErrEmployeeAlreadyExistsを返し、書き込みは行いません。
// 確認と保存はアトミックではないため、同時登録はストレージのユニーク制約で弾かれます。
func (u *employeeUsecase) SaveEmployee(ctx context.Context, e entity.Employee) (entity.Employee, error) {
	_, found, err := u.employees.FindByEmail(ctx, e.Email)
	if err != nil {
		return entity.Employee{}, fmt.Errorf("failed to look up employee by email: %w", err)
	}
	if found {
		return entity.Employee{}, fmt.Errorf("%w: %s", ErrEmployeeAlreadyExists, e.Email)
	}
	return u.employees.Save(ctx, e)
}

// GetAllEmployees は全従業員を返します。
func (u *employeeUsecase) GetAllEmployees(ctx context.Context) ([]entity.Employee, error) {
	return u.employees.FindAll(ctx)
}

// GetEmployeeByID はIDで従業員を取得します。
func (u *employeeUsecase) GetEmployeeByID(ctx context.Context, id int64) (entity.Employee, bool, error) {
	return u.employees.FindByID(ctx, id)
}

// UpdateEmployee は渡された従業員をそのまま保存します。
// 存在確認やメール重複の再チェックは呼び出し側の責務です。
func (u *employeeUsecase) UpdateEmployee(ctx context.Context, e entity.Employee) (entity.Employee, error) {
	return u.employees.Save(ctx, e)
}

// DeleteEmployee はIDで従業員を削除します。
func (u *employeeUsecase) DeleteEmployee(ctx context.Context, id int64) error {
	return u.employees.DeleteByID(ctx, id)
}

// SearchEmployeesByName は姓名で従業員を検索します。
func (u *employeeUsecase) SearchEmployeesByName(ctx context.Context, firstName, lastName string) ([]entity.Employee, error) {
	return u.employees.FindByNames(ctx, firstName, lastName)
}
