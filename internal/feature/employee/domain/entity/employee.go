// Package entity defines the domain entities for the employee feature.
package entity

// Employee represents a single employee record.
// ID はストレージ側で採番され、一度割り当てられた値は再利用されません。
type Employee struct {
	// ID is the surrogate key assigned on first persist.
	ID int64 `gorm:"primaryKey;autoIncrement"`

	FirstName string `gorm:"column:first_name;size:255;not null"`
	LastName  string `gorm:"column:last_name;size:255;not null"`

	// Email must be unique across all employees.
	Email string `gorm:"column:email;size:255;not null;uniqueIndex"`
}

// TableName はGORMが使用するテーブル名を返します。
func (Employee) TableName() string {
	return "employee"
}

// Builder はEmployeeを段階的に組み立てるためのビルダーです。
type Builder struct {
	e Employee
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) ID(id int64) *Builder {
	b.e.ID = id
	return b
}

func (b *Builder) FirstName(firstName string) *Builder {
	b.e.FirstName = firstName
	return b
}

func (b *Builder) LastName(lastName string) *Builder {
	b.e.LastName = lastName
	return b
}

func (b *Builder) Email(email string) *Builder {
	b.e.Email = email
	return b
}

// Build returns a copy of the accumulated Employee.
func (b *Builder) Build() Employee {
	return b.e
}
