// Package dto defines data transfer objects for the employee HTTP API.
package dto

import "employee_backend/internal/feature/employee/domain/entity"

// EmployeeReq is the request body for creating or updating an employee.
// notblank は validation.Register で登録されるカスタムルールです。
type EmployeeReq struct {
	FirstName string `json:"firstName" binding:"required,notblank,max=255"`
	LastName  string `json:"lastName" binding:"required,notblank,max=255"`
	Email     string `json:"email" binding:"required,email,max=255"`
}

// EmployeeRes represents an employee in API responses.
type EmployeeRes struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// ErrorResponse is returned on every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ToEntity converts the request into an Employee without an id.
func (r EmployeeReq) ToEntity() entity.Employee {
	return entity.NewBuilder().
		FirstName(r.FirstName).
		LastName(r.LastName).
		Email(r.Email).
		Build()
}

// FromEntity converts an Employee into its response form.
func FromEntity(e entity.Employee) EmployeeRes {
	return EmployeeRes{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
	}
}

// FromEntities converts a list; the result is never nil so it encodes as [].
func FromEntities(es []entity.Employee) []EmployeeRes {
	out := make([]EmployeeRes, 0, len(es))
	for _, e := range es {
		out = append(out, FromEntity(e))
	}
	return out
}
