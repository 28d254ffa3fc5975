// Package usecase implements the business logic for the employee feature.
package usecase

import "errors"

var (
	// ErrEmployeeAlreadyExists is returned when an employee with the same email is already stored.
	// Callers receive it wrapped with the offending email; match it with errors.Is.
	ErrEmployeeAlreadyExists = errors.New("employee already exists with given email")
)
