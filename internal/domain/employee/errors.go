package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrHireDateUnknown  = errors.New("employee hire date is not recorded")
)
