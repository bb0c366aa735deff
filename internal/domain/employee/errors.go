package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNotDirectReport  = errors.New("employee does not report to you")
)
