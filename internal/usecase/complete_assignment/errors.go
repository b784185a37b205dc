package complete_assignment

import "errors"

var (
	// ErrAssignmentNotFound возвращается, когда назначение не найдено
	ErrAssignmentNotFound = errors.New("complete_assignment: assignment not found")

	// ErrAccessDenied возвращается, когда завершить пытается не тот
	// сотрудник, которому принадлежит назначение
	ErrAccessDenied = errors.New("complete_assignment: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_assignment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_assignment: internal error")
)
