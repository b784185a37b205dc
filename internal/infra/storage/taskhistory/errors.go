package taskhistory

import "errors"

var (
	// ErrRecordNotFound возвращается, когда запись истории не найдена
	ErrRecordNotFound = errors.New("taskhistory.repository: record not found")

	// ErrRecordAlreadyExists возвращается при попытке создать вторую запись
	// для одного назначения (нарушение unique index)
	ErrRecordAlreadyExists = errors.New("taskhistory.repository: record already exists for assignment")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("taskhistory.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("taskhistory.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("taskhistory.repository: failed to scan row")
)
