package sweep_pending

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("sweep_pending: internal error")
)
