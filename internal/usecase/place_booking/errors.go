package place_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("place_booking: invalid input data")

	// ErrInvalidLocationKind возвращается при неизвестном типе локации
	ErrInvalidLocationKind = errors.New("place_booking: invalid location kind")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("place_booking: internal error")
)
