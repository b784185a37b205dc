package force_assign

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("force_assign: booking not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден в Directory
	ErrStaffNotFound = errors.New("force_assign: staff member not found")

	// ErrStaffInactive возвращается при попытке назначить неактивного сотрудника
	ErrStaffInactive = errors.New("force_assign: staff member is inactive")

	// ErrBookingCompleted возвращается при попытке переназначить
	// завершённое бронирование
	ErrBookingCompleted = errors.New("force_assign: booking is already completed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("force_assign: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("force_assign: internal error")
)
