package claim_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("claim_booking: booking not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден в Directory
	ErrStaffNotFound = errors.New("claim_booking: staff member not found")

	// ErrStaffInactive возвращается при попытке взять бронирование
	// неактивным сотрудником
	ErrStaffInactive = errors.New("claim_booking: staff member is inactive")

	// ErrNotClaimable возвращается, когда бронирование не в очереди
	ErrNotClaimable = errors.New("claim_booking: booking is not claimable")

	// ErrStaffBusy возвращается, когда буферное окно бронирования
	// пересекается с существующими назначениями сотрудника
	ErrStaffBusy = errors.New("claim_booking: staff member has a conflicting assignment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("claim_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("claim_booking: internal error")
)
