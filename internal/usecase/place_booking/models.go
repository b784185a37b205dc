package place_booking

import (
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/pkg/types"
)

// Outcome результат размещения бронирования
type Outcome string

const (
	// OutcomeAssigned нашёлся свободный сотрудник, назначение создано
	OutcomeAssigned Outcome = "assigned"
	// OutcomePreempted офисное бронирование вытеснило назначение
	// резиденции и забрало её сотрудника
	OutcomePreempted Outcome = "preempted"
	// OutcomeWaiting свободных сотрудников нет, бронирование в очереди
	OutcomeWaiting Outcome = "waiting"
)

// Request модель запроса на создание и размещение бронирования
type Request struct {
	OwnerID      int64               // ID клиента-владельца
	Date         time.Time           // Дата бронирования (без времени)
	StartTime    types.TimeString    // Время начала слота (например, "10:00")
	Address      string              // Адрес обслуживания
	LocationKind domain.LocationKind // Тип локации (office | residence)
}

// AssignedStaff назначенный сотрудник
type AssignedStaff struct {
	ID   int64  // ID сотрудника
	Name string // Имя сотрудника
}

// Response модель ответа с созданным бронированием и результатом размещения
type Response struct {
	BookingID    int64            // ID созданного бронирования
	OwnerID      int64            // ID владельца
	Date         time.Time        // Дата бронирования
	StartTime    types.TimeString // Время начала
	Address      string           // Адрес обслуживания
	LocationKind string           // Тип локации
	Status       string           // Итоговый статус бронирования
	Outcome      Outcome          // Результат размещения

	Staff              *AssignedStaff // Назначенный сотрудник (assigned/preempted)
	DisplacedBookingID *int64         // Вытесненное бронирование (preempted)

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
