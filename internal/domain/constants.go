package domain

// Fixed service model: every booking occupies exactly two hours starting at
// its scheduled time. No end time is stored anywhere.
const (
	ServiceDurationMinutes = 120

	// BufferMinutes is the travel/preparation margin applied on both sides
	// of a slot when checking whether a staff member is free. Availability
	// therefore tests a four-hour window against the plain two-hour
	// occupied windows of existing assignments.
	BufferMinutes = 120
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// QueuedStatuses список статусов, при которых бронирование находится в
// очереди на назначение. Sweeper обрабатывает оба статуса: новые записи
// движок создает со статусом pending, статус waiting остался от legacy
// системы и принимается для совместимости.
var QueuedStatuses = []BookingStatus{
	StatusPending,
	StatusWaiting,
}
