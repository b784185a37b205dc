package available_staff

import (
	"time"

	"github.com/m04kA/SMC-StaffingService/pkg/types"
)

// Request модель запроса на подбор свободных сотрудников
type Request struct {
	Date      time.Time        // Дата слота (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
}

// Candidate свободный сотрудник
type Candidate struct {
	ID   int64  // ID сотрудника
	Name string // Имя сотрудника
}

// Response модель ответа со списком свободных сотрудников.
// Порядок значим: первый элемент - кандидат с наивысшим приоритетом
// (порядок справочника, по возрастанию ID).
type Response struct {
	Candidates []Candidate
}

// First возвращает кандидата с наивысшим приоритетом
func (r *Response) First() (Candidate, bool) {
	if len(r.Candidates) == 0 {
		return Candidate{}, false
	}
	return r.Candidates[0], true
}
