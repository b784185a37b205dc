package staffdirectory

// StaffMember модель сотрудника из Directory
type StaffMember struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

// ErrorResponse модель ошибки от Directory
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
