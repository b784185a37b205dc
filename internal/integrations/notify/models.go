package notify

// Notification уведомление для клиента.
// Адрес получателя резолвит сам сервис уведомлений по ID пользователя.
type Notification struct {
	RecipientID int64  `json:"recipientId"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
}

// ErrorResponse модель ошибки от сервиса уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
