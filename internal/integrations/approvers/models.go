package approvers

import "time"

// PendingItem бронирование, ожидающее решения администратора площадки
type PendingItem struct {
	BookingID int64     `json:"bookingId"`
	VenueName string    `json:"venueName"`
	EventName string    `json:"eventName"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	ClubName  string    `json:"clubName"`
}

// PendingMessage тело сообщения в очереди уведомлений
type PendingMessage struct {
	BatchID string        `json:"batchId"`
	Items   []PendingItem `json:"items"`
	SentAt  time.Time     `json:"sentAt"`
}
