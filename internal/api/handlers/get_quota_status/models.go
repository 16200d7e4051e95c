package get_quota_status

import (
	"time"

	"github.com/m04kA/VenueBookingService/internal/domain"
	getQuotaStatus "github.com/m04kA/VenueBookingService/internal/usecase/get_quota_status"
)

// QuotaStatusResponse HTTP response model
type QuotaStatusResponse struct {
	ClubID      int64  `json:"clubId"`
	EventType   string `json:"eventType"`
	Semester    string `json:"semester"`
	WindowStart string `json:"windowStart"` // RFC3339
	WindowEnd   string `json:"windowEnd"`   // RFC3339
	Count       int    `json:"count"`
	Limit       int    `json:"limit"`
	Limited     bool   `json:"limited"`
	Remaining   int    `json:"remaining"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case.
// Без eventType используется co_curricular, без date - текущий семестр
func ToUseCaseRequest(caller domain.Caller, clubID int64, eventTypeStr, dateStr string) (*getQuotaStatus.Request, error) {
	req := &getQuotaStatus.Request{
		Caller:    caller,
		ClubID:    clubID,
		EventType: domain.EventTypeCoCurricular,
	}

	if eventTypeStr != "" {
		req.EventType = domain.EventType(eventTypeStr)
	}

	if dateStr != "" {
		asOf, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.AsOf = &asOf
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getQuotaStatus.Response) *QuotaStatusResponse {
	return &QuotaStatusResponse{
		ClubID:      resp.ClubID,
		EventType:   string(resp.EventType),
		Semester:    resp.Semester,
		WindowStart: resp.WindowStart.Format(time.RFC3339),
		WindowEnd:   resp.WindowEnd.Format(time.RFC3339),
		Count:       resp.Count,
		Limit:       resp.Limit,
		Limited:     resp.Limited,
		Remaining:   resp.Remaining,
	}
}
