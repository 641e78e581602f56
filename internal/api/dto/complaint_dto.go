package dto

import (
	"time"

	"github.com/getaroom/rental-service/internal/domain"
)

// FileComplaintRequest payload.
type FileComplaintRequest struct {
	Against domain.ComplaintTarget `json:"against"`
	Reason  string                 `json:"reason"`
}

// ComplaintResponse response.
type ComplaintResponse struct {
	ID           string                 `json:"id"`
	FiledByID    string                 `json:"filed_by_id"`
	FiledAgainst domain.ComplaintTarget `json:"filed_against"`
	Reason       string                 `json:"reason"`
	Status       domain.ComplaintStatus `json:"status"`
	Date         time.Time              `json:"date"`
}
