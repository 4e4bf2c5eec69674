package inbound

import (
	"time"

	"github.com/intelliverse/intelliverse/internal/pkg/valueobject"
)

type ReportRequest struct {
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Location       string              `json:"location"`
	Status         string              `json:"status"`
	OccurredAt     time.Time           `json:"occurred_at,omitempty"`
	ImageKey       string              `json:"image_key,omitempty"`
	Attributes     valueobject.JSONMap `json:"attributes,omitempty"`
	IdempotencyKey string              `json:"idempotency_key,omitempty"`
}

type ReportResponse struct {
	ItemID    int64     `json:"item_id,string"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (ReportResponse) Message() string {
	return "Item reported successfully."
}

type ItemResponse struct {
	ItemID      int64               `json:"item_id,string"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Location    string              `json:"location"`
	OccurredAt  time.Time           `json:"occurred_at"`
	ImageURL    string              `json:"image_url,omitempty"`
	Status      string              `json:"status"`
	Attributes  valueobject.JSONMap `json:"attributes,omitempty"`
	ReportedBy  int64               `json:"reported_by,string"`
	ClaimedBy   *int64              `json:"claimed_by,string,omitempty"`
	ClaimedAt   *time.Time          `json:"claimed_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

type ListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int64          `json:"total"`
}

type ClaimResponse struct {
	ItemID    int64 `json:"item_id,string"`
	ClaimedBy int64 `json:"claimed_by,string"`
}

func (ClaimResponse) Message() string {
	return "Item successfully claimed."
}

type DeleteResponse struct{}

func (DeleteResponse) Message() string {
	return "Item deleted successfully."
}

type ImageUploadRequest struct {
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type ImageUploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}
