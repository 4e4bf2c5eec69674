package entity

import (
	"time"

	"github.com/intelliverse/intelliverse/internal/pkg/valueobject"
)

// ItemStatus tracks an item through its lifecycle. A claimed item keeps its
// record (with claimant and timestamp) rather than disappearing.
type ItemStatus string

const (
	ItemStatusUnknown ItemStatus = ""
	ItemStatusLost    ItemStatus = "lost"
	ItemStatusFound   ItemStatus = "found"
	ItemStatusClaimed ItemStatus = "claimed"
)

func ItemStatusFromString(str string) ItemStatus {
	switch str {
	case "lost":
		return ItemStatusLost
	case "found":
		return ItemStatusFound
	case "claimed":
		return ItemStatusClaimed
	default:
		return ItemStatusUnknown
	}
}

func (s ItemStatus) String() string {
	return string(s)
}

// IsReportable reports whether the status can be set at report time. Claimed
// is reachable only through the claim operation.
func (s ItemStatus) IsReportable() bool {
	return s == ItemStatusLost || s == ItemStatusFound
}

func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusLost, ItemStatusFound, ItemStatusClaimed:
		return true
	default:
		return false
	}
}

// Item is a lost or found report. ImageKey points into object storage;
// presigned URLs are minted on read. Attributes carries free-form detail
// (color, brand, serial number) without schema churn.
type Item struct {
	ID          int64
	Title       string
	Description string
	Location    string
	OccurredAt  time.Time
	ImageKey    string
	Status      ItemStatus
	Attributes  valueobject.JSONMap
	ReportedBy  int64
	ClaimedBy   *int64
	ClaimedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewItem carries the fields needed to persist a fresh report.
type NewItem struct {
	ID          int64
	Title       string
	Description string
	Location    string
	OccurredAt  time.Time
	ImageKey    string
	Status      ItemStatus
	Attributes  valueobject.JSONMap
	ReportedBy  int64
}

// ItemListFilter narrows the item listing.
type ItemListFilter struct {
	Status   ItemStatus
	Location string
	Limit    int
	Offset   int
}

// ItemReporter is the contact of the identity that filed an item, used to
// notify them when someone claims it.
type ItemReporter struct {
	Title      string
	ReportedBy int64
	Email      string
	FullName   string
}
