package event

const ItemReportedDestination string = "lostfound.item.reported"

const ItemReportedConsumerNotice string = "lostfound_item_reported_notice"

type ItemReportedMessage struct {
	ItemID     int64  `json:"item_id"`
	Title      string `json:"title"`
	Location   string `json:"location"`
	Status     string `json:"status"`
	ReportedBy int64  `json:"reported_by"`
}
