package event

const ItemClaimedDestination string = "lostfound.item.claimed"

const ItemClaimedConsumerNotice string = "lostfound_item_claimed_notice"

type ItemClaimedMessage struct {
	ItemID    int64 `json:"item_id"`
	ClaimedBy int64 `json:"claimed_by"`
}
