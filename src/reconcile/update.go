package reconcile

import "encoding/json"

type UpdateKind string

const (
	UpdateCreated UpdateKind = "created"
	UpdateFunded  UpdateKind = "funded"
	UpdateClaimed UpdateKind = "claimed"
	UpdateCalled  UpdateKind = "called_off"
	UpdateHealed  UpdateKind = "healed"
)

// CampaignUpdate is published to Redis after every successful store patch so
// sibling instances can drop their cached lists
type CampaignUpdate struct {
	Kind     UpdateKind `json:"kind"`
	RecordID string     `json:"record_id"`
	ChainID  *uint64    `json:"chain_id,omitempty"`
}

func (self *CampaignUpdate) MarshalBinary() ([]byte, error) {
	return json.Marshal(self)
}
