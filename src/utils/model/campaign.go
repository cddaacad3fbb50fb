package model

import (
	"math/big"
	"strings"
	"time"

	"github.com/jackc/pgtype"
)

const TableCampaigns = "campaigns"

// CampaignStatus is the lifecycle state of the mirrored record.
// A single overloaded "claimed" boolean is deliberately avoided: a claim and a
// call-off are different terminal states even though the contract folds both
// into one flag.
type CampaignStatus string

const (
	CampaignStatusOpen      CampaignStatus = "open"
	CampaignStatusClaimed   CampaignStatus = "claimed"
	CampaignStatusCalledOff CampaignStatus = "called_off"
)

func (status CampaignStatus) IsTerminal() bool {
	return status == CampaignStatusClaimed || status == CampaignStatusCalledOff
}

// Campaign is the metadata mirror of one on-chain campaign.
// The chain is authoritative for Pledged and Status, this row is a cache
// patched after each confirmed transaction.
type Campaign struct {
	// Opaque record id minted at insertion time
	ID string `gorm:"primaryKey" json:"id"`

	// Identifier assigned by the contract, backfilled from the creation receipt
	ChainID *uint64 `gorm:"column:chain_id" json:"chain_id,omitempty"`

	Creator     string `json:"creator"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// Base-unit amounts as decimal strings, never floats
	Goal    string `json:"goal"`
	Pledged string `json:"pledged"`

	// Unix seconds
	Deadline int64 `json:"deadline"`

	Status CampaignStatus `gorm:"default:'open'" json:"status"`

	// Creation receipt summary (tx hash, block), audit only
	CreationReceipt pgtype.JSONB `gorm:"type:jsonb" json:"creation_receipt,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Campaign) TableName() string {
	return TableCampaigns
}

func (self *Campaign) GoalInt() *big.Int {
	return parseBase(self.Goal)
}

func (self *Campaign) PledgedInt() *big.Int {
	return parseBase(self.Pledged)
}

// IsCreator compares wallet addresses, always case-insensitive
func (self *Campaign) IsCreator(address string) bool {
	return address != "" && strings.EqualFold(self.Creator, address)
}

func parseBase(s string) *big.Int {
	out, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return new(big.Int)
	}
	return out
}
