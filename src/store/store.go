// Package store wraps the off-chain metadata database. The rows are an
// advisory cache of on-chain state: reads back list views that must never
// hard-fail, writes are independent partial patches with no cross-patch
// transactionality.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/fundflare/mirror/src/utils/config"
	"github.com/fundflare/mirror/src/utils/logger"
	"github.com/fundflare/mirror/src/utils/model"
	"github.com/fundflare/mirror/src/utils/task"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrStoreWrite = errors.New("metadata store write failed")
	ErrNotFound   = errors.New("campaign record not found")
)

type Store struct {
	Log *logrus.Entry

	config *config.Config
	db     *gorm.DB
}

func NewStore(config *config.Config, db *gorm.DB) (self *Store) {
	self = new(Store)
	self.Log = logger.NewSublogger("store")
	self.config = config
	self.db = db
	return
}

// ListCampaigns fails open: list views always render, a transient read
// failure shows an empty list rather than an error page
func (self *Store) ListCampaigns(ctx context.Context) (campaigns []*model.Campaign) {
	err := self.db.WithContext(ctx).
		Table(model.TableCampaigns).
		Order("created_at DESC").
		Find(&campaigns).
		Error
	if err != nil {
		self.Log.WithError(err).Error("Could not list campaigns, serving empty list")
		return []*model.Campaign{}
	}
	return
}

func (self *Store) GetCampaign(ctx context.Context, recordID string) (campaign *model.Campaign, err error) {
	campaign = new(model.Campaign)
	err = self.db.WithContext(ctx).
		Where("id = ?", recordID).
		First(campaign).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return
}

func (self *Store) GetByChainID(ctx context.Context, chainID uint64) (campaign *model.Campaign, err error) {
	campaign = new(model.Campaign)
	err = self.db.WithContext(ctx).
		Where("chain_id = ?", chainID).
		First(campaign).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return
}

// ListChainLinked returns records that have a chain id, oldest-updated first.
// Used by the sweep that heals stale mirror rows.
func (self *Store) ListChainLinked(ctx context.Context, limit int) (campaigns []*model.Campaign, err error) {
	err = self.db.WithContext(ctx).
		Table(model.TableCampaigns).
		Where("chain_id IS NOT NULL").
		Order("updated_at ASC").
		Limit(limit).
		Find(&campaigns).
		Error
	return
}

// InsertCampaign mints the opaque record id and persists the new mirror row
func (self *Store) InsertCampaign(ctx context.Context, campaign *model.Campaign) (recordID string, err error) {
	campaign.ID = xid.New().String()
	if campaign.Pledged == "" {
		campaign.Pledged = "0"
	}
	if campaign.Status == "" {
		campaign.Status = model.CampaignStatusOpen
	}

	err = self.db.WithContext(ctx).Create(campaign).Error
	if err != nil {
		self.Log.WithError(err).Error("Could not insert campaign record")
		return "", fmt.Errorf("%w: %s", ErrStoreWrite, err.Error())
	}

	self.Log.WithField("record_id", campaign.ID).Debug("Campaign record inserted")
	return campaign.ID, nil
}

// PatchChainID backfills the chain-assigned identifier, immutable once set
func (self *Store) PatchChainID(ctx context.Context, recordID string, chainID uint64) error {
	return self.patch(ctx, recordID, map[string]interface{}{"chain_id": chainID})
}

// PatchPledged overwrites the cached pledged total. Concurrent flows race
// here, last write wins; the chain stays authoritative.
func (self *Store) PatchPledged(ctx context.Context, recordID string, newPledged string) error {
	return self.patch(ctx, recordID, map[string]interface{}{"pledged": newPledged})
}

func (self *Store) PatchStatus(ctx context.Context, recordID string, status model.CampaignStatus) error {
	return self.patch(ctx, recordID, map[string]interface{}{"status": status})
}

// patch applies one independent partial update with bounded retries
func (self *Store) patch(ctx context.Context, recordID string, fields map[string]interface{}) (err error) {
	err = task.NewRetry().
		WithContext(ctx).
		WithMaxElapsedTime(self.config.Reconciler.PatchBackoffMaxElapsedTime).
		WithMaxInterval(self.config.Reconciler.PatchBackoffMaxInterval).
		WithOnError(func(err error, isDurationAcceptable bool) error {
			self.Log.WithError(err).WithField("record_id", recordID).Warn("Patch failed, retrying")
			return err
		}).
		Run(func() error {
			return self.db.WithContext(ctx).
				Table(model.TableCampaigns).
				Where("id = ?", recordID).
				Updates(fields).
				Error
		})
	if err != nil {
		self.Log.WithError(err).WithField("record_id", recordID).Error("Patch failed, no more retries")
		return fmt.Errorf("%w: %s", ErrStoreWrite, err.Error())
	}
	return nil
}
