package gateway

import (
	"context"
	"time"

	"github.com/fundflare/mirror/src/utils/config"
	"github.com/fundflare/mirror/src/utils/publisher"
	"github.com/fundflare/mirror/src/utils/task"

	"github.com/redis/go-redis/v9"
)

// Invalidator drops the cached list view when a sibling instance publishes
// a campaign update. The message payload is not inspected, any update on
// the channel makes the cached list stale.
type Invalidator struct {
	*task.Task

	redisConfig config.Redis
	server      *Server

	client *redis.Client
	pubsub *redis.PubSub
}

func NewInvalidator(config *config.Config, server *Server) (self *Invalidator) {
	self = new(Invalidator)
	self.redisConfig = config.Redis
	self.server = server

	self.Task = task.NewTask(config, "cache-invalidator").
		WithOnBeforeStart(self.connect).
		WithSubtaskFunc(self.run).
		WithOnStop(self.unsubscribe).
		WithOnAfterStop(self.disconnect)

	return
}

func (self *Invalidator) connect() (err error) {
	self.client, err = publisher.NewRedisClient(self.redisConfig, self.Name)
	if err != nil {
		self.Log.WithError(err).Error("Failed to setup Redis client")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err = self.client.Ping(ctx).Err()
	if err != nil {
		self.Log.WithError(err).Error("Failed to ping Redis")
		return
	}

	self.pubsub = self.client.Subscribe(context.Background(), self.redisConfig.ChannelName)
	return
}

func (self *Invalidator) run() (err error) {
	for range self.pubsub.Channel() {
		self.server.FlushListCache()
	}
	return
}

func (self *Invalidator) unsubscribe() {
	err := self.pubsub.Close()
	if err != nil {
		self.Log.WithError(err).Error("Failed to close subscription")
	}
}

func (self *Invalidator) disconnect() {
	err := self.client.Close()
	if err != nil {
		self.Log.WithError(err).Error("Failed to close connection")
	}
}
