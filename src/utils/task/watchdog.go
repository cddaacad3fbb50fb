package task

import (
	"time"

	"github.com/fundflare/mirror/src/utils/config"
)

// Watchdog restarts the watched task whenever the health check fails.
// The watched task is recreated from scratch with the factory function.
type Watchdog struct {
	*Task

	factory       func() *Task
	isOK          func() bool
	checkInterval time.Duration

	watched *Task
}

func NewWatchdog(config *config.Config) (self *Watchdog) {
	self = new(Watchdog)
	self.checkInterval = 30 * time.Second

	self.Task = NewTask(config, "watchdog").
		WithOnBeforeStart(self.startWatched).
		WithSubtaskFunc(self.run).
		WithOnStop(self.stopWatched)

	return
}

func (self *Watchdog) WithTask(factory func() *Task) *Watchdog {
	self.factory = factory
	return self
}

func (self *Watchdog) WithIsOK(isOK func() bool) *Watchdog {
	self.isOK = isOK
	return self
}

func (self *Watchdog) WithCheckInterval(interval time.Duration) *Watchdog {
	self.checkInterval = interval
	return self
}

func (self *Watchdog) startWatched() (err error) {
	self.watched = self.factory()
	return self.watched.Start()
}

func (self *Watchdog) stopWatched() {
	if self.watched != nil {
		self.watched.StopWait()
	}
}

func (self *Watchdog) run() (err error) {
	ticker := time.NewTicker(self.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-self.StopChannel:
			return nil
		case <-ticker.C:
			err = self.check()
			if err != nil {
				return
			}
		}
	}
}

func (self *Watchdog) check() (err error) {
	if self.isOK == nil || self.isOK() {
		return
	}

	self.Log.Warn("Health check failed, restarting watched task")
	self.watched.StopWait()
	self.watched = self.factory()
	return self.watched.Start()
}
