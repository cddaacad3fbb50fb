package logger

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LOG returns a request-scoped log entry
func LOG(c *gin.Context) *logrus.Entry {
	return NewSublogger("rest").
		WithField("method", c.Request.Method).
		WithField("path", c.Request.URL.Path)
}

// LOGE finishes the request with the given status and returns an entry
// carrying the error. Callers chain .Error(msg) on the result.
func LOGE(c *gin.Context, err error, status int) *logrus.Entry {
	entry := LOG(c)
	if err != nil {
		entry = entry.WithError(err)
		c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
	} else {
		c.AbortWithStatus(status)
	}
	return entry
}
