package logging

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type ctxKey string

const (
	ctxRequestID ctxKey = "request_id"
	ctxStartTime ctxKey = "start_time"
	ctxAccountID ctxKey = "account_id"
)

// TagRequest stamps the request with an id and a start time so every
// log line emitted while handling it carries both.
func TagRequest(c *gin.Context, requestID string) {
	c.Set(string(ctxRequestID), requestID)
	c.Set(string(ctxStartTime), time.Now())
}

// TagAccount attaches the resolved account to the request once
// authentication has identified it.
func TagAccount(c *gin.Context, accountID string) {
	c.Set(string(ctxAccountID), accountID)
}

func withGinContext(c *gin.Context, e *zerolog.Event) *zerolog.Event {
	if c == nil {
		return e
	}
	if v, ok := c.Get(string(ctxRequestID)); ok {
		if s, ok2 := v.(string); ok2 && s != "" {
			e.Str("request_id", s)
		}
	}
	if v, ok := c.Get(string(ctxAccountID)); ok {
		if s, ok2 := v.(string); ok2 && s != "" {
			e.Str("account_id", s)
		}
	}
	if v, ok := c.Get(string(ctxStartTime)); ok {
		if t, ok2 := v.(time.Time); ok2 {
			e.Dur("duration", time.Since(t))
		}
	}
	return e
}

func Info(c *gin.Context) *zerolog.Event  { return withGinContext(c, log.Info()) }
func Debug(c *gin.Context) *zerolog.Event { return withGinContext(c, log.Debug()) }
func Warn(c *gin.Context) *zerolog.Event  { return withGinContext(c, log.Warn()) }
func Error(c *gin.Context) *zerolog.Event { return withGinContext(c, log.Error()) }
