// internal/gateway/audit/redis_store.go
// Redis-backed audit backend for multi-instance gateway deployments, so the
// diagnostic trail survives a single instance restarting. Adapted from the
// teacher's retention/redis.go capped-list pattern, generalized to
// JSON-encoded Record values under a gateway-themed key.
package audit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rdkcentral/appgateway/internal/logging"
	"github.com/rdkcentral/appgateway/internal/util"
)

const redisKey = "appgateway:audit"

type redisStore struct {
	cli       *redis.Client
	retention time.Duration
	maxLen    int64
}

// NewRedis returns a Store backed by Redis. writesPerSecond estimates
// dispatch volume and sizes the capped list accordingly.
func NewRedis(cli *redis.Client, retention time.Duration, writesPerSecond int) Store {
	if retention < time.Second {
		retention = time.Second
	}
	if writesPerSecond <= 0 {
		writesPerSecond = 20
	}
	maxLen := int64(retention.Seconds()*float64(writesPerSecond)) + 100
	return &redisStore{cli: cli, retention: retention, maxLen: maxLen}
}

// Write persists record with up to two quick retries on transient
// connection errors. Unlike the Bridge's downstream invokes, the audit
// trail is diagnostic-only and off the dispatch critical path, so a
// dependency-free backoff (util.Backoff) is enough here rather than
// reaching for cenkalti/backoff's fuller state machine.
func (r *redisStore) Write(record Record) error {
	ctx := context.Background()
	b, err := marshal(record)
	if err != nil {
		return err
	}

	bo := util.NewBackoff()
	bo.Base = 10 * time.Millisecond
	bo.Max = 50 * time.Millisecond

	var execErr error
	for attempt := 0; attempt < 3; attempt++ {
		pipe := r.cli.Pipeline()
		pipe.LPush(ctx, redisKey, b)
		pipe.LTrim(ctx, redisKey, 0, r.maxLen)
		pipe.Expire(ctx, redisKey, r.retention)
		if _, execErr = pipe.Exec(ctx); execErr == nil {
			return nil
		}
		time.Sleep(bo.Next())
	}
	logging.Sugar().Warnw("audit: redis write failed", "err", execErr)
	return nil
}

func (r *redisStore) ReadAll() []Record {
	ctx := context.Background()
	vals, err := r.cli.LRange(ctx, redisKey, 0, -1).Result()
	if err != nil {
		logging.Sugar().Warnw("audit: redis read failed", "err", err)
		return nil
	}
	n := len(vals)
	out := make([]Record, 0, n)
	for i := n - 1; i >= 0; i-- {
		var rec Record
		if err := unmarshal([]byte(vals[i]), &rec); err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out
}
