package offender

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/NeuralTrust/ParamGuard/pkg/infra/cache"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "paramguard:offender:"

var ErrOffenderNotFound = errors.New("offender not found")

type Offender struct {
	IP        string `json:"ip"`
	Attacks   int64  `json:"attacks"`
	ExpiresIn int64  `json:"expires_in_seconds"`
	Banned    bool   `json:"banned"`
}

//go:generate mockery --name=Tracker --dir=. --output=./mocks --filename=tracker_mock.go --case=underscore
type Tracker interface {
	Record(ctx context.Context, ip string) (int64, error)
	Get(ctx context.Context, ip string) (*Offender, error)
	IsBanned(ctx context.Context, ip string) bool
	Reset(ctx context.Context, ip string) error
}

type tracker struct {
	cache     cache.Client
	logger    *logrus.Logger
	window    time.Duration
	threshold int64
}

// NewTracker counts attacks per client IP in a fixed window that starts at
// the first recorded attack. A threshold of 0 never bans.
func NewTracker(c cache.Client, logger *logrus.Logger, window time.Duration, threshold int64) Tracker {
	return &tracker{
		cache:     c,
		logger:    logger,
		window:    window,
		threshold: threshold,
	}
}

func key(ip string) string {
	return keyPrefix + ip
}

func (t *tracker) Record(ctx context.Context, ip string) (int64, error) {
	// SET NX EX opens the window and INCR keeps its TTL, in one transaction.
	pipe := t.cache.RedisClient().TxPipeline()
	pipe.SetNX(ctx, key(ip), 0, t.window)
	incr := pipe.Incr(ctx, key(ip))
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to record offender %s: %w", ip, err)
	}
	count := incr.Val()
	if t.threshold > 0 && count == t.threshold {
		t.logger.WithFields(logrus.Fields{
			"ip":      ip,
			"attacks": count,
			"window":  t.window.String(),
		}).Warn("client banned")
	}
	return count, nil
}

func (t *tracker) Get(ctx context.Context, ip string) (*Offender, error) {
	count, err := t.count(ctx, ip)
	if err != nil {
		return nil, err
	}
	ttl, err := t.cache.RedisClient().TTL(ctx, key(ip)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read offender ttl for %s: %w", ip, err)
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Offender{
		IP:        ip,
		Attacks:   count,
		ExpiresIn: int64(ttl / time.Second),
		Banned:    t.banned(count),
	}, nil
}

func (t *tracker) IsBanned(ctx context.Context, ip string) bool {
	if t.threshold <= 0 {
		return false
	}
	count, err := t.count(ctx, ip)
	if err != nil {
		if !errors.Is(err, ErrOffenderNotFound) {
			t.logger.WithError(err).Warn("failed to check offender, allowing request")
		}
		return false
	}
	return t.banned(count)
}

func (t *tracker) Reset(ctx context.Context, ip string) error {
	removed, err := t.cache.RedisClient().Del(ctx, key(ip)).Result()
	if err != nil {
		return fmt.Errorf("failed to reset offender %s: %w", ip, err)
	}
	if removed == 0 {
		return ErrOffenderNotFound
	}
	return nil
}

func (t *tracker) count(ctx context.Context, ip string) (int64, error) {
	raw, err := t.cache.Get(ctx, key(ip))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrOffenderNotFound
		}
		return 0, fmt.Errorf("failed to read offender %s: %w", ip, err)
	}
	count, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid offender counter for %s: %w", ip, err)
	}
	return count, nil
}

func (t *tracker) banned(count int64) bool {
	return t.threshold > 0 && count >= t.threshold
}
