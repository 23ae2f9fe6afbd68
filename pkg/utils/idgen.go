package utils

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDGenerator issues receipt identifiers.
type IDGenerator interface {
	NewID() string
}

const (
	IDStrategyTimestamp = "timestamp"
	IDStrategyUUID      = "uuid"
)

// NewIDGenerator creates the generator for the configured strategy.
//
//	strategy: "timestamp" (default) or "uuid"
func NewIDGenerator(strategy string, now func() time.Time) (IDGenerator, error) {
	switch strategy {
	case IDStrategyTimestamp, "":
		return NewTimestampIDGenerator(now), nil
	case IDStrategyUUID:
		return NewUUIDGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q (use timestamp or uuid)", strategy)
	}
}

type timestampIDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewTimestampIDGenerator issues Unix millisecond strings, the format the
// browser client used. Values are strictly increasing within a process.
func NewTimestampIDGenerator(now func() time.Time) IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &timestampIDGenerator{now: now}
}

func (g *timestampIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

type uuidIDGenerator struct{}

// NewUUIDGenerator issues random UUIDs.
func NewUUIDGenerator() IDGenerator {
	return uuidIDGenerator{}
}

func (uuidIDGenerator) NewID() string {
	return uuid.New().String()
}
