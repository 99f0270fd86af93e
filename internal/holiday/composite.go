package holiday

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Composite asks the primary policy for years it covers and the fallback otherwise
type Composite struct {
	primary  CoveragePolicy
	fallback Policy
	logger   *zap.Logger

	mu     sync.Mutex
	warned map[int]bool
}

// NewComposite creates a new Composite
func NewComposite(primary CoveragePolicy, fallback Policy, logger *zap.Logger) *Composite {
	return &Composite{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		warned:   make(map[int]bool),
	}
}

// Covers reports whether either policy has data for the year
func (cc *Composite) Covers(year int) bool {
	if cc.primary.Covers(year) {
		return true
	}
	if fb, ok := cc.fallback.(CoveragePolicy); ok {
		return fb.Covers(year)
	}
	return cc.fallback != nil
}

// IsHoliday checks the date against the primary policy, falling back once per uncovered year
func (cc *Composite) IsHoliday(date time.Time) bool {
	if cc.primary.Covers(date.Year()) {
		return cc.primary.IsHoliday(date)
	}

	cc.mu.Lock()
	if !cc.warned[date.Year()] {
		cc.warned[date.Year()] = true
		cc.logger.Warn("Primary calendar has no data, falling back",
			zap.Int("year", date.Year()))
	}
	cc.mu.Unlock()

	if cc.fallback == nil {
		return false
	}
	return cc.fallback.IsHoliday(date)
}
