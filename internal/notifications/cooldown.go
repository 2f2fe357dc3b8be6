package notifications

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// cooldownCacheSize bounds the number of tracked budget/kind pairs. Entries
// past the cooldown window are evicted by the cache itself, so the bound
// only matters under unusually many simultaneously-alerting budgets.
const cooldownCacheSize = 4096

// CooldownGate decides whether an alert for a budget may be sent now, and
// records it if so.
type CooldownGate interface {
	ShouldSend(budgetID uint, kind AlertKind) bool
}

// cooldown suppresses repeat alerts for the same budget and kind within a
// fixed window. Backed by an expiring LRU so long-quiet entries do not
// accumulate.
type cooldown struct {
	window time.Duration
	cache  *expirable.LRU[string, time.Time]
	now    func() time.Time
}

// NewCooldown creates a CooldownGate with the given suppression window.
func NewCooldown(window time.Duration) CooldownGate {
	return &cooldown{
		window: window,
		cache:  expirable.NewLRU[string, time.Time](cooldownCacheSize, nil, window),
		now:    time.Now,
	}
}

func cooldownKey(budgetID uint, kind AlertKind) string {
	return fmt.Sprintf("%d_%s", budgetID, kind)
}

// ShouldSend reports whether an alert for the budget/kind pair is outside
// the cooldown window, recording the send time when it is.
func (c *cooldown) ShouldSend(budgetID uint, kind AlertKind) bool {
	key := cooldownKey(budgetID, kind)
	if last, ok := c.cache.Get(key); ok && c.now().Sub(last) < c.window {
		return false
	}
	c.cache.Add(key, c.now())
	return true
}
