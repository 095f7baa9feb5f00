// Package objects reads named stateful objects (counters and quotas) from
// the engine and formats them for display.
package objects

import (
	"fmt"

	"github.com/nftjctl/nftjctl/internal/engine"
	"github.com/nftjctl/nftjctl/internal/ruleset"
)

// Counters lists all named counters configured in the system.
func Counters(eng engine.Engine) ([]*ruleset.Counter, error) {
	doc, err := eng.List(engine.ListCounters)
	if err != nil {
		return nil, err
	}
	return doc.Counters(), nil
}

// Quotas lists all named quotas configured in the system.
func Quotas(eng engine.Engine) ([]*ruleset.Quota, error) {
	doc, err := eng.List(engine.ListQuotas)
	if err != nil {
		return nil, err
	}
	return doc.Quotas(), nil
}

// FormatCounter renders one counter the way the listing output does.
func FormatCounter(c *ruleset.Counter) string {
	return fmt.Sprintf("Counter %q in table %s %s: packets %d bytes %d",
		c.Name, c.Family, c.Table, c.Packets, c.Bytes)
}

// FormatQuota renders one quota with its usage against the threshold.
func FormatQuota(q *ruleset.Quota) string {
	return fmt.Sprintf("Quota %q in table %s %s: used %d out of %d bytes (inv: %t)",
		q.Name, q.Family, q.Table, q.Used, q.Bytes, q.Inv)
}
