// Package routestate implements the per-route scalar cache (spec §4.C): a
// sparse map from a small integer state key to a cached value, owned by the
// route as a sibling field rather than a back-reference (spec §9's
// cyclic-route design note), refreshed wholesale on structural change.
package routestate

// Key identifies one cached quantity a ConstraintModule owns (e.g. latest
// feasible arrival per activity, running capacity, accumulated distance).
// Keys are allocated once via NewKey so two modules can never collide.
type Key int

var nextKey Key

// NewKey allocates a fresh, process-unique state key.
func NewKey() Key {
	k := nextKey
	nextKey++
	return k
}

// Core state keys shared by the canonical constraint modules (spec §4.C).
var (
	KeyLatestArrival     = NewKey() // []float64, one entry per activity
	KeyWaitingSlack      = NewKey() // []float64, one entry per activity
	KeyCurrentCapacity   = NewKey() // map[string][]int, per-dimension running load by activity
	KeyFutureCapacity    = NewKey() // map[string][]int, per-dimension max load from activity to route end
	KeyAccumulatedDistance = NewKey() // []float64
	KeyAccumulatedDuration = NewKey() // []float64
	KeyTotalUnassigned   = NewKey() // int, a solution-level aggregate
)

// Cache is the per-route sparse map of Key -> cached value. It must be
// recomputed by a module's AcceptRoute pass after any structural change to
// the route's tour; readers must never observe a key a prior mutation made
// stale (spec §4.C's "constraints must not read stale keys" discipline is
// enforced by pipeline call order, not by this type).
type Cache struct {
	values map[Key]interface{}
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{values: make(map[Key]interface{})}
}

// Set stores value under key.
func (c *Cache) Set(key Key, value interface{}) {
	c.values[key] = value
}

// Get returns the raw value under key and whether it was present.
func (c *Cache) Get(key Key) (interface{}, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Floats returns the []float64 stored under key, or nil.
func (c *Cache) Floats(key Key) []float64 {
	v, _ := c.values[key].([]float64)
	return v
}

// Ints returns the map[string][]int stored under key, or nil.
func (c *Cache) Ints(key Key) map[string][]int {
	v, _ := c.values[key].(map[string][]int)
	return v
}

// Int returns the int stored under key, defaulting to 0.
func (c *Cache) Int(key Key) int {
	v, _ := c.values[key].(int)
	return v
}

// Clear removes every cached key, used when a route is rebuilt from scratch.
func (c *Cache) Clear() {
	c.values = make(map[Key]interface{})
}

// Clone returns an independent copy, so InsertionContext forking never
// shares mutable cache state between two solutions.
func (c *Cache) Clone() *Cache {
	cp := make(map[Key]interface{}, len(c.values))
	for k, v := range c.values {
		cp[k] = v
	}
	return &Cache{values: cp}
}
