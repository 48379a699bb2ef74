// Package cache provides a generic thread-safe LRU cache, used as the
// in-process tier for resolved permission sets.
package cache
