// Package cache provides a generic, thread-safe LRU cache.
//
// The validation engine keeps initialized validator instances in an LRU keyed
// by (declaration, candidate). GetOrCreate makes sure that concurrent
// evaluations of the same declaration share one instance and that the
// instance's initialization runs a single time.
//
// # Usage
//
//	c := cache.NewLRU[string, *regexp.Regexp](128)
//
//	re, err := c.GetOrCreate(expr, func() (*regexp.Regexp, error) {
//		return regexp.Compile(expr)
//	})
//
// Failed creations are not cached; the next caller retries.
//
// Evictions can be observed with WithEvictCallback. The callback runs with
// the cache lock held and must not call back into the cache.
package cache
