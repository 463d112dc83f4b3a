package errors

import (
	"sort"
	"sync"
)

// Collector gathers the recoverable errors of one analysis run. Scanner
// workers add to it concurrently.
type Collector struct {
	errors []error
	mutex  sync.RWMutex
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{errors: make([]error, 0)}
}

// Add records err. Nil errors are ignored.
func (c *Collector) Add(err error) {
	if err == nil {
		return
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.errors = append(c.errors, err)
}

// Errors returns a copy of the collected errors in insertion order.
func (c *Collector) Errors() []error {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	result := make([]error, len(c.errors))
	copy(result, c.errors)
	return result
}

// Count returns the number of collected errors.
func (c *Collector) Count() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.errors)
}

// HasErrors returns true if anything was collected.
func (c *Collector) HasErrors() bool {
	return c.Count() > 0
}

// Clear drops every collected error.
func (c *Collector) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.errors = c.errors[:0]
}

// CodeCount is one line of a Summary.
type CodeCount struct {
	Code  string
	Count int
}

// Summary groups collected errors by code, sorted by code. Errors that are
// not AnalysisErrors are grouped under ERR_INTERNAL.
func (c *Collector) Summary() []CodeCount {
	counts := make(map[string]int)
	for _, err := range c.Errors() {
		code := ErrCodeInternalError
		if ae, ok := err.(*AnalysisError); ok && ae.Code != "" {
			code = ae.Code
		}
		counts[code]++
	}

	summary := make([]CodeCount, 0, len(counts))
	for code, n := range counts {
		summary = append(summary, CodeCount{Code: code, Count: n})
	}
	sort.Slice(summary, func(i, j int) bool { return summary[i].Code < summary[j].Code })

	return summary
}
