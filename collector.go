package pavl

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// StatsSource is anything reporting tree statistics, usually a *Tree.
type StatsSource interface {
	Stats() Stats
}

// Collector exports the arena statistics of a set of named trees as
// Prometheus gauges, labeled by tree name and backend.
type Collector struct {
	mu       sync.Mutex
	sources  map[string]StatsSource
	items    *prometheus.Desc
	nodes    *prometheus.Desc
	versions *prometheus.Desc
	logs     *prometheus.Desc
	copies   *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector with metric names prefixed by namespace.
func NewCollector(namespace string) *Collector {
	labels := []string{"tree", "backend"}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "tree", name), help, labels, nil)
	}
	return &Collector{
		sources:  make(map[string]StatsSource),
		items:    desc("items", "Number of items ever inserted."),
		nodes:    desc("nodes", "Number of node records, including copies."),
		versions: desc("versions", "Number of committed versions."),
		logs:     desc("log_entries", "Number of fat-node change-log entries."),
		copies:   desc("copies", "Number of node records created by copying."),
	}
}

// Add registers a tree under a name, replacing any previous one.
func (c *Collector) Add(name string, src StatsSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[name] = src
}

// Remove unregisters a tree.
func (c *Collector) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sources, name)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.items
	ch <- c.nodes
	ch <- c.versions
	ch <- c.logs
	ch <- c.copies
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	names := make([]string, 0, len(c.sources))
	for name := range c.sources {
		names = append(names, name)
	}
	sources := make([]StatsSource, len(names))
	sort.Strings(names)
	for i, name := range names {
		sources[i] = c.sources[name]
	}
	c.mu.Unlock()
	for i, src := range sources {
		s := src.Stats()
		backend := s.Backend.String()
		gauge := func(d *prometheus.Desc, v int) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v), names[i], backend)
		}
		gauge(c.items, s.Items)
		gauge(c.nodes, s.Nodes)
		gauge(c.versions, s.Versions)
		gauge(c.logs, s.LogEntries)
		gauge(c.copies, s.Copies)
	}
}
