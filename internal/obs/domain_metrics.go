package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// DisplayComputeTotal counts display plan computations by location and outcome.
	DisplayComputeTotal *prometheus.CounterVec
	// SettingsUpdateTotal counts admin settings writes by domain and outcome.
	SettingsUpdateTotal *prometheus.CounterVec
	// GridCacheHits counts grid pix lookups served from cache.
	GridCacheHits prometheus.Counter
	// GridCacheMisses counts grid pix lookups that had to recompute.
	GridCacheMisses prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		DisplayComputeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "display_compute_total",
			Help:      "Count of display plan computations by location and outcome.",
		}, []string{"location", "result"})
		SettingsUpdateTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settings_update_total",
			Help:      "Count of admin settings writes by domain and outcome.",
		}, []string{"domain", "result"})
		GridCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grid_cache_hits_total",
			Help:      "Grid pix lookups served from the Redis cache.",
		})
		GridCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grid_cache_misses_total",
			Help:      "Grid pix lookups that recomputed the payload.",
		})

		mustRegisterCollector(reg, DisplayComputeTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				DisplayComputeTotal = v
			}
		})
		mustRegisterCollector(reg, SettingsUpdateTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				SettingsUpdateTotal = v
			}
		})
		mustRegisterCollector(reg, GridCacheHits, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				GridCacheHits = v
			}
		})
		mustRegisterCollector(reg, GridCacheMisses, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				GridCacheMisses = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
