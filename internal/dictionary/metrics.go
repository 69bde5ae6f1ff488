package dictionary

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var dictionaryCacheLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dictionary_cache_lookups_total",
		Help: "Resolved dictionary cache lookups by result",
	},
	[]string{"result"},
)

func recordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	dictionaryCacheLookups.WithLabelValues(result).Inc()
}
