package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/aide/pkg/catalog"
	"github.com/aretw0/aide/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters fed by engine hooks and catalog loads.
type Metrics struct {
	NodeVisits   *prometheus.CounterVec
	Choices      prometheus.Counter
	NodeNotFound prometheus.Counter
	MediaMissing prometheus.Counter
	Resets       prometheus.Counter
	CatalogLoads *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg.
// Counters already registered on reg are reused, so several assistants
// can share the default registry.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		NodeVisits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aide_node_visits_total",
			Help: "Total number of node renders caused by start, choose or reset",
		}, []string{"node_id"}),
		Choices: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aide_choices_total",
			Help: "Total number of user choices",
		}),
		NodeNotFound: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aide_node_not_found_total",
			Help: "Choices pointing to a node absent from the tree",
		}),
		MediaMissing: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aide_media_missing_total",
			Help: "Video nodes rendered without their video",
		}),
		Resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aide_resets_total",
			Help: "Conversation resets",
		}),
		CatalogLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aide_catalog_loads_total",
			Help: "Video catalog loads by source",
		}, []string{"source"}),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	m.NodeVisits = register(reg, m.NodeVisits, &err)
	m.Choices = register(reg, m.Choices, &err)
	m.NodeNotFound = register(reg, m.NodeNotFound, &err)
	m.MediaMissing = register(reg, m.MediaMissing, &err)
	m.Resets = register(reg, m.Resets, &err)
	m.CatalogLoads = register(reg, m.CatalogLoads, &err)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C, errp *error) C {
	if *errp != nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		*errp = err
	}
	return c
}

// Hooks returns lifecycle hooks incrementing the counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(_ context.Context, e *domain.NodeEvent) {
			m.NodeVisits.WithLabelValues(e.NodeID).Inc()
		},
		OnUserChoice: func(context.Context, *domain.NodeEvent) {
			m.Choices.Inc()
		},
		OnNodeNotFound: func(context.Context, *domain.NodeEvent) {
			m.NodeNotFound.Inc()
		},
		OnMediaMissing: func(context.Context, *domain.NodeEvent) {
			m.MediaMissing.Inc()
		},
		OnReset: func(context.Context, *domain.NodeEvent) {
			m.Resets.Inc()
		},
	}
}

// ObserveCatalog records a catalog load. Its signature matches catalog.WithObserver.
func (m *Metrics) ObserveCatalog(src catalog.Source, size int) {
	m.CatalogLoads.WithLabelValues(string(src)).Inc()
}
