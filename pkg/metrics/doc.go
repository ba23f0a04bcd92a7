// Package metrics exports validation statistics to Prometheus.
//
// A Collector implements schema.Observer; pass it to validators with
// schema.WithObserver and mount Handler on the scrape endpoint:
//
//	c := metrics.NewCollector(metrics.Config{Namespace: "schemad"}, nil)
//	v := schema.NewValidator(s, schema.WithName("signup"), schema.WithObserver(c))
//	r.Handle("/metrics", c.Handler())
package metrics
