package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NewsletterFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ariss_newsletter_fetches_total",
			Help: "Total number of newsletter refreshes",
		},
		[]string{"status"},
	)

	ContactsParsed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ariss_contacts_parsed",
			Help: "Contacts found in the latest newsletter snapshot",
		},
	)

	DateParseFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ariss_date_parse_failures_total",
			Help: "Schedule lines whose date text could not be parsed",
		},
	)

	ArticlesServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ariss_articles_served_total",
			Help: "Articles rendered by the web viewer",
		},
		[]string{"route"},
	)
)
