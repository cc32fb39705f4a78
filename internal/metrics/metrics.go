package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	Extractions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "newsdigest_extractions_total",
		Help: "Extraction outcomes by winning strategy",
	}, []string{"strategy"})
	Summaries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "newsdigest_summaries_total",
		Help: "Summaries produced by method",
	}, []string{"method"})
	FetchErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "newsdigest_fetch_errors_total",
		Help: "Download failures by class",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(Extractions, Summaries, FetchErrors)
}
