package metrics_test

import (
	"testing"

	"github.com/climengine/weiqi/metrics"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestNewRecorderRegistersAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)

	rec.Simulations.Add(3)
	rec.Resignations.Inc()
	rec.FastplayTerminations.WithLabelValues("fastplay5").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	var simsValue float64
	for _, mf := range families {
		if mf.GetName() == "weiqi_mcts_simulations_total" {
			simsValue = getCounterValue(mf)
		}
	}
	require.Equal(t, float64(3), simsValue)
}

func getCounterValue(mf *dto.MetricFamily) float64 {
	for _, m := range mf.GetMetric() {
		if m.GetCounter() != nil {
			return m.GetCounter().GetValue()
		}
	}
	return 0
}
