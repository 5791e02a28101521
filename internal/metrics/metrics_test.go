package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveCalculation(t *testing.T) {
	before := testutil.ToFloat64(SkinsCalculations.WithLabelValues(OutcomeNotFound))

	ObserveCalculation(OutcomeNotFound, time.Now().Add(-5*time.Millisecond))

	after := testutil.ToFloat64(SkinsCalculations.WithLabelValues(OutcomeNotFound))
	if after != before+1 {
		t.Errorf("not_found count = %v, want %v", after, before+1)
	}
}
