package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPromMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	Register(reg)
	SetBuildInfo("1.0.0", "abc", "2026-01-01")
	RecordDefinitions(7)
	RecordSample(true)
	RecordSample(false)
	RecordHostError("params")
	RecordUpdate(true)
	RecordUpdate(false)
	RecordUpdate(false)
	ObserveRequest("/api/v1/params", "200", 10*time.Millisecond)

	if v := testutil.ToFloat64(definitionsTotal); v != 7 {
		t.Fatalf("definitions: %v", v)
	}
	if v := testutil.ToFloat64(samplesTotal.WithLabelValues("success")); v != 1 {
		t.Fatalf("samples success: %v", v)
	}
	if v := testutil.ToFloat64(samplesTotal.WithLabelValues("error")); v != 1 {
		t.Fatalf("samples error: %v", v)
	}
	if v := testutil.ToFloat64(hostErrorsTotal.WithLabelValues("params")); v != 1 {
		t.Fatalf("host errors: %v", v)
	}
	if v := testutil.ToFloat64(updatesTotal.WithLabelValues("rejected")); v != 2 {
		t.Fatalf("updates rejected: %v", v)
	}
	if v := testutil.ToFloat64(buildInfo.WithLabelValues("2026-01-01", "abc", "1.0.0")); v != 1 {
		t.Fatalf("build info: %v", v)
	}
	if n := testutil.CollectAndCount(requestDuration); n != 1 {
		t.Fatalf("request duration series: %d", n)
	}
}
