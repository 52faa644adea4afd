package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/pitchmart/internal/config"
	"github.com/riskibarqy/pitchmart/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "pitchmart-pipeline",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestStartPprofServer_Disabled(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("start pprof: %v", err)
	}
	if srv != nil {
		t.Fatal("expected no server when pprof is disabled")
	}
}

func TestStartMetricsServer_Disabled(t *testing.T) {
	srv, err := StartMetricsServer(config.Config{MetricsEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("start metrics: %v", err)
	}
	if srv != nil {
		t.Fatal("expected no server when metrics endpoint is disabled")
	}
}
