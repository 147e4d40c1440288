// tracing/tracing.go
package tracing

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"

	"github.com/vre-platform/portal-bff/config"
)

type noopCloser struct{}

func (noopCloser) Close() error { return nil }

// InitTracer wires the global opentracing tracer to a Jaeger agent when
// tracing is enabled; otherwise the noop tracer stays in place.
func InitTracer() (io.Closer, error) {
	if !config.GetBool("tracing.enabled") {
		opentracing.SetGlobalTracer(opentracing.NoopTracer{})
		return noopCloser{}, nil
	}

	cfg := jaegercfg.Configuration{
		ServiceName: config.GetString("tracing.serviceName"),
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LocalAgentHostPort: config.GetString("tracing.agentHostPort"),
		},
	}

	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, err
	}
	opentracing.SetGlobalTracer(tracer)
	return closer, nil
}
