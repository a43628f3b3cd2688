package otel

import (
	"context"
	"fmt"

	"lab-website/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var tracerProvider *sdktrace.TracerProvider

// OTLP Exporter
func newOTLPExporter(ctx context.Context) (sdktrace.SpanExporter, error) {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithInsecure(), // 禁用 TLS
		otlptracehttp.WithEndpoint(fmt.Sprintf("%s:%s", // 设置接收端
			config.Get().OTel.AgentHost,
			config.Get().OTel.AgentPort)),
	}

	return otlptracehttp.New(ctx, opts...)
}

// Init 初始化全局 TracerProvider，导出到 OTLP HTTP 接收端
func Init() error {
	// 1. 创建资源
	// 不带 schema URL，避免与 resource.Default() 的版本冲突
	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", config.Get().OTel.ServiceName),
		),
	)
	if err != nil {
		return err
	}

	// 2. 先创建导出器
	exp, err := newOTLPExporter(context.Background())
	if err != nil {
		return err
	}

	// 3. 创建带批处理的 Span Processor
	bsp := sdktrace.NewBatchSpanProcessor(exp)

	// 4. 创建 TracerProvider
	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp),
	)

	// 5. 设置全局 TracerProvider 与 W3C 传播格式
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return nil
}

// Shutdown 确保优雅关闭
func Shutdown(ctx context.Context) error {
	if tracerProvider != nil {
		return tracerProvider.Shutdown(ctx)
	}
	return nil
}
