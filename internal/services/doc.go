// Package services sits between the front ends (console session and HTTP
// handlers) and the data processing core.
//
// AnalysisService turns a validated selection into a filtered view, a
// report of the four statistic groups, and pages of raw rows. Each call
// loads the dataset afresh; nothing is cached between runs. Spans and
// metrics are recorded through the OpenTelemetry providers handed in at
// construction, and both default to no-ops.
//
//	svc := services.NewAnalysisService(loader, validator, logger,
//	    services.WithTracer(providers.Tracer),
//	    services.WithMetrics(metrics))
//
//	analysis, err := svc.Load(ctx, validation.Selection{Region: "chicago", Month: "march", Day: "all"})
//	report, err := svc.Report(ctx, analysis)
//	page := svc.Page(ctx, analysis, 0)
//
// HealthService reports liveness, and readiness based on whether the
// configured dataset files are present and readable.
package services
