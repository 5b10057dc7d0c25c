// Package app wires configuration, logging, telemetry, services and the
// HTTP router into a runnable web application.
//
//	cfg, _ := config.Load(path)
//	logger, _ := infrastructure.InitializeLogger(cfg.Logging)
//	application, err := app.NewApplication(cfg, logger)
//	...
//	err = application.Run(ctx) // returns after ctx is cancelled
//
// Run serves until its context is cancelled, then shuts the server and the
// telemetry providers down within Server.ShutdownTimeout. Errors are
// returned to the caller; the package never exits the process.
//
// NewAnalysisService builds the same analysis stack for the console binary.
package app
