// Package shared holds code used across packages that belongs to no single
// layer.
//
// The testutil subpackage provides the dataset fixtures and the log capture
// handler used by the package tests:
//
//	datasets := testutil.WriteDatasets(t)
//	logger, logs := testutil.NewTestLogger(t)
//	...
//	testutil.AssertLogContains(t, logs, slog.LevelInfo, "Dataset loaded")
package shared
