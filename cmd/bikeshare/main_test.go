package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bikeshare/internal/config"
)

func TestConsoleSettings(t *testing.T) {
	tests := []struct {
		output     string
		wantOutput string
	}{
		{output: "console", wantOutput: "discard"},
		{output: "", wantOutput: "discard"},
		{output: "both", wantOutput: "file"},
		{output: "file", wantOutput: "file"},
		{output: "discard", wantOutput: "discard"},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			cfg := config.Default()
			cfg.Logging.Output = tt.output
			cfg.Telemetry.TraceExporter = "stdout"

			consoleSettings(cfg)

			assert.Equal(t, tt.wantOutput, cfg.Logging.Output)
			assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
		})
	}
}
