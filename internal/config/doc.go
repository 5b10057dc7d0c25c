// Package config provides configuration management for the bikeshare explorer.
// It merges defaults, an optional YAML file and environment variables into a
// single Config value and validates the result.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern BIKESHARE_* for namespacing:
//
//	BIKESHARE_DATASETS_DATA_DIR=/srv/bikeshare
//	BIKESHARE_DATASETS_FILES="chicago:chicago.csv,washington:washington.xlsx"
//	BIKESHARE_SERVER_PORT=8080
//	BIKESHARE_LOGGING_LEVEL=debug
//
// # Datasets
//
// The region to file mapping is data, not code. The defaults reproduce the
// three published datasets:
//
//	datasets:
//	  data_dir: data
//	  files:
//	    chicago: chicago.csv
//	    new york city: new_york_city.csv
//	    washington: washington.csv
//
// Relative file names resolve against data_dir; see ResolveDataDir for how a
// relative data_dir itself is located.
//
// # Usage
//
//	cfg, err := config.Load(*configPath)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	path, ok := cfg.Datasets.Path("chicago")
package config
