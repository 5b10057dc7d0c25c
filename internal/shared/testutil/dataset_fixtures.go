package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"bikeshare/internal/config"
)

// ChicagoCSV is six trips in the published layout: an unnamed index column,
// a UTF-8 BOM and both optional columns. One rider has no gender or birth
// year. Trips fall on January (2), March, May and June (2).
const ChicagoCSV = "\uFEFF,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year\n" +
	"1423854,2017-06-23 15:09:32,2017-06-23 15:14:53,321,Wood St & Hubbard St,Damen Ave & Chicago Ave,Subscriber,Male,1992.0\n" +
	"955915,2017-05-25 18:19:03,2017-05-25 18:45:53,1610,Theater on the Lake,Sheffield Ave & Waveland Ave,Subscriber,Female,1992.0\n" +
	"9031,2017-01-04 08:27:49,2017-01-04 08:34:45,416,May St & Taylor St,Wood St & Taylor St,Subscriber,Male,1981.0\n" +
	"304487,2017-03-06 13:49:38,2017-03-06 13:55:28,350,Christiana Ave & Lawrence Ave,St. Louis Ave & Balmoral Ave,Subscriber,Male,1986.0\n" +
	"45207,2017-01-17 14:53:07,2017-01-17 15:02:03,534,Clark St & Randolph St,Desplaines St & Jackson Blvd,Customer,,\n" +
	"1473887,2017-06-26 09:01:20,2017-06-26 09:11:06,586,Clinton St & Washington Blvd,Canal St & Taylor St,Subscriber,Male,1990.0\n"

// WashingtonCSV has neither Gender nor Birth Year
const WashingtonCSV = ",Start Time,End Time,Trip Duration,Start Station,End Station,User Type\n" +
	"1621326,2017-06-21 08:36:34,2017-06-21 08:44:43,489.066,14th & Belmont St NW,15th & K St NW,Subscriber\n" +
	"482740,2017-03-11 10:40:00,2017-03-11 10:46:00,402.549,Yuma St & Tenley Circle NW,Connecticut Ave & Yuma St NW,Subscriber\n" +
	"1330037,2017-05-30 01:02:59,2017-05-30 01:13:37,637.251,17th St & Massachusetts Ave NW,5th & K St NW,Subscriber\n"

// WriteDatasets writes the chicago and washington fixtures into a temp
// directory and returns a datasets config pointing at them. A third region,
// "new york city", is configured but its file is never written.
func WriteDatasets(t *testing.T) config.DatasetsConfig {
	t.Helper()

	dir := t.TempDir()
	for name, content := range map[string]string{
		"chicago.csv":    ChicagoCSV,
		"washington.csv": WashingtonCSV,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}

	return config.DatasetsConfig{
		DataDir: dir,
		Files: map[string]string{
			"chicago":       "chicago.csv",
			"new york city": "new_york_city.csv",
			"washington":    "washington.csv",
		},
	}
}

// DiscardLogger returns a logger that drops everything
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
