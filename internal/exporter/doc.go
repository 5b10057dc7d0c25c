// Package exporter renders analysis results as plain console text.
//
// TextExporter writes the four statistic groups of a report, each opened by
// a heading and closed by its elapsed time and a 40-dash separator, and
// writes pages of raw trips as aligned tables:
//
//	exp := exporter.NewTextExporter(os.Stdout)
//	exp.WriteReport(report)
//	exp.WritePage(page, store.Capabilities())
//
// Total travel time uses thousands separators; means and timings are shown
// with two decimals.
package exporter
