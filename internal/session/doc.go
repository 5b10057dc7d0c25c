// Package session runs the interactive console exploration.
//
// The flow is an explicit state machine:
//
//	Prompting  --filters_chosen-->  Loaded
//	Loaded     --show_rows-->       Paginating  --show_rows--> Paginating
//	Loaded     --proceed-->         Reporting
//	Paginating --proceed-->         Reporting
//	Loaded, Paginating, Reporting --restart--> Prompting
//	any state  --quit-->            Done
//
// Machine only tracks the state. Runner asks the questions, maps the answers
// to events, and calls the analysis service and text exporter.
package session
