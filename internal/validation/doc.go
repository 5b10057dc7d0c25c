// Package validation guards the boundary between user input and the
// analytics core. SelectionValidator checks region, month and day answers
// against their closed vocabularies using go-playground/validator custom
// tags; DatasetValidator checks that configured dataset files are usable.
package validation
