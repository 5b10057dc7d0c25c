// Package http implements the JSON HTTP handlers. Handlers only parse
// requests and shape responses; the analysis itself is delegated to the
// services package, and every error goes through the RFC 7807 error handler.
//
// Routes mounted under /api/v1:
//
//	GET /regions                          regions, month and day vocabularies
//	GET /regions/{region}/stats           the four statistic groups
//	GET /regions/{region}/trips?page=N    one page of raw trips
//
// Both region endpoints accept month and day query parameters; blank means
// "all". An unknown region answers 404, an invalid filter 400, and a filter
// that matches no trips answers 200 with no_data set.
package http
