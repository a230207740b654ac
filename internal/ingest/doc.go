// Package ingest turns the university timetable feed into timetable listings.
//
// Key responsibilities:
//   - Decoding the vendor feed with its object key order intact
//   - Reshaping a subject's activities into components and streams
//   - Correcting known week pattern defects in semester 2 data
//   - Fetching subjects over HTTP
//   - Loading already shaped listings from JSON or YAML files
//
// Nothing in this package returns partially converted data: a single bad
// activity fails the whole listing.
package ingest
