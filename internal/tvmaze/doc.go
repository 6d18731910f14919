// Package tvmaze provides the TVMaze API client used for show search and
// episode catalog fetches.
//
// The client converts TVMaze's episode payloads into the neutral
// episode.Record shape at the boundary, so nothing above this package
// depends on TVMaze's JSON. Episode fetches retry transient failures with
// exponential backoff and pause briefly after each success to stay inside
// the API's rate limits.
package tvmaze
