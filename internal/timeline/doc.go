// Package timeline owns the plain-text watch timeline: the line format
// new-episode events are recorded in, and the newest-first file they are
// stored in.
//
// Each line is four fields joined by " | ": date, show name, episode code,
// episode title. The first three fields double as the identity the watched
// ledger keys on, so the format is append-only and never rewritten in
// place.
package timeline
