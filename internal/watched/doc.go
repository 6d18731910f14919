// Package watched tracks which timeline entries the user has already
// watched.
//
// Identity is the (date, show, episode code) triple derived from the first
// three fields of a timeline line; the episode title deliberately plays no
// part. The ledger is a flat set of serialized keys loaded once at
// construction and persisted after every mutation. Matching is fail-open:
// a line the ledger cannot parse is never hidden, only excluded from
// watched bookkeeping.
package watched
