// Package tracker implements episode-state reconciliation: comparing a
// show's aired catalog against its stored watermark to produce the ordered
// set of newly available episodes and the advanced watermark.
//
// The reconciliation functions are pure. Runner wires them to the catalog
// client, the show store, and the timeline so the check command stays a
// thin shell.
package tracker
