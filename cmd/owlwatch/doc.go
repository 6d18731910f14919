// Command owlwatch tracks TV and anime shows against the TVMaze catalog:
// it records a per-show watermark, surfaces newly aired episodes on a
// timeline, and keeps a watched ledger.
package main
