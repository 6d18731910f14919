// Package notify delivers check results via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured
// in config.toml and degrades to a no-op when no topic is set, so callers
// never branch on whether notifications are enabled.
package notify
