// Package queries contains read operations for retrieving system state.
// Queries read with SQL through gorm and return flat read models that
// the HTTP layer renders directly.
package queries
