// Package services provides domain services that act on a job without
// belonging to the job aggregate itself.
//
// The package includes:
//   - NotificationDispatcher: fans SMS notifications out to a job's contacts
//     on every lifecycle event and reports the outcome of each send
package services
