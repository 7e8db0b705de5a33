// Package notification describes who is told what when a job changes state.
//
// The package is pure: it composes message texts and decides recipients but
// never sends anything. Sending belongs to services.NotificationDispatcher.
//
// Main types:
//   - Event: the lifecycle event a notification belongs to
//   - Role: courier, sender or receiver of a job
//   - RecipientPolicy: ordered roles to notify per event
//   - Composer: builds the text for an (event, role) pair, including the POD link
package notification
