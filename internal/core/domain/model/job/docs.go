// Package job provides the Job aggregate: one parcel's proof-of-delivery lifecycle.
//
// The package includes:
//   - Job: the aggregate root holding the parties, addresses, items, status and confirmation code
//   - Status: the lifecycle state machine Waiting -> Transit -> Completed
//   - Item: a parcel line item that is flagged delivered when the job completes
//   - Code: the 4-digit confirmation code handed to the receiver
//   - Factory: builds new jobs from explicit Details
//
// Key business rules:
//   - Status only moves forward; a job may be confirmed straight from Waiting
//   - Completing a job requires a captured signature
//   - created <= updated at all times and updated never moves backwards
//   - The code is drawn uniformly from [1000, 9999] once and never changes
package job
