// Package events holds the document change events that stand in for the
// document store's create/update triggers. Snapshots are written to the
// outbox in the same transaction as the document itself.
package events

const (
	RequestsTopic    = "portal.requests.v1"
	EnrollmentsTopic = "portal.enrollments.v1"

	RequestCreated    = "request.created"
	RequestUpdated    = "request.updated"
	EnrollmentUpdated = "enrollment.updated"

	HeaderEventType     = "event_type"
	HeaderAggregateType = "aggregate_type"
)
