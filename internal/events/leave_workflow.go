package events

import "time"

const LeaveWorkflowTopic = "hr.leave.workflow.v1"

const EventTypeWorkflowTransitioned = "leave.workflow.transitioned"

// LeaveWorkflowEvent is emitted through the outbox after every successful
// workflow transition (submission included). The notification consumer fans
// it out to the next responsible party.
type LeaveWorkflowEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id"`
	RequesterID   string    `json:"requester_id"`
	RequesterName string    `json:"requester_name"`
	Department    string    `json:"department"`
	LeaveType     string    `json:"leave_type"`
	WorkingDays   int       `json:"working_days"`
	Action        string    `json:"action"`
	NewStatus     string    `json:"new_status"`
	ActorName     string    `json:"actor_name"`
	ActorRole     string    `json:"actor_role"`
	Comment       string    `json:"comment,omitempty"`
	Nonce         string    `json:"nonce,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
