package workflow

type TransitionRequest struct {
	Action  string `json:"action" binding:"required"`
	Comment string `json:"comment"`
	// Nonce is the client-supplied idempotency key; retrying the same
	// (request, action, nonce) returns the already-applied result.
	Nonce string `json:"nonce" binding:"required,max=64"`
	// Override lets the DGPEC push an approval through an exhausted quota.
	Override bool `json:"override"`
	// QuotaDelta is required for dgpec_quota_adjustment and ignored for
	// every other action.
	QuotaDelta *int `json:"quota_delta"`
}

type TransitionResponse struct {
	RequestID  string `json:"request_id"`
	Action     string `json:"action"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	// Replayed marks an idempotent retry that matched an existing entry.
	Replayed bool `json:"replayed,omitempty"`
}

type WorkflowLogResponse struct {
	ID         string         `json:"id"`
	RequestID  string         `json:"request_id"`
	Action     string         `json:"action"`
	FromStatus string         `json:"from_status"`
	ToStatus   string         `json:"to_status"`
	ActorName  string         `json:"actor_name"`
	ActorRole  string         `json:"actor_role"`
	Comment    string         `json:"comment,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Timestamp  string         `json:"timestamp"`
}

type StateResponse struct {
	RequestID     string `json:"request_id"`
	DerivedStatus string `json:"derived_status"`
	CachedStatus  string `json:"cached_status"`
	Entries       int    `json:"entries"`
}
