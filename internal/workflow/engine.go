package workflow

import "github.com/naywayne90/arti-key-web/internal/domain"

// Rule describes one legal transition: the action is only valid from From,
// requires Role, and lands the request in Next. Actions map to exactly one
// rule, so the table is keyed by action name.
type Rule struct {
	From string
	Role string
	Next string
}

var transitionTable = map[string]Rule{
	domain.ActionManagerApproval: {
		From: domain.StatusSubmitted,
		Role: domain.RoleManager,
		Next: domain.StatusPendingDGPEC,
	},
	domain.ActionManagerRejection: {
		From: domain.StatusSubmitted,
		Role: domain.RoleManager,
		Next: domain.StatusRejected,
	},
	domain.ActionDGPECApproval: {
		From: domain.StatusPendingDGPEC,
		Role: domain.RoleDGPEC,
		Next: domain.StatusPendingDG,
	},
	domain.ActionDGPECRejection: {
		From: domain.StatusPendingDGPEC,
		Role: domain.RoleDGPEC,
		Next: domain.StatusRejected,
	},
	// Side-effect only action, the request stays with the DGPEC.
	domain.ActionDGPECQuotaAdjustment: {
		From: domain.StatusPendingDGPEC,
		Role: domain.RoleDGPEC,
		Next: domain.StatusPendingDGPEC,
	},
	domain.ActionDGApproval: {
		From: domain.StatusPendingDG,
		Role: domain.RoleDG,
		Next: domain.StatusApproved,
	},
	domain.ActionDGRejection: {
		From: domain.StatusPendingDG,
		Role: domain.RoleDG,
		Next: domain.StatusRejected,
	},
	domain.ActionDGReturnToDGPEC: {
		From: domain.StatusPendingDG,
		Role: domain.RoleDG,
		Next: domain.StatusPendingDGPEC,
	},
}

// LookupRule returns the transition rule for an action. The second return
// is false for unknown actions and for submission, which is only ever
// produced by request creation.
func LookupRule(action string) (Rule, bool) {
	r, ok := transitionTable[action]
	return r, ok
}

// IsRejection reports whether the action requires a non-empty comment.
func IsRejection(action string) bool {
	switch action {
	case domain.ActionManagerRejection, domain.ActionDGPECRejection, domain.ActionDGRejection:
		return true
	}
	return false
}

// CurrentState folds the ordered audit entries from the initial state. An
// empty log yields SUBMITTED. The cached status column on the request row
// must always equal this fold; the entries are trusted to be legal because
// they are only ever appended after passing the rule checks.
func CurrentState(entries []WorkflowLog) string {
	state := domain.StatusSubmitted
	for _, e := range entries {
		if e.Action == domain.ActionSubmission {
			state = domain.StatusSubmitted
			continue
		}
		rule, ok := transitionTable[e.Action]
		if !ok || rule.From != state {
			continue
		}
		state = rule.Next
	}
	return state
}
