package bootstrap

import "context"

// AuditLog captures operational events around the server lifecycle. This is
// separate from the workflow audit trail, which lives with the domain data.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
