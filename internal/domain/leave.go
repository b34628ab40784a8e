package domain

// Leave request statuses. SUBMITTED is the initial status, APPROVED and
// REJECTED are terminal. The stored status is a cache over the workflow log
// and must always match what replaying the log yields.
const (
	StatusSubmitted    = "SUBMITTED"
	StatusPendingDGPEC = "PENDING_DGPEC"
	StatusPendingDG    = "PENDING_DG"
	StatusApproved     = "APPROVED"
	StatusRejected     = "REJECTED"
)

// Workflow actions as they appear on the wire and in the audit log.
const (
	ActionSubmission           = "submission"
	ActionManagerApproval      = "manager_approval"
	ActionManagerRejection     = "manager_rejection"
	ActionDGPECApproval        = "dgpec_approval"
	ActionDGPECRejection       = "dgpec_rejection"
	ActionDGPECQuotaAdjustment = "dgpec_quota_adjustment"
	ActionDGApproval           = "dg_approval"
	ActionDGRejection          = "dg_rejection"
	ActionDGReturnToDGPEC      = "dg_return_to_dgpec"
)

const (
	LeaveTypeAnnual      = "ANNUAL"
	LeaveTypeSick        = "SICK"
	LeaveTypeBereavement = "BEREAVEMENT"
	LeaveTypeFamilyEvent = "FAMILY_EVENT"
	LeaveTypeOther       = "OTHER"
)

func IsTerminalStatus(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

// AttachmentRequired reports whether a leave type needs at least one
// supporting document (medical certificate, death certificate).
func AttachmentRequired(leaveType string) bool {
	return leaveType == LeaveTypeSick || leaveType == LeaveTypeBereavement
}
