package quota

type BalanceResponse struct {
	EmployeeID    string `json:"employee_id"`
	Year          int    `json:"year"`
	LeaveType     string `json:"leave_type"`
	TotalDays     int    `json:"total_days"`
	UsedDays      int    `json:"used_days"`
	RemainingDays int    `json:"remaining_days"`
	LastUpdated   string `json:"last_updated"`
}

type AdjustQuotaRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Year       int    `json:"year" binding:"required"`
	LeaveType  string `json:"leave_type" binding:"required,oneof=ANNUAL SICK BEREAVEMENT FAMILY_EVENT OTHER"`
	Delta      int    `json:"delta" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
	Override   bool   `json:"override"`
}

type AdjustmentResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	LeaveType  string `json:"leave_type"`
	Delta      int    `json:"delta"`
	Reason     string `json:"reason"`
	ActorID    string `json:"actor_id"`
	ActorName  string `json:"actor_name,omitempty"`
	CreatedAt  string `json:"created_at"`
}
