package leaverequest

type AttachmentInput struct {
	FileName string `json:"file_name" binding:"required"`
	FileURL  string `json:"file_url" binding:"required,url"`
	MimeType string `json:"mime_type"`
}

type CreateRequest struct {
	LeaveType   string            `json:"leave_type" binding:"required,oneof=ANNUAL SICK BEREAVEMENT FAMILY_EVENT OTHER"`
	StartDate   string            `json:"start_date" binding:"required"`
	EndDate     string            `json:"end_date" binding:"required"`
	Reason      string            `json:"reason"`
	Attachments []AttachmentInput `json:"attachments" binding:"dive"`
}

type AttachmentResponse struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
	MimeType string `json:"mime_type,omitempty"`
}

type LeaveRequestResponse struct {
	ID            string               `json:"id"`
	RequesterID   string               `json:"requester_id"`
	RequesterName string               `json:"requester_name"`
	Department    string               `json:"department"`
	LeaveType     string               `json:"leave_type"`
	StartDate     string               `json:"start_date"`
	EndDate       string               `json:"end_date"`
	WorkingDays   int                  `json:"working_days"`
	Reason        string               `json:"reason,omitempty"`
	Status        string               `json:"status"`
	Attachments   []AttachmentResponse `json:"attachments,omitempty"`
	CreatedAt     string               `json:"created_at"`
	LastUpdated   string               `json:"last_updated"`
}

type StatisticsResponse struct {
	Total        int64            `json:"total"`
	ByStatus     map[string]int64 `json:"by_status"`
	ByType       map[string]int64 `json:"by_type"`
	ByDepartment map[string]int64 `json:"by_department"`
}
