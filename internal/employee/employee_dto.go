package employee

type CreateEmployeeRequest struct {
	FullName   string  `json:"full_name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Department string  `json:"department" binding:"required"`
	Role       string  `json:"role" binding:"required,oneof=employee manager dgpec dg"`
	Position   string  `json:"position"`
	ManagerID  *string `json:"manager_id"`
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Department string  `json:"department"`
	Role       string  `json:"role"`
	Position   string  `json:"position,omitempty"`
	ManagerID  *string `json:"manager_id,omitempty"`
	Active     bool    `json:"active"`
}
