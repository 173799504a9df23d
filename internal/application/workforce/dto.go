package workforce

import (
	"time"

	"github.com/Swarup9437/pm-tool/internal/domain/workforce"
	"github.com/google/uuid"
)

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone"`
	CanLogin  bool      `json:"can_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToEmployeeResponse converts a domain employee. The password hash never leaves this package.
func ToEmployeeResponse(e *workforce.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Role:      e.Role.String(),
		Phone:     e.Phone,
		CanLogin:  e.HasPassword(),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// ToEmployeeResponses converts a slice of employees
func ToEmployeeResponses(employees []workforce.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, len(employees))
	for i := range employees {
		out[i] = ToEmployeeResponse(&employees[i])
	}
	return out
}

// CreateEmployeeRequest creates an employee, optionally with a password
type CreateEmployeeRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Role     string `json:"role" binding:"required,oneof=admin pm engineer viewer"`
	Phone    string `json:"phone" binding:"max=50"`
	Password string `json:"password" binding:"omitempty,min=5,max=72"`
}

// UpdateEmployeeRequest edits an employee. An empty password keeps the current one.
type UpdateEmployeeRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Role     string `json:"role" binding:"required,oneof=admin pm engineer viewer"`
	Phone    string `json:"phone" binding:"max=50"`
	Password string `json:"password" binding:"omitempty,min=5,max=72"`
}

// EmployeeListFilter represents filter options for the employee list
type EmployeeListFilter struct {
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,oneof=admin pm engineer viewer"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}
