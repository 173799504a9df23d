package models

import (
	"github.com/Swarup9437/pm-tool/internal/domain/workforce"
)

// EmployeeModel is the persistence model for workforce.Employee
type EmployeeModel struct {
	BaseModel
	Name         string `gorm:"type:varchar(200);not null"`
	Email        string `gorm:"type:varchar(320);not null;uniqueIndex:idx_employees_email"`
	Role         string `gorm:"type:varchar(20);not null;default:'engineer'"`
	Phone        string `gorm:"type:varchar(50)"`
	PasswordHash string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

func (m *EmployeeModel) ToDomain() *workforce.Employee {
	return &workforce.Employee{
		BaseEntity:   m.BaseModel.ToDomain(),
		Name:         m.Name,
		Email:        m.Email,
		Role:         workforce.Role(m.Role),
		Phone:        m.Phone,
		PasswordHash: m.PasswordHash,
	}
}

func (m *EmployeeModel) FromDomain(e *workforce.Employee) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Name = e.Name
	m.Email = e.Email
	m.Role = string(e.Role)
	m.Phone = e.Phone
	m.PasswordHash = e.PasswordHash
}

func EmployeeModelFromDomain(e *workforce.Employee) *EmployeeModel {
	m := &EmployeeModel{}
	m.FromDomain(e)
	return m
}
