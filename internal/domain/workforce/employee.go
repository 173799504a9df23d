package workforce

import (
	"net/mail"
	"strings"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the closed set of employee roles
type Role string

const (
	RoleAdmin    Role = "admin"
	RolePM       Role = "pm"
	RoleEngineer Role = "engineer"
	RoleViewer   Role = "viewer"
)

// AllRoles lists roles in display order
var AllRoles = []Role{RoleAdmin, RolePM, RoleEngineer, RoleViewer}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// IsValid returns true if the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RolePM, RoleEngineer, RoleViewer:
		return true
	}
	return false
}

// ParseRole converts a raw string into a Role
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", shared.NewValidationError("role must be one of admin, pm, engineer, viewer")
	}
	return r, nil
}

const (
	bcryptCost        = 12
	minPasswordLength = 5
)

// Employee is a person who can own tasks, manage projects and log in
type Employee struct {
	shared.BaseEntity
	Name         string
	Email        string
	Role         Role
	Phone        string
	PasswordHash string
}

// NewEmployee creates a new employee without credentials
func NewEmployee(name, email string, role Role, phone string) (*Employee, error) {
	e := &Employee{BaseEntity: shared.NewBaseEntity()}
	if err := e.Update(name, email, role, phone); err != nil {
		return nil, err
	}
	return e, nil
}

// Update replaces the editable profile fields
func (e *Employee) Update(name, email string, role Role, phone string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("name is required")
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if !role.IsValid() {
		return shared.NewValidationError("role must be one of admin, pm, engineer, viewer")
	}
	e.Name = name
	e.Email = email
	e.Role = role
	e.Phone = strings.TrimSpace(phone)
	e.Touch()
	return nil
}

// SetPassword hashes and stores a new password
func (e *Employee) SetPassword(password string) error {
	if len(password) < minPasswordLength {
		return shared.NewValidationError("password must be at least 5 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.WrapDomainError("PASSWORD_HASH_ERROR", "failed to hash password", err)
	}
	e.PasswordHash = string(hash)
	e.Touch()
	return nil
}

// HasPassword reports whether the employee can log in at all
func (e *Employee) HasPassword() bool {
	return e.PasswordHash != ""
}

// VerifyPassword checks the password against the stored hash
func (e *Employee) VerifyPassword(password string) bool {
	if !e.HasPassword() {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password)) == nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", shared.NewValidationError("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", shared.NewValidationError("email is not valid")
	}
	return email, nil
}
