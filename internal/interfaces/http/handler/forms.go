package handler

import (
	"strconv"
	"strings"
	"time"

	planningapp "github.com/Swarup9437/pm-tool/internal/application/planning"
	resourcingapp "github.com/Swarup9437/pm-tool/internal/application/resourcing"
	stockapp "github.com/Swarup9437/pm-tool/internal/application/stock"
	workforceapp "github.com/Swarup9437/pm-tool/internal/application/workforce"
	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// HTML forms post urlencoded strings. Each form struct mirrors the inputs of
// its template and converts into the application request, so that invalid
// input can be shown back to the user unchanged.

// EmployeeForm is the employee create/edit form
type EmployeeForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Role     string `form:"role"`
	Phone    string `form:"phone"`
	Password string `form:"password"`
}

func employeeFormFrom(e *workforceapp.EmployeeResponse) EmployeeForm {
	return EmployeeForm{Name: e.Name, Email: e.Email, Role: e.Role, Phone: e.Phone}
}

func (f EmployeeForm) toCreate() (workforceapp.CreateEmployeeRequest, error) {
	req := workforceapp.CreateEmployeeRequest{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Role:     f.Role,
		Phone:    strings.TrimSpace(f.Phone),
		Password: f.Password,
	}
	return req, validateForm(&req)
}

func (f EmployeeForm) toUpdate() (workforceapp.UpdateEmployeeRequest, error) {
	req := workforceapp.UpdateEmployeeRequest{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Role:     f.Role,
		Phone:    strings.TrimSpace(f.Phone),
		Password: f.Password,
	}
	return req, validateForm(&req)
}

// ProjectForm is the project create/edit form
type ProjectForm struct {
	Code             string `form:"code"`
	Name             string `form:"name"`
	Client           string `form:"client"`
	Budget           string `form:"budget"`
	ProjectManagerID string `form:"project_manager_id"`
}

func projectFormFrom(p *planningapp.ProjectResponse) ProjectForm {
	f := ProjectForm{Code: p.Code, Name: p.Name, Client: p.Client, Budget: decimalString(p.Budget)}
	if p.ProjectManagerID != nil {
		f.ProjectManagerID = p.ProjectManagerID.String()
	}
	return f
}

func (f ProjectForm) toRequest() (planningapp.ProjectRequest, error) {
	budget, err := formDecimal("budget", f.Budget, decimal.Zero)
	if err != nil {
		return planningapp.ProjectRequest{}, err
	}
	pm, err := formOptionalUUID("project manager", f.ProjectManagerID)
	if err != nil {
		return planningapp.ProjectRequest{}, err
	}
	req := planningapp.ProjectRequest{
		Code:             strings.TrimSpace(f.Code),
		Name:             strings.TrimSpace(f.Name),
		Client:           strings.TrimSpace(f.Client),
		Budget:           budget,
		ProjectManagerID: pm,
	}
	return req, validateForm(&req)
}

// TaskForm is the task create/edit form
type TaskForm struct {
	ProjectID       string `form:"project_id"`
	WBS             string `form:"wbs"`
	Name            string `form:"name"`
	OwnerID         string `form:"owner_id"`
	Start           string `form:"start"`
	Finish          string `form:"finish"`
	PercentComplete string `form:"percent_complete"`
	Status          string `form:"status"`
}

func taskFormFrom(t *planningapp.TaskResponse) TaskForm {
	f := TaskForm{
		ProjectID:       t.ProjectID.String(),
		WBS:             t.WBS,
		Name:            t.Name,
		Start:           t.Start,
		Finish:          t.Finish,
		PercentComplete: strconv.Itoa(t.PercentComplete),
		Status:          t.Status,
	}
	if t.OwnerID != nil {
		f.OwnerID = t.OwnerID.String()
	}
	return f
}

func (f TaskForm) toRequest() (planningapp.TaskRequest, error) {
	projectID, err := formUUID("project", f.ProjectID)
	if err != nil {
		return planningapp.TaskRequest{}, err
	}
	owner, err := formOptionalUUID("owner", f.OwnerID)
	if err != nil {
		return planningapp.TaskRequest{}, err
	}
	percent := 0
	if s := strings.TrimSpace(f.PercentComplete); s != "" {
		if percent, err = strconv.Atoi(s); err != nil {
			return planningapp.TaskRequest{}, shared.NewValidationError("percent complete must be a whole number")
		}
	}
	req := planningapp.TaskRequest{
		ProjectID:       projectID,
		OwnerID:         owner,
		WBS:             strings.TrimSpace(f.WBS),
		Name:            strings.TrimSpace(f.Name),
		Start:           strings.TrimSpace(f.Start),
		Finish:          strings.TrimSpace(f.Finish),
		PercentComplete: percent,
		Status:          f.Status,
	}
	return req, validateForm(&req)
}

// ResourceForm is the resource create/edit form
type ResourceForm struct {
	Name                 string `form:"name"`
	Type                 string `form:"type"`
	Rate                 string `form:"rate"`
	CapacityHoursPerWeek string `form:"capacity_hours_per_week"`
	IsActive             string `form:"is_active"`
}

// Active reports whether the checkbox is ticked
func (f ResourceForm) Active() bool {
	return checked(f.IsActive)
}

func resourceFormFrom(r *resourcingapp.ResourceResponse) ResourceForm {
	return ResourceForm{
		Name:                 r.Name,
		Type:                 r.Type,
		Rate:                 decimalString(r.Rate),
		CapacityHoursPerWeek: decimalString(r.CapacityHoursPerWeek),
		IsActive:             checkbox(r.IsActive),
	}
}

func (f ResourceForm) toRequest() (resourcingapp.ResourceRequest, error) {
	rate, err := formDecimal("rate", f.Rate, decimal.Zero)
	if err != nil {
		return resourcingapp.ResourceRequest{}, err
	}
	var capacity *decimal.Decimal
	if strings.TrimSpace(f.CapacityHoursPerWeek) != "" {
		c, err := formDecimal("capacity", f.CapacityHoursPerWeek, decimal.Zero)
		if err != nil {
			return resourcingapp.ResourceRequest{}, err
		}
		capacity = &c
	}
	active := f.Active()
	req := resourcingapp.ResourceRequest{
		Name:                 strings.TrimSpace(f.Name),
		Type:                 f.Type,
		Rate:                 rate,
		CapacityHoursPerWeek: capacity,
		IsActive:             &active,
	}
	return req, validateForm(&req)
}

// AssignmentForm is the assign-resource-to-task form
type AssignmentForm struct {
	TaskID     string `form:"task_id"`
	ResourceID string `form:"resource_id"`
	Hours      string `form:"hours"`
}

func (f AssignmentForm) toRequest() (resourcingapp.CreateAssignmentRequest, error) {
	taskID, err := formUUID("task", f.TaskID)
	if err != nil {
		return resourcingapp.CreateAssignmentRequest{}, err
	}
	resourceID, err := formUUID("resource", f.ResourceID)
	if err != nil {
		return resourcingapp.CreateAssignmentRequest{}, err
	}
	hours, err := formDecimal("hours", f.Hours, decimal.Zero)
	if err != nil {
		return resourcingapp.CreateAssignmentRequest{}, err
	}
	req := resourcingapp.CreateAssignmentRequest{TaskID: taskID, ResourceID: resourceID, Hours: hours}
	return req, validateForm(&req)
}

// MaterialForm is the material create/edit form. Quantity on hand is only
// read on create.
type MaterialForm struct {
	Name           string `form:"name"`
	Unit           string `form:"unit"`
	UnitCost       string `form:"unit_cost"`
	QuantityOnHand string `form:"quantity_on_hand"`
	ReorderLevel   string `form:"reorder_level"`
	IsActive       string `form:"is_active"`
}

// Active reports whether the checkbox is ticked
func (f MaterialForm) Active() bool {
	return checked(f.IsActive)
}

func materialFormFrom(m *stockapp.MaterialResponse) MaterialForm {
	return MaterialForm{
		Name:           m.Name,
		Unit:           m.Unit,
		UnitCost:       decimalString(m.UnitCost),
		QuantityOnHand: decimalString(m.QuantityOnHand),
		ReorderLevel:   decimalString(m.ReorderLevel),
		IsActive:       checkbox(m.IsActive),
	}
}

func (f MaterialForm) amounts() (unitCost, qty, reorder decimal.Decimal, err error) {
	if unitCost, err = formDecimal("unit cost", f.UnitCost, decimal.Zero); err != nil {
		return
	}
	if qty, err = formDecimal("quantity on hand", f.QuantityOnHand, decimal.Zero); err != nil {
		return
	}
	reorder, err = formDecimal("reorder level", f.ReorderLevel, decimal.Zero)
	return
}

func (f MaterialForm) toCreate() (stockapp.CreateMaterialRequest, error) {
	unitCost, qty, reorder, err := f.amounts()
	if err != nil {
		return stockapp.CreateMaterialRequest{}, err
	}
	active := f.Active()
	req := stockapp.CreateMaterialRequest{
		Name:           strings.TrimSpace(f.Name),
		Unit:           strings.TrimSpace(f.Unit),
		UnitCost:       unitCost,
		QuantityOnHand: qty,
		ReorderLevel:   reorder,
		IsActive:       &active,
	}
	return req, validateForm(&req)
}

func (f MaterialForm) toUpdate() (stockapp.UpdateMaterialRequest, error) {
	unitCost, _, reorder, err := f.amounts()
	if err != nil {
		return stockapp.UpdateMaterialRequest{}, err
	}
	active := f.Active()
	req := stockapp.UpdateMaterialRequest{
		Name:         strings.TrimSpace(f.Name),
		Unit:         strings.TrimSpace(f.Unit),
		UnitCost:     unitCost,
		ReorderLevel: reorder,
		IsActive:     &active,
	}
	return req, validateForm(&req)
}

// TransactionForm is the stock movement form
type TransactionForm struct {
	MaterialID string `form:"material_id"`
	Type       string `form:"type"`
	Quantity   string `form:"quantity"`
	Date       string `form:"date"`
	Note       string `form:"note"`
}

func newTransactionForm(materialID string) TransactionForm {
	return TransactionForm{
		MaterialID: materialID,
		Type:       "receive",
		Quantity:   "1",
		Date:       time.Now().UTC().Format(time.DateOnly),
	}
}

// toRequest only checks the shape of the input. Existence, type and zero
// quantity are the ledger's checks, in that order.
func (f TransactionForm) toRequest() (stockapp.ApplyTransactionRequest, error) {
	materialID, err := formUUID("material", f.MaterialID)
	if err != nil {
		return stockapp.ApplyTransactionRequest{}, err
	}
	qty, err := formDecimal("quantity", f.Quantity, decimal.Zero)
	if err != nil {
		return stockapp.ApplyTransactionRequest{}, err
	}
	return stockapp.ApplyTransactionRequest{
		MaterialID: materialID,
		Type:       strings.TrimSpace(f.Type),
		Quantity:   qty,
		Date:       strings.TrimSpace(f.Date),
		Note:       strings.TrimSpace(f.Note),
	}, nil
}
