package report

import (
	"context"

	"github.com/Swarup9437/pm-tool/internal/domain/planning"
	"github.com/Swarup9437/pm-tool/internal/domain/resourcing"
	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/domain/stock"
	"github.com/Swarup9437/pm-tool/internal/domain/workforce"
)

// The fakes embed the repository interface so that only the methods the
// report services call need bodies.

type fakeProjects struct {
	planning.ProjectRepository
	rows []planning.Project
}

func (f *fakeProjects) FindAll(context.Context, shared.Filter) ([]planning.Project, error) {
	return f.rows, nil
}

func (f *fakeProjects) Count(context.Context, shared.Filter) (int64, error) {
	return int64(len(f.rows)), nil
}

type fakeTasks struct {
	planning.TaskRepository
	rows     []planning.Task
	statuses []planning.StatusCount
}

func (f *fakeTasks) FindAll(context.Context, shared.Filter) ([]planning.Task, error) {
	return f.rows, nil
}

func (f *fakeTasks) Count(context.Context, shared.Filter) (int64, error) {
	return int64(len(f.rows)), nil
}

func (f *fakeTasks) CountByStatus(context.Context) ([]planning.StatusCount, error) {
	return f.statuses, nil
}

type fakeEmployees struct {
	workforce.EmployeeRepository
	n int64
}

func (f *fakeEmployees) Count(context.Context, shared.Filter) (int64, error) {
	return f.n, nil
}

type fakeResources struct {
	resourcing.ResourceRepository
	rows []resourcing.Resource
}

func (f *fakeResources) FindAll(context.Context, shared.Filter) ([]resourcing.Resource, error) {
	return f.rows, nil
}

func (f *fakeResources) Count(context.Context, shared.Filter) (int64, error) {
	return int64(len(f.rows)), nil
}

type fakeAssignments struct {
	resourcing.AssignmentRepository
	rows []resourcing.Assignment
}

func (f *fakeAssignments) FindAll(context.Context, shared.Filter) ([]resourcing.Assignment, error) {
	return f.rows, nil
}

type fakeMaterials struct {
	stock.MaterialRepository
	rows []stock.Material
}

func (f *fakeMaterials) Count(context.Context, shared.Filter) (int64, error) {
	return int64(len(f.rows)), nil
}

func (f *fakeMaterials) FindLowStock(_ context.Context, limit int) ([]stock.Material, error) {
	var out []stock.Material
	for _, m := range f.rows {
		if m.IsLowStock() && len(out) < limit {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeTransactions struct {
	stock.TransactionRepository
	rows []stock.TransactionWithMaterial
}

func (f *fakeTransactions) FindByType(_ context.Context, t stock.TransactionType) ([]stock.TransactionWithMaterial, error) {
	var out []stock.TransactionWithMaterial
	for _, r := range f.rows {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out, nil
}

type fixedUtilization []resourcing.Utilization

func (f fixedUtilization) All(context.Context) ([]resourcing.Utilization, error) {
	return f, nil
}
