package leave

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/staffhub-id/leave-backend-go/internal/domain/department"
	"github.com/staffhub-id/leave-backend-go/internal/domain/employee"
	"github.com/staffhub-id/leave-backend-go/internal/domain/holiday"
	"github.com/staffhub-id/leave-backend-go/internal/domain/leave"
	"github.com/staffhub-id/leave-backend-go/internal/domain/user"
)

// In-memory repositories backing the service tests. They hold the same
// contracts as the postgresql implementations, including the not-found
// sentinels, so the service under test cannot tell the difference.

type fakeTypeRepo struct {
	mu    sync.Mutex
	types map[string]leave.LeaveType
}

func newFakeTypeRepo() *fakeTypeRepo {
	return &fakeTypeRepo{types: map[string]leave.LeaveType{}}
}

func (r *fakeTypeRepo) Create(_ context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lt.ID = uuid.NewString()
	lt.CreatedAt = time.Now().UTC()
	lt.UpdatedAt = lt.CreatedAt
	r.types[lt.ID] = lt
	return lt, nil
}

func (r *fakeTypeRepo) GetByID(_ context.Context, id string) (leave.LeaveType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lt, ok := r.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (r *fakeTypeRepo) List(_ context.Context, activeOnly bool) ([]leave.LeaveType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]leave.LeaveType, 0, len(r.types))
	for _, lt := range r.types {
		if activeOnly && !lt.Active {
			continue
		}
		out = append(out, lt)
	}
	return out, nil
}

func (r *fakeTypeRepo) Update(_ context.Context, req leave.UpdateLeaveTypeRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lt, ok := r.types[req.ID]
	if !ok {
		return leave.ErrLeaveTypeNotFound
	}
	if req.Name != nil {
		lt.Name = *req.Name
	}
	if req.IsPaid != nil {
		lt.IsPaid = *req.IsPaid
	}
	if req.RequiresApproval != nil {
		lt.RequiresApproval = *req.RequiresApproval
	}
	if req.AnnualQuota != nil {
		lt.AnnualQuota = *req.AnnualQuota
	}
	if req.AllowNegative != nil {
		lt.AllowNegative = *req.AllowNegative
	}
	if req.IsAnnual != nil {
		lt.IsAnnual = *req.IsAnnual
	}
	if req.Active != nil {
		lt.Active = *req.Active
	}
	r.types[req.ID] = lt
	return nil
}

func (r *fakeTypeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[id]; !ok {
		return leave.ErrLeaveTypeNotFound
	}
	delete(r.types, id)
	return nil
}

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[string]employee.Employee{}}
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, emp := range r.employees {
		if emp.UserID != nil && *emp.UserID == userID {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]employee.Employee, 0, len(r.employees))
	for _, emp := range r.employees {
		out = append(out, emp)
	}
	return out, nil
}

type fakeRequestRepo struct {
	mu        sync.Mutex
	requests  map[string]leave.LeaveRequest
	types     *fakeTypeRepo
	employees *fakeEmployeeRepo

	// submitTrace records the order of the lock, overlap check and insert
	// during Submit. lockErr makes the lock acquisition fail.
	submitTrace []string
	lockErr     error
}

func (r *fakeRequestRepo) AcquireEmployeeLock(_ context.Context, employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitTrace = append(r.submitTrace, "lock:"+employeeID)
	return r.lockErr
}

func (r *fakeRequestRepo) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitTrace = append(r.submitTrace, "create")
	request.ID = uuid.NewString()
	request.CreatedAt = time.Now().UTC()
	request.UpdatedAt = request.CreatedAt
	r.requests[request.ID] = request
	return request, nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (r *fakeRequestRepo) ListByEmployee(_ context.Context, employeeID string, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.LeaveRequest
	for _, request := range r.requests {
		if request.EmployeeID != employeeID {
			continue
		}
		if filter.Status != nil && string(request.Status) != *filter.Status {
			continue
		}
		if filter.LeaveTypeID != nil && request.LeaveTypeID != *filter.LeaveTypeID {
			continue
		}
		if filter.Year != nil && request.StartDate.Year() != *filter.Year {
			continue
		}
		out = append(out, request)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRequestRepo) ListPending(ctx context.Context, level int, departmentIDs []string) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.LeaveRequest
	for _, request := range r.requests {
		if request.Status != leave.LeaveRequestStatusPending {
			continue
		}
		if level > 0 && request.ApprovalLevel != level {
			continue
		}
		if len(departmentIDs) > 0 {
			emp, err := r.employees.GetByID(ctx, request.EmployeeID)
			if err != nil || emp.DepartmentID == nil {
				continue
			}
			match := false
			for _, id := range departmentIDs {
				if id == *emp.DepartmentID {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, request)
	}
	return out, nil
}

func (r *fakeRequestRepo) Update(_ context.Context, request leave.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[request.ID]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	request.UpdatedAt = time.Now().UTC()
	r.requests[request.ID] = request
	return nil
}

func (r *fakeRequestRepo) HasOverlapping(_ context.Context, employeeID string, start, end time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitTrace = append(r.submitTrace, "overlap-check")
	for _, request := range r.requests {
		if request.EmployeeID != employeeID || request.Status == leave.LeaveRequestStatusRejected {
			continue
		}
		if request.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRequestRepo) SumApprovedDays(_ context.Context, employeeID, leaveTypeID string, year int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, request := range r.requests {
		if request.EmployeeID == employeeID &&
			request.LeaveTypeID == leaveTypeID &&
			request.Status == leave.LeaveRequestStatusApproved &&
			request.StartDate.Year() == year {
			total += request.Days
		}
	}
	return total, nil
}

func (r *fakeRequestRepo) CountByCategory(ctx context.Context, employeeID string, code leave.SpecialCode) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, request := range r.requests {
		if request.EmployeeID != employeeID || request.Status == leave.LeaveRequestStatusRejected {
			continue
		}
		lt, err := r.types.GetByID(ctx, request.LeaveTypeID)
		if err != nil {
			continue
		}
		if lt.SpecialCode == code {
			count++
		}
	}
	return count, nil
}

func (r *fakeRequestRepo) CountByType(_ context.Context, leaveTypeID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, request := range r.requests {
		if request.LeaveTypeID == leaveTypeID {
			count++
		}
	}
	return count, nil
}

type balanceKey struct {
	employeeID  string
	leaveTypeID string
	year        int
}

type fakeBalanceRepo struct {
	mu       sync.Mutex
	balances map[balanceKey]leave.LeaveBalance
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{balances: map[balanceKey]leave.LeaveBalance{}}
}

func (r *fakeBalanceRepo) GetByEmployeeTypeYear(_ context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	balance, ok := r.balances[balanceKey{employeeID, leaveTypeID, year}]
	if !ok {
		return leave.LeaveBalance{}, leave.ErrBalanceNotFound
	}
	return balance, nil
}

func (r *fakeBalanceRepo) GetByEmployeeYear(_ context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.LeaveBalance
	for key, balance := range r.balances {
		if key.employeeID == employeeID && key.year == year {
			out = append(out, balance)
		}
	}
	return out, nil
}

func (r *fakeBalanceRepo) GetForUpdate(_ context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	balance, ok := r.balances[balanceKey{employeeID, leaveTypeID, year}]
	return balance, ok, nil
}

func (r *fakeBalanceRepo) Upsert(_ context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if balance.ID == "" {
		balance.ID = uuid.NewString()
	}
	balance.UpdatedAt = time.Now().UTC()
	r.balances[balanceKey{balance.EmployeeID, balance.LeaveTypeID, balance.Year}] = balance
	return balance, nil
}

type fakeDepartmentRepo struct {
	mu          sync.Mutex
	departments map[string]department.Department
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{departments: map[string]department.Department{}}
}

func (r *fakeDepartmentRepo) GetByID(_ context.Context, id string) (department.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dept, ok := r.departments[id]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return dept, nil
}

func (r *fakeDepartmentRepo) ListManagedBy(_ context.Context, userID string) ([]department.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []department.Department
	for _, dept := range r.departments {
		if dept.ManagerUserID != nil && *dept.ManagerUserID == userID {
			out = append(out, dept)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]user.User{}}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByOAuthProviderID(_ context.Context, provider, providerID string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.OAuthProvider != nil && *u.OAuthProvider == provider &&
			u.OAuthProviderID != nil && *u.OAuthProviderID == providerID {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

// fakeCalendar counts every calendar day as a business day so date math in
// the tests stays independent of weekday placement. The calculator itself
// has its own tests against the real implementation.
type fakeCalendar struct {
	// zeroDays makes every range count as zero, exercising the minimum
	// one-day clamp in the service.
	zeroDays bool
}

func (c *fakeCalendar) AddHoliday(_ context.Context, _ holiday.CreateHolidayRequest) (holiday.Holiday, error) {
	return holiday.Holiday{}, nil
}

func (c *fakeCalendar) RemoveHoliday(_ context.Context, _ string) error { return nil }

func (c *fakeCalendar) ListHolidays(_ context.Context) ([]holiday.HolidayResponse, error) {
	return nil, nil
}

func (c *fakeCalendar) ExcludedDates(_ context.Context, _, _ time.Time) (map[string]struct{}, error) {
	return map[string]struct{}{}, nil
}

func (c *fakeCalendar) BusinessDays(_ context.Context, from, to time.Time) (int, error) {
	if c.zeroDays || to.Before(from) {
		return 0, nil
	}
	return int(to.Sub(from).Hours()/24) + 1, nil
}

func (c *fakeCalendar) InstancesBetween(_ context.Context, _, _ time.Time) ([]holiday.Instance, error) {
	return nil, nil
}

type fakeEmailService struct {
	mu        sync.Mutex
	submitted int
	decisions int
}

func (s *fakeEmailService) SendLeaveSubmitted(_, _, _, _, _ string, _ int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitted++
	return nil
}

func (s *fakeEmailService) SendLeaveDecision(_, _, _, _, _, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions++
	return nil
}

func (s *fakeEmailService) SendHolidayReminder(_, _, _, _ string) error { return nil }

// fixture wires a Service against the in-memory repositories with a
// pass-through transaction runner.
type fixture struct {
	types       *fakeTypeRepo
	requests    *fakeRequestRepo
	balances    *fakeBalanceRepo
	employees   *fakeEmployeeRepo
	departments *fakeDepartmentRepo
	users       *fakeUserRepo
	emails      *fakeEmailService
	calendar    *fakeCalendar
	svc         *Service
}

func newFixture() *fixture {
	types := newFakeTypeRepo()
	employees := newFakeEmployeeRepo()
	requests := &fakeRequestRepo{
		requests:  map[string]leave.LeaveRequest{},
		types:     types,
		employees: employees,
	}
	balances := newFakeBalanceRepo()
	f := &fixture{
		types:       types,
		requests:    requests,
		balances:    balances,
		employees:   employees,
		departments: newFakeDepartmentRepo(),
		users:       newFakeUserRepo(),
		emails:      &fakeEmailService{},
		calendar:    &fakeCalendar{},
	}
	f.svc = &Service{
		typeRepo:       types,
		requestRepo:    requests,
		balanceRepo:    balances,
		employeeRepo:   employees,
		departmentRepo: f.departments,
		userRepo:       f.users,
		calendar:       f.calendar,
		ledger:         NewLedger(balances, requests, types, employees, testPolicy),
		emailSvc:       f.emails,
	}
	f.svc.runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return fn(ctx)
	}
	return f
}

func (f *fixture) seedDepartment(name string, managerUserID *string) department.Department {
	dept := department.Department{
		ID:            uuid.NewString(),
		Name:          name,
		ManagerUserID: managerUserID,
	}
	f.departments.mu.Lock()
	f.departments.departments[dept.ID] = dept
	f.departments.mu.Unlock()
	return dept
}

func (f *fixture) seedEmployee(departmentID *string, gender employee.Gender, hireDate time.Time) employee.Employee {
	userID := uuid.NewString()
	emp := employee.Employee{
		ID:           uuid.NewString(),
		UserID:       &userID,
		FullName:     "Test Employee",
		Email:        "employee@example.test",
		Gender:       gender,
		DepartmentID: departmentID,
		HireDate:     hireDate,
	}
	f.employees.mu.Lock()
	f.employees.employees[emp.ID] = emp
	f.employees.mu.Unlock()
	f.users.mu.Lock()
	f.users.users[userID] = user.User{
		ID:       userID,
		Email:    emp.Email,
		Role:     user.RoleEmployee,
		IsActive: true,
	}
	f.users.mu.Unlock()
	return emp
}

func (f *fixture) seedType(modify func(*leave.LeaveType)) leave.LeaveType {
	lt := leave.LeaveType{
		ID:          uuid.NewString(),
		Name:        "Annual Leave",
		IsPaid:      true,
		AnnualQuota: 12,
		Active:      true,
	}
	if modify != nil {
		modify(&lt)
	}
	f.types.mu.Lock()
	f.types.types[lt.ID] = lt
	f.types.mu.Unlock()
	return lt
}

func (f *fixture) seedRequest(request leave.LeaveRequest) leave.LeaveRequest {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	if request.RequestNumber == "" {
		request.RequestNumber = newRequestNumber(request.StartDate.Year())
	}
	f.requests.mu.Lock()
	f.requests.requests[request.ID] = request
	f.requests.mu.Unlock()
	return request
}

func actorFor(emp employee.Employee, role user.Role) user.Actor {
	userID := ""
	if emp.UserID != nil {
		userID = *emp.UserID
	}
	return user.Actor{UserID: userID, EmployeeID: emp.ID, Role: role}
}

// futureRange returns a YYYY-MM-DD range of the given calendar length that
// starts in the future and never crosses a year boundary.
func futureRange(length int) (time.Time, time.Time) {
	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 7)
	end := start.AddDate(0, 0, length-1)
	if start.Year() != end.Year() {
		start = time.Date(end.Year(), 1, 5, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 0, length-1)
	}
	return start, end
}

func yearsAgo(n int) time.Time {
	return time.Now().UTC().AddDate(-n, 0, 0)
}
