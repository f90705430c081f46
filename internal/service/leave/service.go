package leave

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/staffhub-id/leave-backend-go/internal/config"
	"github.com/staffhub-id/leave-backend-go/internal/domain/department"
	"github.com/staffhub-id/leave-backend-go/internal/domain/employee"
	"github.com/staffhub-id/leave-backend-go/internal/domain/holiday"
	"github.com/staffhub-id/leave-backend-go/internal/domain/leave"
	"github.com/staffhub-id/leave-backend-go/internal/domain/user"
	"github.com/staffhub-id/leave-backend-go/internal/pkg/database"
	"github.com/staffhub-id/leave-backend-go/internal/pkg/email"
	"github.com/staffhub-id/leave-backend-go/internal/pkg/validator"
	"github.com/staffhub-id/leave-backend-go/internal/repository/postgresql"
)

const dateLayout = "2006-01-02"

// Service drives the request lifecycle: submission, the two-stage approval
// chain, early returns, plus the type and balance administration around it.
type Service struct {
	db *database.DB

	typeRepo       leave.LeaveTypeRepository
	requestRepo    leave.LeaveRequestRepository
	balanceRepo    leave.LeaveBalanceRepository
	employeeRepo   employee.EmployeeRepository
	departmentRepo department.DepartmentRepository
	userRepo       user.UserRepository

	calendar holiday.CalendarService
	ledger   *Ledger
	emailSvc email.EmailService

	// runTx executes fn inside a database transaction carried on the
	// context, so repository calls within fn share one unit of work.
	runTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewService(
	db *database.DB,
	typeRepo leave.LeaveTypeRepository,
	requestRepo leave.LeaveRequestRepository,
	balanceRepo leave.LeaveBalanceRepository,
	employeeRepo employee.EmployeeRepository,
	departmentRepo department.DepartmentRepository,
	userRepo user.UserRepository,
	calendar holiday.CalendarService,
	emailSvc email.EmailService,
	policy config.PolicyConfig,
) *Service {
	s := &Service{
		db:             db,
		typeRepo:       typeRepo,
		requestRepo:    requestRepo,
		balanceRepo:    balanceRepo,
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
		calendar:       calendar,
		ledger:         NewLedger(balanceRepo, requestRepo, typeRepo, employeeRepo, policy),
		emailSvc:       emailSvc,
	}
	s.runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
			return fn(postgresql.TxContext(ctx, tx))
		})
	}
	return s
}

var _ leave.LeaveService = (*Service)(nil)

// Submit validates a new request against dates, balance and category rules,
// then persists it pending at the first approval level. The insert runs in
// a transaction holding a per-employee advisory lock, so a concurrent
// submission waits and then sees this one in its overlap check.
func (s *Service) Submit(ctx context.Context, actor user.Actor, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if actor.EmployeeID == "" {
		return leave.LeaveRequestResponse{}, user.ErrActorWithoutEmployee
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	if end.Before(start) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}
	if !validator.SameCalendarYear(start, end) {
		return leave.LeaveRequestResponse{}, leave.ErrCrossYearRange
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if start.Before(today) {
		return leave.LeaveRequestResponse{}, leave.ErrStartDateInPast
	}

	leaveType, err := s.typeRepo.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !leaveType.Active {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveTypeInactive
	}

	emp, err := s.employeeRepo.GetByID(ctx, actor.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	businessDays, err := s.calendar.BusinessDays(ctx, start, end)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to count business days: %w", err)
	}
	// A valid submitted range always consumes at least one day, even when
	// every date in it is an off-day or holiday.
	days := businessDays
	if days < 1 {
		days = 1
	}

	if err := s.checkCategory(ctx, leaveType, emp, req, start, end, businessDays); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if !leaveType.AllowNegative {
		available, err := s.ledger.Available(ctx, emp.ID, leaveType.ID, start.Year())
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		if available < days {
			return leave.LeaveRequestResponse{}, leave.ErrInsufficientBalance
		}
	}

	now := time.Now().UTC()
	request := leave.LeaveRequest{
		EmployeeID:    emp.ID,
		LeaveTypeID:   leaveType.ID,
		StartDate:     start,
		EndDate:       end,
		Days:          days,
		Reason:        req.Reason,
		Status:        leave.LeaveRequestStatusPending,
		ApprovalLevel: leave.ApprovalLevelManager,
		AttachmentID:  req.AttachmentID,
		RequestNumber: newRequestNumber(start.Year()),
		Chain: leave.ApprovalChain{{
			By:     actor.UserID,
			Role:   string(actor.Role),
			Action: leave.ChainActionSubmit,
			At:     now,
		}},
	}

	var created leave.LeaveRequest
	err = s.runTx(ctx, func(txCtx context.Context) error {
		if err := s.requestRepo.AcquireEmployeeLock(txCtx, emp.ID); err != nil {
			return fmt.Errorf("failed to lock employee submissions: %w", err)
		}

		overlapping, err := s.requestRepo.HasOverlapping(txCtx, emp.ID, start, end)
		if err != nil {
			return fmt.Errorf("failed to check overlapping requests: %w", err)
		}
		if overlapping {
			return leave.ErrOverlappingRequest
		}

		created, err = s.requestRepo.Create(txCtx, request)
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	go s.notifySubmitted(emp, leaveType, created)

	return leave.ToRequestResponse(created), nil
}

// Approve advances a pending request. A department manager's approval
// escalates to the second level without touching the ledger; the final
// approval flips the status and recomputes the balance in one transaction.
func (s *Service) Approve(ctx context.Context, actor user.Actor, req leave.DecisionRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.IsTerminal() {
		return leave.LeaveRequestResponse{}, leave.ErrAlreadyProcessed
	}

	emp, err := s.employeeRepo.GetByID(ctx, request.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	finalize, err := s.authorizeDecision(ctx, actor, request, emp)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	now := time.Now().UTC()
	entry := leave.ApprovalChainEntry{
		By:     actor.UserID,
		Role:   string(actor.Role),
		Action: leave.ChainActionApprove,
		Note:   req.Note,
		At:     now,
	}

	if !finalize {
		request.ApprovalLevel = leave.ApprovalLevelHR
		request.Chain = append(request.Chain, entry)
		if err := s.requestRepo.Update(ctx, request); err != nil {
			return leave.LeaveRequestResponse{}, fmt.Errorf("failed to escalate leave request: %w", err)
		}
		return leave.ToRequestResponse(request), nil
	}

	request.Status = leave.LeaveRequestStatusApproved
	request.ApproverID = &actor.UserID
	request.DecidedAt = &now
	if req.Note != "" {
		request.ApproverNote = &req.Note
	}
	request.Chain = append(request.Chain, entry)

	err = s.runTx(ctx, func(txCtx context.Context) error {
		if err := s.requestRepo.Update(txCtx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		if _, err := s.ledger.Recompute(txCtx, request.EmployeeID, request.LeaveTypeID, request.StartDate.Year()); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	go s.notifyDecision(emp, request, req.Note)

	return leave.ToRequestResponse(request), nil
}

// Reject terminates a pending request at either level. The ledger is never
// touched: a rejected request never consumed anything.
func (s *Service) Reject(ctx context.Context, actor user.Actor, req leave.DecisionRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.IsTerminal() {
		return leave.LeaveRequestResponse{}, leave.ErrAlreadyProcessed
	}

	emp, err := s.employeeRepo.GetByID(ctx, request.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if _, err := s.authorizeDecision(ctx, actor, request, emp); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	now := time.Now().UTC()
	request.Status = leave.LeaveRequestStatusRejected
	request.ApproverID = &actor.UserID
	request.DecidedAt = &now
	if req.Note != "" {
		request.ApproverNote = &req.Note
	}
	request.Chain = append(request.Chain, leave.ApprovalChainEntry{
		By:     actor.UserID,
		Role:   string(actor.Role),
		Action: leave.ChainActionReject,
		Note:   req.Note,
		At:     now,
	})

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	go s.notifyDecision(emp, request, req.Note)

	return leave.ToRequestResponse(request), nil
}

// Shorten records an early return on an approved request: the range is cut
// to end the day before the actual return, the day count re-derived, and
// the ledger recomputed so the unused days flow back.
func (s *Service) Shorten(ctx context.Context, actor user.Actor, req leave.ShortenLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.Status != leave.LeaveRequestStatusApproved {
		return leave.LeaveRequestResponse{}, leave.ErrRequestNotApproved
	}

	// Early returns are recorded by HR or by the employee themself.
	if actor.Role != user.RoleHR && actor.EmployeeID != request.EmployeeID {
		return leave.LeaveRequestResponse{}, leave.ErrApproverNotAuthorized
	}

	actualReturn, err := time.Parse(dateLayout, req.ActualReturn)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse actual return date: %w", err)
	}
	// The return must fall inside the approved range: strictly after the
	// start, no later than the approved end.
	if !actualReturn.After(request.StartDate) || actualReturn.After(request.EndDate) {
		return leave.LeaveRequestResponse{}, leave.ErrReturnDateOutOfRange
	}

	newEnd := actualReturn.AddDate(0, 0, -1)
	businessDays, err := s.calendar.BusinessDays(ctx, request.StartDate, newEnd)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to count business days: %w", err)
	}
	days := businessDays
	if days < 1 {
		days = 1
	}

	now := time.Now().UTC()
	request.EndDate = newEnd
	request.Days = days
	request.Chain = append(request.Chain, leave.ApprovalChainEntry{
		By:     actor.UserID,
		Role:   string(actor.Role),
		Action: leave.ChainActionShorten,
		Note:   req.Note,
		At:     now,
	})

	err = s.runTx(ctx, func(txCtx context.Context) error {
		if err := s.requestRepo.Update(txCtx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		if _, err := s.ledger.Recompute(txCtx, request.EmployeeID, request.LeaveTypeID, request.StartDate.Year()); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.ToRequestResponse(request), nil
}

// GetRequest returns a single request. Visibility matches the decision
// surface: the owner, holders of the view-all permission, and managers of
// the owner's department. Everyone else gets not-found so request ids do
// not leak.
func (s *Service) GetRequest(ctx context.Context, actor user.Actor, requestID string) (leave.LeaveRequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	visible := actor.EmployeeID != "" && actor.EmployeeID == request.EmployeeID ||
		user.HasPermission(actor.Role, user.PermissionLeaveViewAll)
	if !visible {
		emp, err := s.employeeRepo.GetByID(ctx, request.EmployeeID)
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		visible, err = s.actorManages(ctx, actor, emp)
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
	}
	if !visible {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}

	return leave.ToRequestResponse(request), nil
}

func (s *Service) ListMyRequests(ctx context.Context, actor user.Actor, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if actor.EmployeeID == "" {
		return leave.ListLeaveRequestResponse{}, user.ErrActorWithoutEmployee
	}

	requests, total, err := s.requestRepo.ListByEmployee(ctx, actor.EmployeeID, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToRequestResponse(r))
	}
	return leave.ListLeaveRequestResponse{Requests: responses, Total: total}, nil
}

// ListPendingApprovals returns the actor's decision inbox: managers see
// first-level requests from their departments, HR sees every pending
// request so no-manager departments are never stranded.
func (s *Service) ListPendingApprovals(ctx context.Context, actor user.Actor) ([]leave.LeaveRequestResponse, error) {
	var (
		requests []leave.LeaveRequest
		err      error
	)

	switch actor.Role {
	case user.RoleHR:
		requests, err = s.requestRepo.ListPending(ctx, 0, nil)
	case user.RoleManager:
		departments, derr := s.departmentRepo.ListManagedBy(ctx, actor.UserID)
		if derr != nil {
			return nil, fmt.Errorf("failed to list managed departments: %w", derr)
		}
		if len(departments) == 0 {
			return []leave.LeaveRequestResponse{}, nil
		}
		ids := make([]string, 0, len(departments))
		for _, d := range departments {
			ids = append(ids, d.ID)
		}
		requests, err = s.requestRepo.ListPending(ctx, leave.ApprovalLevelManager, ids)
	default:
		return nil, user.ErrManagerAccessRequired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToRequestResponse(r))
	}
	return responses, nil
}

func (s *Service) CreateLeaveType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	created, err := s.typeRepo.Create(ctx, leave.LeaveType{
		Name:             req.Name,
		IsPaid:           req.IsPaid,
		RequiresApproval: req.RequiresApproval,
		AnnualQuota:      req.AnnualQuota,
		AllowNegative:    req.AllowNegative,
		IsAnnual:         req.IsAnnual,
		SpecialCode:      leave.SpecialCode(req.SpecialCode),
		Active:           true,
	})
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}
	return created, nil
}

func (s *Service) UpdateLeaveType(ctx context.Context, req leave.UpdateLeaveTypeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.typeRepo.GetByID(ctx, req.ID); err != nil {
		return err
	}

	if err := s.typeRepo.Update(ctx, req); err != nil {
		return fmt.Errorf("failed to update leave type: %w", err)
	}
	return nil
}

func (s *Service) ListLeaveTypes(ctx context.Context, activeOnly bool) ([]leave.LeaveType, error) {
	types, err := s.typeRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	return types, nil
}

// DeleteLeaveType removes a type that no request has ever referenced.
// Referenced types are deactivated instead, via UpdateLeaveType.
func (s *Service) DeleteLeaveType(ctx context.Context, id string) error {
	if _, err := s.typeRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.requestRepo.CountByType(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count requests by type: %w", err)
	}
	if count > 0 {
		return leave.ErrLeaveTypeInUse
	}

	if err := s.typeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete leave type: %w", err)
	}
	return nil
}

func (s *Service) GetBalances(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalanceResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	balances, err := s.balanceRepo.GetByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}

	responses := make([]leave.LeaveBalanceResponse, 0, len(balances))
	for _, b := range balances {
		resp := toBalanceResponse(b)
		if leaveType, err := s.typeRepo.GetByID(ctx, b.LeaveTypeID); err == nil {
			resp.LeaveTypeName = leaveType.Name
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *Service) AdjustBalance(ctx context.Context, req leave.AdjustBalanceRequest) (leave.LeaveBalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveBalanceResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.LeaveBalanceResponse{}, err
	}
	if _, err := s.typeRepo.GetByID(ctx, req.LeaveTypeID); err != nil {
		return leave.LeaveBalanceResponse{}, err
	}

	var adjusted leave.LeaveBalance
	err := s.runTx(ctx, func(txCtx context.Context) error {
		var err error
		adjusted, err = s.ledger.Adjust(txCtx, req)
		return err
	})
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}

	return toBalanceResponse(adjusted), nil
}

// authorizeDecision checks who may decide the request at its current level
// and reports whether the decision finalizes it. Manager approvals at the
// first level escalate; everything else that passes is final.
func (s *Service) authorizeDecision(ctx context.Context, actor user.Actor, request leave.LeaveRequest, emp employee.Employee) (finalize bool, err error) {
	if actor.EmployeeID != "" && actor.EmployeeID == request.EmployeeID {
		return false, leave.ErrSelfApproval
	}

	if request.ApprovalLevel >= leave.ApprovalLevelHR {
		if !user.HasPermission(actor.Role, user.PermissionLeaveFinalize) {
			return false, leave.ErrApproverNotAuthorized
		}
		return true, nil
	}

	manages, err := s.actorManages(ctx, actor, emp)
	if err != nil {
		return false, err
	}
	if manages {
		return false, nil
	}

	if user.HasPermission(actor.Role, user.PermissionLeaveFinalize) {
		hasManager, err := s.departmentHasManager(ctx, emp)
		if err != nil {
			return false, err
		}
		if hasManager {
			return false, leave.ErrManagerDecisionRequired
		}
		return true, nil
	}

	if actor.Role == user.RoleManager {
		return false, leave.ErrNotDepartmentManager
	}
	return false, leave.ErrApproverNotAuthorized
}

func (s *Service) actorManages(ctx context.Context, actor user.Actor, emp employee.Employee) (bool, error) {
	if emp.DepartmentID == nil {
		return false, nil
	}
	departments, err := s.departmentRepo.ListManagedBy(ctx, actor.UserID)
	if err != nil {
		return false, fmt.Errorf("failed to list managed departments: %w", err)
	}
	for _, d := range departments {
		if d.ID == *emp.DepartmentID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) departmentHasManager(ctx context.Context, emp employee.Employee) (bool, error) {
	if emp.DepartmentID == nil {
		return false, nil
	}
	dept, err := s.departmentRepo.GetByID(ctx, *emp.DepartmentID)
	if err != nil {
		if err == department.ErrDepartmentNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to get department: %w", err)
	}
	return dept.HasManager(), nil
}

func (s *Service) checkCategory(ctx context.Context, leaveType leave.LeaveType, emp employee.Employee, req leave.SubmitLeaveRequest, start, end time.Time, businessDays int) error {
	rule, err := RuleFor(leaveType.SpecialCode)
	if err != nil {
		return err
	}

	input := CategoryInput{
		BusinessDays:  businessDays,
		CalendarDays:  validator.CalendarDays(start, end),
		Gender:        emp.Gender,
		TenureYears:   emp.TenureYears(start),
		HasAttachment: req.AttachmentID != nil && *req.AttachmentID != "",
	}

	if leaveType.SpecialCode == leave.SpecialHajj {
		prior, err := s.requestRepo.CountByCategory(ctx, emp.ID, leave.SpecialHajj)
		if err != nil {
			return fmt.Errorf("failed to count prior category requests: %w", err)
		}
		input.PriorGrants = prior
	}

	return rule.Validate(input)
}

func (s *Service) notifySubmitted(emp employee.Employee, leaveType leave.LeaveType, request leave.LeaveRequest) {
	if emp.DepartmentID == nil {
		return
	}

	ctx := context.Background()
	dept, err := s.departmentRepo.GetByID(ctx, *emp.DepartmentID)
	if err != nil || !dept.HasManager() {
		return
	}
	manager, err := s.userRepo.GetByID(ctx, *dept.ManagerUserID)
	if err != nil {
		slog.Warn("failed to resolve approver for notification", "error", err)
		return
	}

	if err := s.emailSvc.SendLeaveSubmitted(
		manager.Email,
		emp.FullName,
		leaveType.Name,
		request.StartDate.Format(dateLayout),
		request.EndDate.Format(dateLayout),
		request.Days,
	); err != nil {
		slog.Warn("failed to send submission notification", "error", err)
	}
}

func (s *Service) notifyDecision(emp employee.Employee, request leave.LeaveRequest, note string) {
	leaveType, err := s.typeRepo.GetByID(context.Background(), request.LeaveTypeID)
	if err != nil {
		slog.Warn("failed to resolve leave type for notification", "error", err)
		return
	}

	if err := s.emailSvc.SendLeaveDecision(
		emp.Email,
		leaveType.Name,
		request.StartDate.Format(dateLayout),
		request.EndDate.Format(dateLayout),
		string(request.Status),
		note,
	); err != nil {
		slog.Warn("failed to send decision notification", "error", err)
	}
}

func toBalanceResponse(b leave.LeaveBalance) leave.LeaveBalanceResponse {
	available := b.Closing
	if available < 0 {
		available = 0
	}
	return leave.LeaveBalanceResponse{
		EmployeeID:  b.EmployeeID,
		LeaveTypeID: b.LeaveTypeID,
		Year:        b.Year,
		Opening:     b.Opening,
		Accrued:     b.Accrued,
		Used:        b.Used,
		CarriedOver: b.CarriedOver,
		Closing:     b.Closing,
		Available:   available,
	}
}

func newRequestNumber(year int) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("LR-%d-%s", year, suffix)
}
