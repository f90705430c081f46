package leave

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub-id/leave-backend-go/internal/domain/employee"
	"github.com/staffhub-id/leave-backend-go/internal/domain/leave"
	"github.com/staffhub-id/leave-backend-go/internal/domain/user"
)

func hrActor() user.Actor {
	return user.Actor{UserID: uuid.NewString(), EmployeeID: uuid.NewString(), Role: user.RoleHR}
}

func submitReq(leaveTypeID string, start, end time.Time) leave.SubmitLeaveRequest {
	return leave.SubmitLeaveRequest{
		LeaveTypeID: leaveTypeID,
		StartDate:   start.Format(dateLayout),
		EndDate:     end.Format(dateLayout),
		Reason:      "family matters",
	}
}

func TestSubmit_CreatesPendingAtFirstLevel(t *testing.T) {
	f := newFixture()
	lt := f.seedType(nil)
	emp := f.seedEmployee(nil, employee.Female, yearsAgo(3))
	start, end := futureRange(3)

	resp, err := f.svc.Submit(context.Background(), actorFor(emp, user.RoleEmployee), submitReq(lt.ID, start, end))

	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusPending, resp.Status)
	assert.Equal(t, leave.ApprovalLevelManager, resp.ApprovalLevel)
	assert.Equal(t, 3, resp.Days)
	assert.True(t, strings.HasPrefix(resp.RequestNumber, "LR-"))
	require.Len(t, resp.Chain, 1)
	assert.Equal(t, leave.ChainActionSubmit, resp.Chain[0].Action)

	// Submission reserves nothing; the ledger only moves on final approval.
	assert.Empty(t, f.balances.balances)
}

func TestSubmit_RejectsOverlap(t *testing.T) {
	f := newFixture()
	lt := f.seedType(nil)
	emp := f.seedEmployee(nil, employee.Male, yearsAgo(3))
	start, end := futureRange(5)
	f.seedRequest(leave.LeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: lt.ID,
		StartDate:   start.AddDate(0, 0, 2),
		EndDate:     end.AddDate(0, 0, 2),
		Days:        5,
		Status:      leave.LeaveRequestStatusPending,
	})

	_, err := f.svc.Submit(context.Background(), actorFor(emp, user.RoleEmployee), submitReq(lt.ID, start, end))

	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
}

func TestSubmit_RejectedRequestDoesNotBlock(t *testing.T) {
	f := newFixture()
	lt := f.seedType(nil)
	emp := f.seedEmployee(nil, employee.Male, yearsAgo(3))
	start, end := futureRange(3)
	f.seedRequest(leave.LeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: lt.ID,
		StartDate:   start,
		EndDate:     end,
		Days:        3,
		Status:      leave.LeaveRequestStatusRejected,
	})

	_, err := f.svc.Submit(context.Background(), actorFor(emp, user.RoleEmployee), submitReq(lt.ID, start, end))

	assert.NoError(t, err)
}

func TestSubmit_InsufficientBalance(t *testing.T) {
	f := newFixture()
	lt := f.seedType(nil) // flat quota of 12
	emp := f.seedEmployee(nil, employee.Female, yearsAgo(3))
	start, end := futureRange(13)

	_, err := f.svc.Submit(context.Background(), actorFor(emp, user.RoleEmployee), submitReq(lt.ID, start, end))

	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestSubmit_AllowNegativeSkipsBalanceCheck(t *testing.T) {
	f := newFixture()
	lt := f.seedType(func(lt *leave.LeaveType) { lt.AllowNegative = true })
	emp := f.seedEmployee(nil, employee.Female, yearsAgo(3))
	start, end := futureRange(13)

	_, err := f.svc.Submit(context.Background(), actorFor(emp, user.RoleEmployee), submitReq(lt.ID, start, end))

	assert.NoError(t, err)
}

func TestSubmit_DateGuards(t *testing.T) {
	f := newFixture()
	lt := f.seedType(nil)
	emp := f.seedEmployee(nil, employee.Male, yearsAgo(3))
	actor := actorFor(emp, user.RoleEmployee)
	ctx := context.Background()

	start, end := futureRange(3)
	_, err := f.svc.Submit(ctx, actor, submitReq(lt.ID, end, start))
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)

	past := time.Now().UTC().AddDate(0, 0, -3)
	_, err = f.svc.Submit(ctx, actor, submitReq(lt.ID, past, past))
	assert.ErrorIs(t, err, leave.ErrStartDateInPast)

	year := time.Now().UTC().Year() + 1
	decStart := time.Date(year, 12, 30, 0, 0, 0, 0, time.UTC)
	_, err = f.svc.Submit(ctx, actor, submitReq(lt.ID, decStart, decStart.AddDate(0, 0, 3)))
	assert.ErrorIs(t, err, leave.ErrCrossYearRange)
}

func TestSubmit_InactiveType(t *testing.T) {
	f := newFixture()
	lt := f.seedType(func(lt *leave.LeaveType) { lt.Active = false })
	emp := f.seedEmployee(nil, employee.Male, yearsAgo(3))
	start, end := futureRange(2)

	_, err := f.svc.Submit(context.Background(), actorFor(emp, user.RoleEmployee), submitReq(lt.ID, start, end))

	assert.ErrorIs(t, err, leave.ErrLeaveTypeInactive)
}

func TestSubmit_ActorWithoutEmployee(t *testing.T) {
	f := newFixture()
	lt := f.seedType(nil)
	start, end := futureRange(2)

	_, err := f.svc.Submit(context.Background(), user.Actor{UserID: uuid.NewString(), Role: user.RoleHR}, submitReq(lt.ID, start, end))

	assert.ErrorIs(t, err, user.ErrActorWithoutEmployee)
}

func TestSubmit_SickLeaveRequiresAttachment(t *testing.T) {
	f := newFixture()
	lt := f.seedType(func(lt *leave.LeaveType) {
		lt.SpecialCode = leave.SpecialSickShort
		lt.AllowNegative = true
	})
	emp := f.seedEmployee(nil, employee.Male, yearsAgo(3))
	start, end := futureRange(2)
	actor := actorFor(emp, user.RoleEmployee)

	_, err := f.svc.Submit(context.Background(), actor, submitReq(lt.ID, start, end))
	assert.ErrorIs(t, err, leave.ErrAttachmentRequired)

	attachment := "leave-attachments/doc.pdf"
	req := submitReq(lt.ID, start, end)
	req.AttachmentID = &attachment
	_, err = f.svc.Submit(context.Background(), actor, req)
	assert.NoError(t, err)
}

func TestSubmit_HajjOnlyOnce(t *testing.T) {
	f := newFixture()
	lt := f.seedType(func(lt *leave.LeaveType) {
		lt.SpecialCode = leave.SpecialHajj
		lt.AllowNegative = true
	})
	emp := f.seedEmployee(nil, employee.Male, yearsAgo(4))
	prior, priorEnd := futureRange(12)
	f.seedRequest(leave.LeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: lt.ID,
		StartDate:   prior.AddDate(0, -2, 0),
		EndDate:     priorEnd.AddDate(0, -2, 0),
		Days:        12,
		Status:      leave.LeaveRequestStatusApproved,
	})
	start, end := futureRange(12)

	_, err := f.svc.Submit(context.Background(), actorFor(emp, user.RoleEmployee), submitReq(lt.ID, start, end))

	assert.ErrorIs(t, err, leave.ErrHajjAlreadyGranted)
}

func TestSubmit_ClampsToOneDayMinimum(t *testing.T) {
	f := newFixture()
	f.calendar.zeroDays = true
	lt := f.seedType(nil)
	emp := f.seedEmployee(nil, employee.Female, yearsAgo(3))
	start, end := futureRange(1)

	resp, err := f.svc.Submit(context.Background(), actorFor(emp, user.RoleEmployee), submitReq(lt.ID, start, end))

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Days)
}

func TestApprove_ManagerEscalatesWithoutTouchingLedger(t *testing.T) {
	f := newFixture()
	managerUserID := uuid.NewString()
	dept := f.seedDepartment("Engineering", &managerUserID)
	lt := f.seedType(nil)
	emp := f.seedEmployee(&dept.ID, employee.Male, yearsAgo(3))
	start, end := futureRange(3)
	request := f.seedRequest(leave.LeaveRequest{
		EmployeeID:    emp.ID,
		LeaveTypeID:   lt.ID,
		StartDate:     start,
		EndDate:       end,
		Days:          3,
		Status:        leave.LeaveRequestStatusPending,
		ApprovalLevel: leave.ApprovalLevelManager,
	})
	manager := user.Actor{UserID: managerUserID, EmployeeID: uuid.NewString(), Role: user.RoleManager}

	resp, err := f.svc.Approve(context.Background(), manager, leave.DecisionRequest{RequestID: request.ID})

	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusPending, resp.Status)
	assert.Equal(t, leave.ApprovalLevelHR, resp.ApprovalLevel)
	assert.Nil(t, resp.DecidedAt)
	require.Len(t, resp.Chain, 1)
	assert.Equal(t, leave.ChainActionApprove, resp.Chain[0].Action)
	assert.Empty(t, f.balances.balances)
}

func TestApprove_HRBlockedAtFirstLevelWhenManagerExists(t *testing.T) {
	f := newFixture()
	managerUserID := uuid.NewString()
	dept := f.seedDepartment("Engineering", &managerUserID)
	lt := f.seedType(nil)
	emp := f.seedEmployee(&dept.ID, employee.Male, yearsAgo(3))
	request := f.seedRequest(leave.LeaveRequest{
		EmployeeID:    emp.ID,
		LeaveTypeID:   lt.ID,
		StartDate:     time.Date(time.Now().Year()+1, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(time.Now().Year()+1, 3, 4, 0, 0, 0, 0, time.UTC),
		Days:          3,
		Status:        leave.LeaveRequestStatusPending,
		ApprovalLevel: leave.ApprovalLevelManager,
	})

	_, err := f.svc.Approve(context.Background(), hrActor(), leave.DecisionRequest{RequestID: request.ID})

	assert.ErrorIs(t, err, leave.ErrManagerDecisionRequired)
}

func TestApprove_HRFinalizesAtFirstLevelWithoutManager(t *testing.T) {
	f := newFixture()
	dept := f.seedDepartment("Finance", nil)
	lt := f.seedType(nil)
	emp := f.seedEmployee(&dept.ID, employee.Female, yearsAgo(3))
	year := time.Now().Year() + 1
	request := f.seedRequest(leave.LeaveRequest{
		EmployeeID:    emp.ID,
		LeaveTypeID:   lt.ID,
		StartDate:     time.Date(year, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(year, 3, 4, 0, 0, 0, 0, time.UTC),
		Days:          3,
		Status:        leave.LeaveRequestStatusPending,
		ApprovalLevel: leave.ApprovalLevelManager,
	})

	resp, err := f.svc.Approve(context.Background(), hrActor(), leave.DecisionRequest{RequestID: request.ID})

	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, resp.Status)
	require.NotNil(t, resp.DecidedAt)

	balance, err := f.balances.GetByEmployeeTypeYear(context.Background(), emp.ID, lt.ID, year)
	require.NoError(t, err)
	assert.Equal(t, 3, balance.Used)
	assert.Equal(t, 12, balance.Accrued)
	assert.Equal(t, 9, balance.Closing)
}

func TestApprove_FinalApprovalRecomputesBalance(t *testing.T) {
	f := newFixture()
	lt := f.seedType(nil)
	emp := f.seedEmployee(nil, employee.Male, yearsAgo(3))
	year := time.Now().Year() + 1
	request := f.seedRequest(leave.LeaveRequest{
		EmployeeID:    emp.ID,
		LeaveTypeID:   lt.ID,
		StartDate:     time.Date(year, 5, 4, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(year, 5, 8, 0, 0, 0, 0, time.UTC),
		Days:          5,
		Status:        leave.LeaveRequestStatusPending,
		ApprovalLevel: leave.ApprovalLevelHR,
		Chain:         leave.ApprovalChain{{Action: leave.ChainActionSubmit}, {Action: leave.ChainActionApprove}},
	})
	note := "enjoy"

	resp, err := f.svc.Approve(context.Background(), hrActor(), leave.DecisionRequest{RequestID: request.ID, Note: note})

	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, resp.Status)
	require.NotNil(t, resp.ApproverNote)
	assert.Equal(t, note, *resp.ApproverNote)
	require.Len(t, resp.Chain, 3)

	balance, err := f.balances.GetByEmployeeTypeYear(context.Background(), emp.ID, lt.ID, year)
	require.NoError(t, err)
	assert.Equal(t, 5, balance.Used)
	assert.Equal(t, 7, balance.Closing)
}

func TestApprove_ManagerCannotFinalize(t *testing.T) {
	f := newFixture()
	managerUserID := uuid.NewString()
	dept := f.seedDepartment("Engineering", &managerUserID)
	lt := f.seedType(nil)
	emp := f.seedEmployee(&dept.ID, employee.Male, yearsAgo(3))
	request := f.seedRequest(leave.LeaveRequest{
		EmployeeID:    emp.ID,
		LeaveTypeID:   lt.ID,
		StartDate:     time.Date(time.Now().Year()+1, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(time.Now().Year()+1, 3, 4, 0, 0, 0, 0, time.UTC),
		Days:          3,
		Status:        leave.LeaveRequestStatusPending,
		ApprovalLevel: leave.ApprovalLevelHR,
	})
	manager := user.Actor{UserID: managerUserID, EmployeeID: uuid.NewString(), Role: user.RoleManager}

	_, err := f.svc.Approve(context.Background(), manager, leave.DecisionRequest{RequestID: request.ID})

	assert.ErrorIs(t, err, leave.ErrApproverNotAuthorized)
}

func TestApprove_SelfApprovalBlocked(t *testing.T) {
	f := newFixture()
	managerUserID := uuid.NewString()
	dept := f.seedDepartment("Engineering", &managerUserID)
	lt := f.seedType(nil)
	emp := f.seedEmployee(&dept.ID, employee.Male, yearsAgo(3))
	request := f.seedRequest(leave.LeaveRequest{
		EmployeeID:    emp.ID,
		LeaveTypeID:   lt.ID,
		StartDate:     time.Date(time.Now().Year()+1, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(time.Now().Year()+1, 3, 4, 0, 0, 0, 0, time.UTC),
		Days:          3,
		Status:        leave.LeaveRequestStatusPending,
		ApprovalLevel: leave.ApprovalLevelManager,
	})
	// The manager submitted this request themself.
	self := user.Actor{UserID: managerUserID, EmployeeID: emp.ID, Role: user.RoleManager}

	_, err := f.svc.Approve(context.Background(), self, leave.DecisionRequest{RequestID: request.ID})

	assert.ErrorIs(t, err, leave.ErrSelfApproval)
}

func TestApprove_ForeignManagerRejected(t *testing.T) {
	f := newFixture()
	managerUserID := uuid.NewString()
	dept := f.seedDepartment("Engineering", &managerUserID)
	lt := f.seedType(nil)
	emp := f.seedEmployee(&dept.ID, employee.Male, yearsAgo(3))
	request := f.seedRequest(leave.LeaveRequest{
		EmployeeID:    emp.ID,
		LeaveTypeID:   lt.ID,
		StartDate:     time.Date(time.Now().Year()+1, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(time.Now().Year()+1, 3, 4, 0, 0, 0, 0, time.UTC),
		Days:          3,
		Status:        leave.LeaveRequestStatusPending,
		ApprovalLevel: leave.ApprovalLevelManager,
	})
	outsider := user.Actor{UserID: uuid.NewString(), EmployeeID: uuid.NewString(), Role: user.RoleManager}

	_, err := f.svc.Approve(context.Background(), outsider, leave.DecisionRequest{RequestID: request.ID})

	assert.ErrorIs(t, err, leave.ErrNotDepartmentManager)
}

func TestApprove_AlreadyProcessed(t *testing.T) {
	f := newFixture()
	lt := f.seedType(nil)
	emp := f.seedEmployee(nil, employee.Male, yearsAgo(3))
	request := f.seedRequest(leave.LeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: lt.ID,
		StartDate:   time.Date(time.Now().Year()+1, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(time.Now().Year()+1, 3, 4, 0, 0, 0, 0, time.UTC),
		Days:        3,
		Status:      leave.LeaveRequestStatusApproved,
	})

	_, err := f.svc.Approve(context.Background(), hrActor(), leave.DecisionRequest{RequestID: request.ID})

	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestReject_TerminalAtAnyLevelWithoutLedgerWrite(t *testing.T) {
	f := newFixture()
	managerUserID := uuid.NewString()
	dept := f.seedDepartment("Engineering", &managerUserID)
	lt := f.seedType(nil)
	emp := f.seedEmployee(&dept.ID, employee.Female, yearsAgo(3))
	request := f.seedRequest(leave.LeaveRequest{
		EmployeeID:    emp.ID,
		LeaveTypeID:   lt.ID,
		StartDate:     time.Date(time.Now().Year()+1, 4, 6, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(time.Now().Year()+1, 4, 8, 0, 0, 0, 0, time.UTC),
		Days:          3,
		Status:        leave.LeaveRequestStatusPending,
		ApprovalLevel: leave.ApprovalLevelManager,
	})
	manager := user.Actor{UserID: managerUserID, EmployeeID: uuid.NewString(), Role: user.RoleManager}

	resp, err := f.svc.Reject(context.Background(), manager, leave.DecisionRequest{RequestID: request.ID, Note: "coverage gap"})

	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusRejected, resp.Status)
	require.NotNil(t, resp.DecidedAt)
	assert.Empty(t, f.balances.balances)

	// Terminal: a second decision is refused.
	_, err = f.svc.Approve(context.Background(), hrActor(), leave.DecisionRequest{RequestID: request.ID})
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestShorten_CutsRangeAndRestoresBalance(t *testing.T) {
	f := newFixture()
	lt := f.seedType(nil)
	emp := f.seedEmployee(nil, employee.Male, yearsAgo(3))
	year := time.Now().Year() + 1
	request := f.seedRequest(leave.LeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: lt.ID,
		StartDate:   time.Date(year, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(year, 3, 11, 0, 0, 0, 0, time.UTC),
		Days:        10,
		Status:      leave.LeaveRequestStatusApproved,
	})

	resp, err := f.svc.Shorten(context.Background(), hrActor(), leave.ShortenLeaveRequest{
		RequestID:    request.ID,
		ActualReturn: time.Date(year, 3, 7, 0, 0, 0, 0, time.UTC).Format(dateLayout),
	})

	require.NoError(t, err)
	assert.Equal(t, time.Date(year, 3, 6, 0, 0, 0, 0, time.UTC).Format(dateLayout), resp.EndDate)
	assert.Equal(t, 5, resp.Days)
	require.NotEmpty(t, resp.Chain)
	assert.Equal(t, leave.ChainActionShorten, resp.Chain[len(resp.Chain)-1].Action)

	balance, err := f.balances.GetByEmployeeTypeYear(context.Background(), emp.ID, lt.ID, year)
	require.NoError(t, err)
	assert.Equal(t, 5, balance.Used)
	assert.Equal(t, 7, balance.Closing)
}

func TestShorten_OwnerMayShortenOwnRequest(t *testing.T) {
	f := newFixture()
	lt := f.seedType(nil)
	emp := f.seedEmployee(nil, employee.Female, yearsAgo(3))
	year := time.Now().Year() + 1
	request := f.seedRequest(leave.LeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: lt.ID,
		StartDate:   time.Date(year, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(year, 3, 11, 0, 0, 0, 0, time.UTC),
		Days:        10,
		Status:      leave.LeaveRequestStatusApproved,
	})

	_, err := f.svc.Shorten(context.Background(), actorFor(emp, user.RoleEmployee), leave.ShortenLeaveRequest{
		RequestID:    request.ID,
		ActualReturn: time.Date(year, 3, 11, 0, 0, 0, 0, time.UTC).Format(dateLayout),
	})

	assert.NoError(t, err)
}

func TestShorten_RejectsOutsiderAndBadDates(t *testing.T) {
	f := newFixture()
	lt := f.seedType(nil)
	emp := f.seedEmployee(nil, employee.Male, yearsAgo(3))
	year := time.Now().Year() + 1
	start := time.Date(year, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, 3, 11, 0, 0, 0, 0, time.UTC)
	request := f.seedRequest(leave.LeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: lt.ID,
		StartDate:   start,
		EndDate:     end,
		Days:        10,
		Status:      leave.LeaveRequestStatusApproved,
	})
	ctx := context.Background()

	other := f.seedEmployee(nil, employee.Male, yearsAgo(2))
	_, err := f.svc.Shorten(ctx, actorFor(other, user.RoleEmployee), leave.ShortenLeaveRequest{
		RequestID:    request.ID,
		ActualReturn: end.Format(dateLayout),
	})
	assert.ErrorIs(t, err, leave.ErrApproverNotAuthorized)

	// Returning on the start date means no leave was taken at all; that is
	// a cancellation, not a shortening.
	_, err = f.svc.Shorten(ctx, hrActor(), leave.ShortenLeaveRequest{
		RequestID:    request.ID,
		ActualReturn: start.Format(dateLayout),
	})
	assert.ErrorIs(t, err, leave.ErrReturnDateOutOfRange)

	_, err = f.svc.Shorten(ctx, hrActor(), leave.ShortenLeaveRequest{
		RequestID:    request.ID,
		ActualReturn: end.AddDate(0, 0, 1).Format(dateLayout),
	})
	assert.ErrorIs(t, err, leave.ErrReturnDateOutOfRange)
}

func TestShorten_PendingRequestRefused(t *testing.T) {
	f := newFixture()
	lt := f.seedType(nil)
	emp := f.seedEmployee(nil, employee.Male, yearsAgo(3))
	year := time.Now().Year() + 1
	request := f.seedRequest(leave.LeaveRequest{
		EmployeeID:    emp.ID,
		LeaveTypeID:   lt.ID,
		StartDate:     time.Date(year, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(year, 3, 11, 0, 0, 0, 0, time.UTC),
		Days:          10,
		Status:        leave.LeaveRequestStatusPending,
		ApprovalLevel: leave.ApprovalLevelManager,
	})

	_, err := f.svc.Shorten(context.Background(), hrActor(), leave.ShortenLeaveRequest{
		RequestID:    request.ID,
		ActualReturn: time.Date(year, 3, 7, 0, 0, 0, 0, time.UTC).Format(dateLayout),
	})

	assert.ErrorIs(t, err, leave.ErrRequestNotApproved)
}

func TestListPendingApprovals_Inboxes(t *testing.T) {
	f := newFixture()
	managerUserID := uuid.NewString()
	managed := f.seedDepartment("Engineering", &managerUserID)
	orphan := f.seedDepartment("Finance", nil)
	lt := f.seedType(nil)
	inManaged := f.seedEmployee(&managed.ID, employee.Male, yearsAgo(3))
	inOrphan := f.seedEmployee(&orphan.ID, employee.Female, yearsAgo(3))
	year := time.Now().Year() + 1

	first := f.seedRequest(leave.LeaveRequest{
		EmployeeID: inManaged.ID, LeaveTypeID: lt.ID,
		StartDate: time.Date(year, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(year, 3, 4, 0, 0, 0, 0, time.UTC),
		Days:      3, Status: leave.LeaveRequestStatusPending, ApprovalLevel: leave.ApprovalLevelManager,
	})
	f.seedRequest(leave.LeaveRequest{
		EmployeeID: inOrphan.ID, LeaveTypeID: lt.ID,
		StartDate: time.Date(year, 4, 6, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(year, 4, 7, 0, 0, 0, 0, time.UTC),
		Days:      2, Status: leave.LeaveRequestStatusPending, ApprovalLevel: leave.ApprovalLevelManager,
	})
	f.seedRequest(leave.LeaveRequest{
		EmployeeID: inManaged.ID, LeaveTypeID: lt.ID,
		StartDate: time.Date(year, 5, 4, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(year, 5, 5, 0, 0, 0, 0, time.UTC),
		Days:      2, Status: leave.LeaveRequestStatusPending, ApprovalLevel: leave.ApprovalLevelHR,
	})
	ctx := context.Background()

	// HR sees every pending request, both levels, all departments.
	hrInbox, err := f.svc.ListPendingApprovals(ctx, hrActor())
	require.NoError(t, err)
	assert.Len(t, hrInbox, 3)

	// The manager sees only first-level requests from their department.
	manager := user.Actor{UserID: managerUserID, EmployeeID: uuid.NewString(), Role: user.RoleManager}
	mgrInbox, err := f.svc.ListPendingApprovals(ctx, manager)
	require.NoError(t, err)
	require.Len(t, mgrInbox, 1)
	assert.Equal(t, first.ID, mgrInbox[0].ID)

	_, err = f.svc.ListPendingApprovals(ctx, user.Actor{UserID: uuid.NewString(), Role: user.RoleEmployee})
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)
}

func TestDeleteLeaveType_RefusedWhenReferenced(t *testing.T) {
	f := newFixture()
	lt := f.seedType(nil)
	emp := f.seedEmployee(nil, employee.Male, yearsAgo(3))
	f.seedRequest(leave.LeaveRequest{
		EmployeeID:  emp.ID,
		LeaveTypeID: lt.ID,
		StartDate:   time.Date(time.Now().Year(), 2, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(time.Now().Year(), 2, 3, 0, 0, 0, 0, time.UTC),
		Days:        2,
		Status:      leave.LeaveRequestStatusRejected,
	})

	err := f.svc.DeleteLeaveType(context.Background(), lt.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveTypeInUse)

	unused := f.seedType(func(lt *leave.LeaveType) { lt.Name = "Unpaid Leave" })
	require.NoError(t, f.svc.DeleteLeaveType(context.Background(), unused.ID))
	_, err = f.types.GetByID(context.Background(), unused.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
}

func TestSubmit_LocksEmployeeBeforeOverlapCheck(t *testing.T) {
	f := newFixture()
	lt := f.seedType(nil)
	emp := f.seedEmployee(nil, employee.Female, yearsAgo(3))
	start, end := futureRange(3)

	_, err := f.svc.Submit(context.Background(), actorFor(emp, user.RoleEmployee), submitReq(lt.ID, start, end))

	require.NoError(t, err)
	// The per-employee lock must be held before the overlap check reads,
	// otherwise two concurrent submissions could both pass it.
	assert.Equal(t, []string{"lock:" + emp.ID, "overlap-check", "create"}, f.requests.submitTrace)
}

func TestSubmit_LockFailureAbortsSubmission(t *testing.T) {
	f := newFixture()
	lt := f.seedType(nil)
	emp := f.seedEmployee(nil, employee.Female, yearsAgo(3))
	f.requests.lockErr = errors.New("lock refused")
	start, end := futureRange(3)

	_, err := f.svc.Submit(context.Background(), actorFor(emp, user.RoleEmployee), submitReq(lt.ID, start, end))

	require.Error(t, err)
	assert.Empty(t, f.requests.requests)
}

func TestGetRequest_VisibilityScope(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	mgrUserID := uuid.NewString()
	dept := f.seedDepartment("Engineering", &mgrUserID)
	lt := f.seedType(nil)
	owner := f.seedEmployee(&dept.ID, employee.Female, yearsAgo(3))
	outsider := f.seedEmployee(nil, employee.Male, yearsAgo(3))
	year := time.Now().Year() + 1
	request := f.seedRequest(leave.LeaveRequest{
		EmployeeID:  owner.ID,
		LeaveTypeID: lt.ID,
		StartDate:   time.Date(year, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(year, 3, 4, 0, 0, 0, 0, time.UTC),
		Days:        3,
		Status:      leave.LeaveRequestStatusPending,
	})

	_, err := f.svc.GetRequest(ctx, actorFor(owner, user.RoleEmployee), request.ID)
	assert.NoError(t, err, "owner sees own request")

	_, err = f.svc.GetRequest(ctx, hrActor(), request.ID)
	assert.NoError(t, err, "hr sees every request")

	manager := user.Actor{UserID: mgrUserID, EmployeeID: uuid.NewString(), Role: user.RoleManager}
	_, err = f.svc.GetRequest(ctx, manager, request.ID)
	assert.NoError(t, err, "department manager sees managed requests")

	_, err = f.svc.GetRequest(ctx, actorFor(outsider, user.RoleEmployee), request.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound, "unrelated employee is refused")

	foreign := user.Actor{UserID: uuid.NewString(), EmployeeID: uuid.NewString(), Role: user.RoleManager}
	_, err = f.svc.GetRequest(ctx, foreign, request.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound, "manager of another department is refused")
}
