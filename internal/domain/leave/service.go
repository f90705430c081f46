package leave

import (
	"context"

	"github.com/staffhub-id/leave-backend-go/internal/domain/user"
)

type LeaveService interface {
	// Lifecycle
	Submit(ctx context.Context, actor user.Actor, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	Approve(ctx context.Context, actor user.Actor, req DecisionRequest) (LeaveRequestResponse, error)
	Reject(ctx context.Context, actor user.Actor, req DecisionRequest) (LeaveRequestResponse, error)
	Shorten(ctx context.Context, actor user.Actor, req ShortenLeaveRequest) (LeaveRequestResponse, error)

	// Listings
	GetRequest(ctx context.Context, actor user.Actor, requestID string) (LeaveRequestResponse, error)
	ListMyRequests(ctx context.Context, actor user.Actor, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	ListPendingApprovals(ctx context.Context, actor user.Actor) ([]LeaveRequestResponse, error)

	// Types
	CreateLeaveType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveType, error)
	UpdateLeaveType(ctx context.Context, req UpdateLeaveTypeRequest) error
	ListLeaveTypes(ctx context.Context, activeOnly bool) ([]LeaveType, error)
	DeleteLeaveType(ctx context.Context, id string) error

	// Balances
	GetBalances(ctx context.Context, employeeID string, year int) ([]LeaveBalanceResponse, error)
	AdjustBalance(ctx context.Context, req AdjustBalanceRequest) (LeaveBalanceResponse, error)
}
