package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrInternalServer = errors.New("internal server error")
)

// Auth errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")
)

// Fund lifecycle errors
var (
	ErrFundNotFound       = errors.New("fund not found")
	ErrJoinCodeNotFound   = errors.New("no fund matches this join code")
	ErrFundNotActive      = errors.New("fund is not active")
	ErrFundCompleted      = errors.New("fund has already completed")
	ErrNotFundAdmin       = errors.New("only the fund admin may perform this action")
	ErrNotFundMember      = errors.New("user is not a member of this fund")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrMemberNotVerified  = errors.New("member is not verified")
)

// Payment errors
var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrDuplicatePayment = errors.New("a payment for this month was already submitted")
	ErrWrongMonth       = errors.New("payments are only accepted for the fund's current month")
	ErrPaymentFinalized = errors.New("payment has already been approved or rejected")
)

// Spin errors
var (
	ErrDuplicateSpin         = errors.New("a spin was already conducted for this month")
	ErrInsufficientMembers   = errors.New("at least 2 eligible members are required to spin")
	ErrNoEligibleMembers     = errors.New("no eligible members to spin")
	ErrSpinResultNotReturned = errors.New("spin completed without a winner")
)

// Notification errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)
