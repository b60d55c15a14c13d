package domain

import "time"

// FundStatus represents the lifecycle state of a fund
type FundStatus string

const (
	FundActive    FundStatus = "active"
	FundCompleted FundStatus = "completed"
	FundPaused    FundStatus = "paused"
)

// PaymentStatus represents the review state of a contribution claim
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

// Notification types
const (
	NotifyPaymentReminder = "payment_reminder"
	NotifyPaymentApproved = "payment_approved"
	NotifySpinWinner      = "spin_winner"
)

// User represents a registered person in the domain layer
type User struct {
	ID        uint
	Email     string
	Username  string
	Password  string // Hashed
	FullName  string
	Phone     string
	AvatarURL string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Fund represents a rotating savings pool
type Fund struct {
	ID                  uint
	Name                string
	TotalAmount         float64
	MonthlyContribution float64
	Duration            int
	MemberCount         int
	AdminID             uint
	JoinCode            string
	AdminCommission     float64
	CurrentMonth        int
	Status              FundStatus
	CreatedAt           time.Time
}

// RefreshToken represents a persisted refresh token
type RefreshToken struct {
	ID        uint
	UserID    uint
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// SpinOutcome is the result of a monthly winner selection, for client display
type SpinOutcome struct {
	WinnerID   uint
	WinnerName string
	Amount     float64
	Month      int
}
