package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & Profile Tables
// ============================================================

// User represents users table (account + profile)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	FullName  string         `gorm:"size:100;not null" json:"full_name"`
	Phone     string         `gorm:"size:20" json:"phone"`
	AvatarURL string         `gorm:"size:255" json:"avatar_url"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		Phone:     u.Phone,
		AvatarURL: u.AvatarURL,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Fund Lifecycle Tables
// ============================================================

// Fund ข้อมูลวงแชร์ (main table)
type Fund struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"size:100;not null" json:"name"`
	TotalAmount         float64   `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	MonthlyContribution float64   `gorm:"type:decimal(15,2);not null" json:"monthly_contribution"`
	Duration            int       `gorm:"not null" json:"duration"`
	MemberCount         int       `gorm:"not null" json:"member_count"`
	AdminID             uint      `gorm:"not null;index" json:"admin_id"`
	JoinCode            string    `gorm:"size:6;uniqueIndex;not null" json:"join_code"`
	AdminCommission     float64   `gorm:"type:decimal(5,2);not null;default:0" json:"admin_commission"`
	CurrentMonth        int       `gorm:"not null;default:1" json:"current_month"`
	Status              string    `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Admin       *User        `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	Memberships []Membership `gorm:"foreignKey:FundID" json:"memberships,omitempty"`
}

func (Fund) TableName() string {
	return "funds"
}

// Membership join relation between a user and a fund.
// At most one row per (fund, user) pair, enforced by the composite index.
type Membership struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FundID     uint      `gorm:"not null;uniqueIndex:idx_fund_user" json:"fund_id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_fund_user" json:"user_id"`
	JoinedAt   time.Time `gorm:"autoCreateTime" json:"joined_at"`
	IsVerified bool      `gorm:"default:false" json:"is_verified"`
	HasWon     bool      `gorm:"default:false" json:"has_won"`
	WonMonth   *int      `json:"won_month"`

	// Relations
	Fund *Fund `gorm:"foreignKey:FundID" json:"-"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Membership) TableName() string {
	return "fund_members"
}

// MembershipResponse DTO with optional joined profile data
type MembershipResponse struct {
	ID         uint      `json:"id"`
	FundID     uint      `json:"fund_id"`
	UserID     uint      `json:"user_id"`
	JoinedAt   time.Time `json:"joined_at"`
	IsVerified bool      `json:"is_verified"`
	HasWon     bool      `json:"has_won"`
	WonMonth   *int      `json:"won_month"`
	FullName   string    `json:"full_name,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
}

func (m *Membership) ToResponse() *MembershipResponse {
	resp := &MembershipResponse{
		ID:         m.ID,
		FundID:     m.FundID,
		UserID:     m.UserID,
		JoinedAt:   m.JoinedAt,
		IsVerified: m.IsVerified,
		HasWon:     m.HasWon,
		WonMonth:   m.WonMonth,
	}
	if m.User != nil {
		resp.FullName = m.User.FullName
		resp.Phone = m.User.Phone
		resp.AvatarURL = m.User.AvatarURL
	}
	return resp
}

// Payment contribution claim for one month.
// At most one row per (fund, member, month), enforced by the composite
// index; a rejected row is deleted when the member resubmits.
type Payment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FundID      uint       `gorm:"not null;uniqueIndex:idx_fund_member_month" json:"fund_id"`
	MemberID    uint       `gorm:"not null;uniqueIndex:idx_fund_member_month" json:"member_id"`
	Month       int        `gorm:"not null;uniqueIndex:idx_fund_member_month" json:"month"`
	Amount      float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	ProofText   string     `gorm:"type:text" json:"proof_text,omitempty"`
	ProofImage  string     `gorm:"size:255" json:"proof_image,omitempty"`
	Status      string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	SubmittedAt time.Time  `gorm:"autoCreateTime" json:"submitted_at"`
	ApprovedAt  *time.Time `json:"approved_at"`

	// Relations
	Fund   *Fund `gorm:"foreignKey:FundID" json:"-"`
	Member *User `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

// PaymentResponse DTO with optional joined profile data
type PaymentResponse struct {
	ID          uint       `json:"id"`
	FundID      uint       `json:"fund_id"`
	MemberID    uint       `json:"member_id"`
	MemberName  string     `json:"member_name,omitempty"`
	Month       int        `json:"month"`
	Amount      float64    `json:"amount"`
	ProofText   string     `json:"proof_text,omitempty"`
	ProofImage  string     `json:"proof_image,omitempty"`
	Status      string     `json:"status"`
	SubmittedAt time.Time  `json:"submitted_at"`
	ApprovedAt  *time.Time `json:"approved_at"`
}

func (p *Payment) ToResponse() *PaymentResponse {
	resp := &PaymentResponse{
		ID:          p.ID,
		FundID:      p.FundID,
		MemberID:    p.MemberID,
		Month:       p.Month,
		Amount:      p.Amount,
		ProofText:   p.ProofText,
		ProofImage:  p.ProofImage,
		Status:      p.Status,
		SubmittedAt: p.SubmittedAt,
		ApprovedAt:  p.ApprovedAt,
	}
	if p.Member != nil {
		resp.MemberName = p.Member.FullName
	}
	return resp
}

// SpinResult immutable record of one month's winner selection.
// Exactly one row per (fund, month), enforced by the composite index.
type SpinResult struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	FundID   uint      `gorm:"not null;uniqueIndex:idx_fund_month" json:"fund_id"`
	Month    int       `gorm:"not null;uniqueIndex:idx_fund_month" json:"month"`
	WinnerID uint      `gorm:"not null" json:"winner_id"`
	Amount   float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	SpinDate time.Time `gorm:"autoCreateTime" json:"spin_date"`

	// Relations
	Fund   *Fund `gorm:"foreignKey:FundID" json:"-"`
	Winner *User `gorm:"foreignKey:WinnerID" json:"winner,omitempty"`
}

func (SpinResult) TableName() string {
	return "spin_results"
}

// Notification in-app reminder/announcement
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	FundID    uint      `gorm:"not null;index" json:"fund_id"`
	Type      string    `gorm:"size:30;not null" json:"type"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"-"`
	Fund *Fund `gorm:"foreignKey:FundID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Fund{},
		&Membership{},
		&Payment{},
		&SpinResult{},
		&Notification{},
	)
}
