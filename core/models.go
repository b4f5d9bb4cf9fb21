package core

import "time"

// User represents a resident account.
//
// The backend owns this record; the client holds a read-mostly copy and is
// the sole writer of its own profile fields via a profile update.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Idea status values as reported by the backend.
const (
	IdeaStatusPending     = "pending"
	IdeaStatusApproved    = "approved"
	IdeaStatusRejected    = "rejected"
	IdeaStatusImplemented = "implemented"
)

// Idea is a community improvement proposal open for voting.
type Idea struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	VotesUp     int       `json:"votes_up"`
	VotesDown   int       `json:"votes_down"`
	AuthorID    int64     `json:"author_id"`
	Author      *User     `json:"author,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IdeaCreate is the payload for proposing an idea.
type IdeaCreate struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
}

// IdeaUpdate carries optional field changes for an existing idea.
type IdeaUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// VoteType is the direction of an idea vote.
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// Alert severity values.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Alert status values.
const (
	AlertStatusActive     = "active"
	AlertStatusResolved   = "resolved"
	AlertStatusFalseAlarm = "false_alarm"
)

// Alert is a neighborhood incident report.
type Alert struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AlertType   string     `json:"alert_type"`
	Severity    string     `json:"severity"`
	Status      string     `json:"status"`
	Location    string     `json:"location"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	AuthorID    int64      `json:"author_id"`
	Author      *User      `json:"author,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// AlertCreate is the payload for reporting an alert.
type AlertCreate struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	AlertType   string   `json:"alert_type" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Severity    string   `json:"severity" validate:"omitempty,oneof=low medium high critical"`
}

// Marketplace item types.
const (
	ItemTypeLend   = "lend"
	ItemTypeBorrow = "borrow"
	ItemTypeBoth   = "both"
)

// MarketplaceItem is something a resident lends out or wants to borrow.
type MarketplaceItem struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Category          string     `json:"category"`
	ItemType          string     `json:"item_type"`
	Condition         string     `json:"condition"`
	PricePerDay       float64    `json:"price_per_day"`
	DurationMax       *int       `json:"duration_max,omitempty"`
	Availability      bool       `json:"availability"`
	OwnerID           int64      `json:"owner_id"`
	Owner             *User      `json:"owner,omitempty"`
	CurrentBorrowerID *int64     `json:"current_borrower_id,omitempty"`
	BorrowedAt        *time.Time `json:"borrowed_at,omitempty"`
	ReturnBy          *time.Time `json:"return_by,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ItemCreate is the payload for listing a marketplace item.
type ItemCreate struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	ItemType    string  `json:"item_type" validate:"required,oneof=lend borrow both"`
	Condition   string  `json:"condition"`
	PricePerDay float64 `json:"price_per_day" validate:"gte=0"`
	DurationMax *int    `json:"duration_max,omitempty" validate:"omitempty,gt=0"`
}

// Expense split types.
const (
	SplitTypeEqual  = "equal"
	SplitTypeCustom = "custom"
)

// Expense status values.
const (
	ExpenseStatusPending   = "pending"
	ExpenseStatusSettled   = "settled"
	ExpenseStatusCancelled = "cancelled"
)

// Expense is a shared cost split between participants.
type Expense struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"`
	Description  *string        `json:"description,omitempty"`
	TotalAmount  float64        `json:"total_amount"`
	Category     string         `json:"category"`
	SplitType    string         `json:"split_type"`
	Status       string         `json:"status"`
	CreatedByID  int64          `json:"created_by_id"`
	CreatedBy    *User          `json:"created_by,omitempty"`
	Participants []User         `json:"participants,omitempty"`
	Splits       []ExpenseSplit `json:"splits,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	DueDate      *time.Time     `json:"due_date,omitempty"`
	SettledAt    *time.Time     `json:"settled_at,omitempty"`
}

// ExpenseSplit is one participant's share of an expense. The wire form
// references its expense by ID only; callers needing the full expense
// look it up in the expense list.
type ExpenseSplit struct {
	ID         int64      `json:"id"`
	ExpenseID  int64      `json:"expense_id"`
	UserID     int64      `json:"user_id"`
	User       *User      `json:"user,omitempty"`
	AmountOwed float64    `json:"amount_owed"`
	AmountPaid float64    `json:"amount_paid"`
	IsSettled  bool       `json:"is_settled"`
	SettledAt  *time.Time `json:"settled_at,omitempty"`
}

// Remaining is the unpaid portion of the split.
func (s ExpenseSplit) Remaining() float64 {
	return s.AmountOwed - s.AmountPaid
}

// SplitInput assigns a custom amount to one participant when split_type is custom.
type SplitInput struct {
	UserID     int64   `json:"user_id" validate:"required"`
	AmountOwed float64 `json:"amount_owed" validate:"gt=0"`
}

// ExpenseCreate is the payload for creating a shared expense.
type ExpenseCreate struct {
	Title          string       `json:"title" validate:"required"`
	Description    *string      `json:"description,omitempty"`
	TotalAmount    float64      `json:"total_amount" validate:"gt=0"`
	Category       string       `json:"category" validate:"required"`
	SplitType      string       `json:"split_type" validate:"omitempty,oneof=equal custom"`
	DueDate        *time.Time   `json:"due_date,omitempty"`
	ParticipantIDs []int64      `json:"participant_ids" validate:"required,min=1"`
	CustomSplits   []SplitInput `json:"custom_splits,omitempty" validate:"omitempty,dive"`
}

// ProfileUpdate carries the profile fields a user may change about themselves.
type ProfileUpdate struct {
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// RegisterInput is the payload for creating a new resident account.
type RegisterInput struct {
	Username string  `json:"username" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	FullName string  `json:"full_name" validate:"required"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	Password string  `json:"password" validate:"required,min=6"`
}

// TokenResponse is the backend's reply to a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
