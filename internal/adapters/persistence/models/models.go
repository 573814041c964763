package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User roles
const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
)

// User represents users table
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"size:100;not null" json:"name"`
	Email      string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone      string         `gorm:"size:20" json:"phone"`
	Password   string         `gorm:"size:255;not null" json:"-"`
	Role       string         `gorm:"size:20;default:'OPERATOR'" json:"role"`
	LocationID *uint          `gorm:"index" json:"location_id"`
	IsApproved bool           `gorm:"default:false" json:"is_approved"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	LocationID   *uint     `json:"location_id"`
	LocationName string    `json:"location_name,omitempty"`
	IsApproved   bool      `json:"is_approved"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       u.Role,
		LocationID: u.LocationID,
		IsApproved: u.IsApproved,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
	if u.Location != nil {
		resp.LocationName = u.Location.Name
	}
	return resp
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
// Master Tables
// ============================================================

// Location represents a storage venue operated by the trust
type Location struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Address   string         `gorm:"type:text;not null" json:"address"`
	Capacity  int            `gorm:"not null" json:"capacity"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Location) TableName() string {
	return "locations"
}

// LocationResponse DTO with aggregate counts
type LocationResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Capacity      int       `json:"capacity"`
	CustomerCount int64     `json:"customer_count"`
	StorageCount  int64     `json:"storage_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Customer represents customers table
type Customer struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"size:100;not null;index" json:"name"`
	Phone      string         `gorm:"size:20;not null;index" json:"phone"`
	Email      *string        `gorm:"size:100" json:"email"`
	Address    string         `gorm:"type:text" json:"address"`
	LocationID uint           `gorm:"not null;index" json:"location_id"`
	OperatorID uint           `gorm:"not null" json:"operator_id"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Operator *User     `gorm:"foreignKey:OperatorID" json:"operator,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}

// ============================================================
// Storage & Payments
// ============================================================

// Storage statuses
const (
	StorageStatusActive    = "ACTIVE"
	StorageStatusExpiring  = "EXPIRING"
	StorageStatusExpired   = "EXPIRED"
	StorageStatusDelivered = "DELIVERED"
)

// Storage represents one custody entry for a customer's ash pots.
// Version guards concurrent renew/deliver mutations (check-and-set).
type Storage struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	CustomerID       uint           `gorm:"not null;index" json:"customer_id"`
	NumberOfPots     int            `gorm:"not null" json:"number_of_pots"`
	RegistrationDate time.Time      `gorm:"type:date;not null" json:"registration_date"`
	ExpiryDate       time.Time      `gorm:"type:date;not null;index" json:"expiry_date"`
	Status           string         `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`
	LocationID       uint           `gorm:"not null;index" json:"location_id"`
	OperatorID       uint           `gorm:"not null" json:"operator_id"`
	Version          uint           `gorm:"not null;default:1" json:"version"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Operator *User     `gorm:"foreignKey:OperatorID" json:"operator,omitempty"`
	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Payments []Payment `gorm:"foreignKey:StorageID" json:"payments,omitempty"`
	Delivery *Delivery `gorm:"foreignKey:StorageID" json:"delivery,omitempty"`
}

func (Storage) TableName() string {
	return "storages"
}

// IsDelivered reports whether the record reached its terminal state.
func (s *Storage) IsDelivered() bool {
	return s.Status == StorageStatusDelivered
}

// StorageResponse DTO
type StorageResponse struct {
	ID               uint      `json:"id"`
	CustomerID       uint      `json:"customer_id"`
	CustomerName     string    `json:"customer_name,omitempty"`
	CustomerPhone    string    `json:"customer_phone,omitempty"`
	NumberOfPots     int       `json:"number_of_pots"`
	RegistrationDate time.Time `json:"registration_date"`
	ExpiryDate       time.Time `json:"expiry_date"`
	Status           string    `json:"status"`
	LocationID       uint      `json:"location_id"`
	LocationName     string    `json:"location_name,omitempty"`
	OperatorID       uint      `json:"operator_id"`
	OperatorName     string    `json:"operator_name,omitempty"`
	Payments         []Payment `json:"payments,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (s *Storage) ToResponse() *StorageResponse {
	resp := &StorageResponse{
		ID:               s.ID,
		CustomerID:       s.CustomerID,
		NumberOfPots:     s.NumberOfPots,
		RegistrationDate: s.RegistrationDate,
		ExpiryDate:       s.ExpiryDate,
		Status:           s.Status,
		LocationID:       s.LocationID,
		OperatorID:       s.OperatorID,
		Payments:         s.Payments,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}

	if s.Customer != nil {
		resp.CustomerName = s.Customer.Name
		resp.CustomerPhone = s.Customer.Phone
	}
	if s.Location != nil {
		resp.LocationName = s.Location.Name
	}
	if s.Operator != nil {
		resp.OperatorName = s.Operator.Name
	}

	return resp
}

// Delivery represents deliveries table: the handover receipt written when
// a storage record reaches DELIVERED. One per storage.
type Delivery struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	StorageID        uint      `gorm:"uniqueIndex;not null" json:"storage_id"`
	ReceiptNumber    string    `gorm:"size:50;uniqueIndex;not null" json:"receipt_number"`
	ReceiverName     string    `gorm:"size:100;not null" json:"receiver_name"`
	ReceiverRelation string    `gorm:"size:50;not null" json:"receiver_relation"`
	ReceiverPhone    string    `gorm:"size:20" json:"receiver_phone"`
	DeliveredAt      time.Time `gorm:"not null" json:"delivered_at"`
	OperatorID       uint      `gorm:"not null" json:"operator_id"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`

	Storage  *Storage `gorm:"foreignKey:StorageID" json:"-"`
	Operator *User    `gorm:"foreignKey:OperatorID" json:"-"`
}

func (Delivery) TableName() string {
	return "deliveries"
}

// Payment statuses
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
)

// Payment represents payments table. The core only appends payments,
// never edits one once COMPLETED.
type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	StorageID     uint      `gorm:"not null;index" json:"storage_id"`
	Amount        float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status        string    `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	Method        string    `gorm:"size:20;not null" json:"method"`
	PaymentDate   time.Time `gorm:"not null" json:"payment_date"`
	TransactionID *string   `gorm:"size:100" json:"transaction_id"`
	OperatorID    uint      `gorm:"not null" json:"operator_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	Storage  *Storage `gorm:"foreignKey:StorageID" json:"-"`
	Operator *User    `gorm:"foreignKey:OperatorID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}

// ============================================================
// Notifications & OTP
// ============================================================

// Notification types
const (
	NotifyTypeRegistration         = "REGISTRATION"
	NotifyTypeRenewalConfirmation  = "RENEWAL_CONFIRMATION"
	NotifyTypeDeliveryConfirmation = "DELIVERY_CONFIRMATION"
	NotifyTypeRenewalReminder      = "RENEWAL_REMINDER"
	NotifyTypeFinalWarning         = "FINAL_WARNING"
)

// Notification statuses
const (
	NotifyStatusPending = "PENDING"
	NotifyStatusSent    = "SENT"
	NotifyStatusFailed  = "FAILED"
)

// Notification represents notifications table (append-only log)
type Notification struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Type       string     `gorm:"size:30;not null;index" json:"type"`
	Message    string     `gorm:"type:text;not null" json:"message"`
	Status     string     `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	StorageID  uint       `gorm:"not null;index" json:"storage_id"`
	OperatorID *uint      `json:"operator_id"`
	SentAt     *time.Time `json:"sent_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Storage *Storage `gorm:"foreignKey:StorageID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

// OTP purposes
const (
	OTPPurposeCustomer = "CUSTOMER_VERIFICATION"
	OTPPurposeDelivery = "DELIVERY_VERIFICATION"
)

// OTPCode represents otp_codes table. Codes are single-use and
// time-bounded; verification happens server-side only.
type OTPCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Phone     string    `gorm:"size:20;not null;index" json:"phone"`
	Code      string    `gorm:"size:10;not null" json:"-"`
	Purpose   string    `gorm:"size:30;not null" json:"purpose"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	IsUsed    bool      `gorm:"default:false" json:"is_used"`
	Attempts  int       `gorm:"default:0" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (OTPCode) TableName() string {
	return "otp_codes"
}

func (o *OTPCode) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Location{},
		&Customer{},
		&Storage{},
		&Delivery{},
		&Payment{},
		&Notification{},
		&OTPCode{},
	)
}
