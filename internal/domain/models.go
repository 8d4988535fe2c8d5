package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns the primary key on the application side.
func (m *BaseModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Submission is a confirmed offer request. The quote token is kept verbatim
// so the offer can be re-rendered exactly as the customer saw it.
type Submission struct {
	BaseModel
	OrderID              string     `gorm:"type:varchar(50);not null;uniqueIndex;column:order_id"`
	ServiceType          string     `gorm:"type:varchar(50);not null;index;column:service_type"`
	ServiceTitle         string     `gorm:"type:varchar(200);not null;column:service_title"`
	CustomerName         string     `gorm:"type:varchar(200);column:customer_name"`
	CustomerEmail        string     `gorm:"type:varchar(255);not null;column:customer_email"`
	CustomerPhone        string     `gorm:"type:varchar(50);column:customer_phone"`
	CompanyName          string     `gorm:"type:varchar(200);column:company_name"`
	CompanyID            string     `gorm:"type:varchar(20);column:company_id"`
	PostalCode           string     `gorm:"type:varchar(10);column:postal_code"`
	Region               string     `gorm:"type:varchar(50)"`
	RegularPrice         float64    `gorm:"type:numeric(12,2);not null;column:regular_price"`
	TotalPrice           float64    `gorm:"type:numeric(12,2);not null;column:total_price"`
	HourlyRate           *float64   `gorm:"type:numeric(12,2);column:hourly_rate"`
	Currency             string     `gorm:"type:varchar(3);not null;default:'CZK'"`
	StartDate            *time.Time `gorm:"type:date;column:start_date"`
	OriginFormNote       string     `gorm:"type:text;column:origin_form_note"`
	ConfirmationStepNote string     `gorm:"type:text;column:confirmation_step_note"`
	Hash                 string     `gorm:"type:text;not null"`
	DocumentPath         string     `gorm:"type:varchar(500);column:document_path"`
	EmailSentAt          *time.Time `gorm:"column:email_sent_at"`
}

func (Submission) TableName() string { return "submissions" }
