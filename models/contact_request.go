package models

import (
	"gorm.io/gorm"
)

// ContactRequest is one submitted lead from the detailed support form.
// Optional fields are pointers so absent values land as NULL rather than "".
type ContactRequest struct {
	gorm.Model

	Region     string `gorm:"not null;default:'unknown';index" json:"region"`
	SourcePage string `json:"source_page"`

	Name    string  `gorm:"not null" json:"name"`
	Company *string `json:"company"`
	Email   string  `gorm:"not null;index" json:"email"`
	Phone   *string `json:"phone"`

	PrinterBrand string  `json:"printer_brand"`
	PrinterModel string  `gorm:"not null" json:"printer_model"`
	SerialNumber *string `json:"serial_number"`

	ServiceFocus string `json:"service_focus"`
	IssueType    string `gorm:"not null" json:"issue_type"`
	IssueDetails string `gorm:"type:text;not null" json:"issue_details"`
	Urgency      string `json:"urgency"`

	// Routing/audit metadata derived server-side, never trusted from the client.
	ClientIP  *string `json:"client_ip"`
	UserAgent *string `json:"user_agent"`
}

func (ContactRequest) TableName() string {
	return "contact_requests"
}
