package controller

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"pressfix/models"
	"pressfix/region"
	"pressfix/utils"
)

// ContactController handles the detailed support-request form: one row in
// contact_requests per lead, plus a best-effort notification email routed
// by region.
type ContactController struct {
	DB         *gorm.DB
	Mailer     utils.EmailSender // nil when SMTP is not configured
	Logger     *log.Logger
	RecipientA string
	RecipientB string
}

func NewContactController(db *gorm.DB, mailer utils.EmailSender, logger *log.Logger, recipientA, recipientB string) *ContactController {
	return &ContactController{
		DB:         db,
		Mailer:     mailer,
		Logger:     logger,
		RecipientA: recipientA,
		RecipientB: recipientB,
	}
}

type contactInput struct {
	Region       string `json:"region"`
	SourcePage   string `json:"source_page"`
	Name         string `json:"name"`
	Company      string `json:"company"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PrinterBrand string `json:"printer_brand"`
	PrinterModel string `json:"printer_model"`
	SerialNumber string `json:"serial_number"`
	ServiceFocus string `json:"service_focus"`
	IssueType    string `json:"issue_type"`
	IssueDetails string `json:"issue_details"`
	Urgency      string `json:"urgency"`
}

// parseContact validates the wire payload independently of anything the
// client claims to have checked.
func parseContact(c *fiber.Ctx) (*contactInput, *utils.APIError) {
	var input contactInput
	if err := c.BodyParser(&input); err != nil {
		return nil, utils.BadRequest("Invalid request.")
	}

	input.Region = strings.TrimSpace(input.Region)
	input.SourcePage = strings.TrimSpace(input.SourcePage)
	input.Name = strings.TrimSpace(input.Name)
	input.Company = strings.TrimSpace(input.Company)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.PrinterBrand = strings.TrimSpace(input.PrinterBrand)
	input.PrinterModel = strings.TrimSpace(input.PrinterModel)
	input.SerialNumber = strings.TrimSpace(input.SerialNumber)
	input.ServiceFocus = strings.TrimSpace(input.ServiceFocus)
	input.IssueType = strings.TrimSpace(input.IssueType)
	input.IssueDetails = strings.TrimSpace(input.IssueDetails)
	input.Urgency = strings.TrimSpace(input.Urgency)

	if input.Name == "" || input.Email == "" || input.PrinterModel == "" ||
		input.IssueDetails == "" || input.IssueType == "" {
		return nil, utils.ValidationFailed("Missing required fields.")
	}
	return &input, nil
}

// SubmitContact handles POST /api/contact.
func (cc *ContactController) SubmitContact(c *fiber.Ctx) error {
	input, apiErr := parseContact(c)
	if apiErr != nil {
		return utils.WriteFormError(c, apiErr)
	}

	if cc.DB == nil {
		return utils.WriteFormError(c, utils.Misconfigured("Server misconfigured."))
	}

	reg := region.Parse(input.Region)

	row := models.ContactRequest{
		Region:       reg.String(),
		SourcePage:   input.SourcePage,
		Name:         input.Name,
		Company:      utils.TrimPtr(input.Company),
		Email:        input.Email,
		Phone:        utils.TrimPtr(input.Phone),
		PrinterBrand: input.PrinterBrand,
		PrinterModel: input.PrinterModel,
		SerialNumber: utils.TrimPtr(input.SerialNumber),
		ServiceFocus: input.ServiceFocus,
		IssueType:    input.IssueType,
		IssueDetails: input.IssueDetails,
		Urgency:      input.Urgency,
		ClientIP:     utils.ClientIP(c),
		UserAgent:    utils.UserAgent(c),
	}

	if err := cc.DB.Create(&row).Error; err != nil {
		return utils.WriteFormError(c, utils.DependencyFailed(err.Error(), err))
	}

	// The row is durably recorded at this point; a failed notification is
	// logged and reported but never turns the request into a failure, so a
	// user is never nudged into submitting a duplicate.
	cc.notify(reg, input, row.ID)

	return utils.OK(c)
}

func (cc *ContactController) notify(reg region.Region, input *contactInput, rowID uint) {
	if cc.Mailer == nil {
		return
	}
	recipient := cc.RecipientA
	if reg == region.RegionB {
		recipient = cc.RecipientB
	}
	if recipient == "" {
		return
	}

	msg := utils.EmailMessage{
		To:      recipient,
		ReplyTo: input.Email,
		Subject: fmt.Sprintf("New support request #%d from %s", rowID, input.Name),
		Body:    contactSummary(reg, input),
	}
	if err := cc.Mailer.Send(msg); err != nil {
		cc.Logger.Printf("Notification email for request %d failed: %v", rowID, err)
		logrus.WithError(err).WithField("contact_request_id", rowID).
			Error("contact notification email failed")
		utils.CaptureError(err)
	}
}

func contactSummary(reg region.Region, in *contactInput) string {
	regionLabel := reg.String()
	if reg == region.Unspecified {
		regionLabel = "(unknown)"
	}

	var b strings.Builder
	b.WriteString("New support request\n\n")
	fmt.Fprintf(&b, "Region: %s\n", regionLabel)
	fmt.Fprintf(&b, "Source page: %s\n", utils.OrPlaceholder(in.SourcePage, "(n/a)"))
	fmt.Fprintf(&b, "Name: %s\n", in.Name)
	fmt.Fprintf(&b, "Company: %s\n", utils.OrPlaceholder(in.Company, "(n/a)"))
	fmt.Fprintf(&b, "Email: %s\n", in.Email)
	fmt.Fprintf(&b, "Phone: %s\n", utils.OrPlaceholder(in.Phone, "(n/a)"))
	fmt.Fprintf(&b, "Printer brand: %s\n", utils.OrPlaceholder(in.PrinterBrand, "(unknown)"))
	fmt.Fprintf(&b, "Printer model: %s\n", in.PrinterModel)
	fmt.Fprintf(&b, "Serial number: %s\n", utils.OrPlaceholder(in.SerialNumber, "(n/a)"))
	fmt.Fprintf(&b, "Service focus: %s\n", utils.OrPlaceholder(in.ServiceFocus, "(n/a)"))
	fmt.Fprintf(&b, "Issue type: %s\n", in.IssueType)
	fmt.Fprintf(&b, "Urgency: %s\n", utils.OrPlaceholder(in.Urgency, "(n/a)"))
	fmt.Fprintf(&b, "\nIssue details:\n%s\n", in.IssueDetails)
	return b.String()
}
