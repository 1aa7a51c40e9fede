package controller

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"pressfix/utils"
)

// ServiceRequestController handles the general request-service form. No row
// is written; the lead is delivered as a notification email with Reply-To
// pointing back at the submitter.
type ServiceRequestController struct {
	Mailer    utils.EmailSender
	SMTP      utils.SMTPConfig
	Recipient string
	Logger    *log.Logger
}

func NewServiceRequestController(mailer utils.EmailSender, smtp utils.SMTPConfig, recipient string, logger *log.Logger) *ServiceRequestController {
	return &ServiceRequestController{
		Mailer:    mailer,
		SMTP:      smtp,
		Recipient: recipient,
		Logger:    logger,
	}
}

type serviceInput struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	ServiceType string `json:"serviceType"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Symptoms    string `json:"symptoms"`
	Location    string `json:"location"`
	Urgency     string `json:"urgency"`
}

func parseServiceRequest(c *fiber.Ctx) (*serviceInput, *utils.APIError) {
	var input serviceInput
	if err := c.BodyParser(&input); err != nil {
		return nil, utils.BadRequest("Invalid request.")
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Company = strings.TrimSpace(input.Company)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Email = strings.TrimSpace(input.Email)
	input.ServiceType = strings.TrimSpace(input.ServiceType)
	input.Brand = strings.TrimSpace(input.Brand)
	input.Model = strings.TrimSpace(input.Model)
	input.Symptoms = strings.TrimSpace(input.Symptoms)
	input.Location = strings.TrimSpace(input.Location)
	input.Urgency = strings.TrimSpace(input.Urgency)

	if input.Name == "" || input.Email == "" || input.Symptoms == "" || input.ServiceType == "" {
		return nil, utils.ValidationFailed("Missing required fields.")
	}
	if !utils.ValidEmail(input.Email) {
		return nil, utils.ValidationFailed("Invalid email address.")
	}
	return &input, nil
}

// SubmitServiceRequest handles POST /api/request-service.
func (sc *ServiceRequestController) SubmitServiceRequest(c *fiber.Ctx) error {
	input, apiErr := parseServiceRequest(c)
	if apiErr != nil {
		return utils.WriteFormError(c, apiErr)
	}

	// Deployment misconfiguration is checked before any I/O.
	if sc.Mailer == nil || !sc.SMTP.Configured() {
		missing := sc.SMTP.MissingCredential()
		if missing == "" {
			missing = "SMTP_HOST"
		}
		return utils.WriteFormError(c, utils.Misconfigured("Missing "+missing))
	}
	if sc.Recipient == "" {
		return utils.WriteFormError(c, utils.Misconfigured("Missing SERVICE_REQUEST_TO"))
	}

	msg := utils.EmailMessage{
		To:      sc.Recipient,
		ReplyTo: input.Email,
		Subject: "New service request from " + input.Name,
		Body:    serviceSummary(input),
	}
	if err := sc.Mailer.Send(msg); err != nil {
		return utils.WriteFormError(c, utils.DependencyFailed(err.Error(), err))
	}

	sc.Logger.Printf("Service request from %s delivered to %s", input.Email, sc.Recipient)
	return utils.OK(c)
}

func serviceSummary(in *serviceInput) string {
	var b strings.Builder
	b.WriteString("New service request\n\n")
	fmt.Fprintf(&b, "Name: %s\n", in.Name)
	fmt.Fprintf(&b, "Company: %s\n", utils.OrPlaceholder(in.Company, "(n/a)"))
	fmt.Fprintf(&b, "Email: %s\n", in.Email)
	fmt.Fprintf(&b, "Phone: %s\n", utils.OrPlaceholder(in.Phone, "(n/a)"))
	fmt.Fprintf(&b, "Service type: %s\n", in.ServiceType)
	fmt.Fprintf(&b, "Printer brand: %s\n", utils.OrPlaceholder(in.Brand, "(unknown)"))
	fmt.Fprintf(&b, "Printer model: %s\n", utils.OrPlaceholder(in.Model, "(unknown)"))
	fmt.Fprintf(&b, "Location: %s\n", utils.OrPlaceholder(in.Location, "(n/a)"))
	fmt.Fprintf(&b, "Urgency: %s\n", utils.OrPlaceholder(in.Urgency, "(n/a)"))
	fmt.Fprintf(&b, "\nSymptoms:\n%s\n", in.Symptoms)
	return b.String()
}
