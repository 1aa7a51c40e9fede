package form

// Wire payloads for the two submission endpoints. Optional fields marshal
// as null when blank so the server stores NULL rather than "".

type contactPayload struct {
	Region       string  `json:"region,omitempty"`
	SourcePage   string  `json:"source_page,omitempty"`
	Name         string  `json:"name"`
	Company      *string `json:"company"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone"`
	PrinterBrand string  `json:"printer_brand"`
	PrinterModel string  `json:"printer_model"`
	SerialNumber *string `json:"serial_number"`
	ServiceFocus string  `json:"service_focus"`
	IssueType    string  `json:"issue_type"`
	IssueDetails string  `json:"issue_details"`
	Urgency      string  `json:"urgency"`
}

type servicePayload struct {
	Name        string `json:"name"`
	Company     string `json:"company,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email"`
	ServiceType string `json:"serviceType"`
	Brand       string `json:"brand,omitempty"`
	Model       string `json:"model,omitempty"`
	Symptoms    string `json:"symptoms"`
	Location    string `json:"location,omitempty"`
	Urgency     string `json:"urgency,omitempty"`
}

func encodeContact(d Draft) interface{} {
	return contactPayload{
		Region:       d.Region,
		SourcePage:   d.SourcePage,
		Name:         d.ContactName,
		Company:      nilIfEmpty(d.Company),
		Email:        d.ContactEmail,
		Phone:        nilIfEmpty(d.Phone),
		PrinterBrand: d.Brand,
		PrinterModel: d.Model,
		SerialNumber: nilIfEmpty(d.SerialNumber),
		ServiceFocus: d.ServiceFocus,
		IssueType:    d.Category,
		IssueDetails: d.Symptoms,
		Urgency:      d.Urgency,
	}
}

func encodeServiceRequest(d Draft) interface{} {
	return servicePayload{
		Name:        d.ContactName,
		Company:     d.Company,
		Phone:       d.Phone,
		Email:       d.ContactEmail,
		ServiceType: d.Category,
		Brand:       d.Brand,
		Model:       d.Model,
		Symptoms:    d.Symptoms,
		Location:    d.Location,
		Urgency:     d.Urgency,
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
