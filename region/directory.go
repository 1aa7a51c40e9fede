package region

// Availability indicates whether on-site service can currently be
// scheduled in a region.
type Availability string

const (
	AvailabilityLive        Availability = "live"
	AvailabilityBookingSoon Availability = "booking-soon"
	AvailabilityUnknown     Availability = "unknown"
)

// SupportContact is the resolved, region-specific display contact.
// PhoneE164 is nil exactly when Availability is unknown.
type SupportContact struct {
	Label        string       `json:"label"`
	Email        string       `json:"email"`
	PhoneDisplay string       `json:"phone_display"`
	PhoneE164    *string      `json:"phone_e164"`
	Note         string       `json:"note"`
	Availability Availability `json:"availability"`
}

var (
	phoneA = "+18005550142"
	phoneB = "+918005550177"

	contacts = map[Region]SupportContact{
		RegionA: {
			Label:        "United States",
			Email:        "service.us@pressfix.example.com",
			PhoneDisplay: "(800) 555-0142",
			PhoneE164:    &phoneA,
			Note:         "On-site technicians available Mon-Sat, 7am-7pm CT.",
			Availability: AvailabilityLive,
		},
		RegionB: {
			Label:        "India",
			Email:        "service.in@pressfix.example.com",
			PhoneDisplay: "80055 50177",
			PhoneE164:    &phoneB,
			Note:         "Bookings opening soon. Email us and we will confirm a slot.",
			Availability: AvailabilityBookingSoon,
		},
		Unspecified: {
			Label:        "Select your region",
			Email:        "service@pressfix.example.com",
			PhoneDisplay: "",
			PhoneE164:    nil,
			Note:         "Pick a region to see local phone support and availability.",
			Availability: AvailabilityUnknown,
		},
	}
)

// Resolve returns the support contact routed to a region. It is total over
// the enumeration: anything outside it resolves the same as Unspecified.
func Resolve(r Region) SupportContact {
	if c, ok := contacts[r]; ok {
		return c
	}
	return contacts[Unspecified]
}
