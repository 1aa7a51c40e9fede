// Package form implements the lead submission form used by the site's
// embedded clients and end-to-end checks: a draft with derived
// submittability, and a single bounded in-flight request per attempt.
package form

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/badoux/checkmail"
)

// State is the lifecycle of one submission attempt.
type State string

const (
	StateIdle    State = "idle"
	StateSending State = "sending"
	StateSent    State = "sent"
	StateError   State = "error"
)

// Result is the outcome of the most recent submission attempt.
type Result struct {
	State   State
	Message string
}

const (
	defaultTimeout = 12 * time.Second

	timeoutMessage = "The request timed out. Please call or text us instead — we answer fast."
	genericMessage = "Something went wrong sending your request. Please try again, or reach us directly by email or phone."
)

// Draft holds the editable field set. The two form variants share one
// draft; each variant serializes only the fields its endpoint accepts.
type Draft struct {
	ContactName  string
	Company      string
	ContactEmail string
	Phone        string

	Brand        string
	Model        string
	SerialNumber string

	Category string // serviceType on the service form, issue_type on the support form
	Symptoms string // symptoms / issue_details

	Location string
	Urgency  string

	ServiceFocus string

	// Routing context, not user-editable.
	Region     string
	SourcePage string
}

// Defaults are the display-only contact values shown next to the form,
// sourced from the current directory resolution. They never pre-fill
// required fields.
type Defaults struct {
	Email string
	Phone string
}

type encoder func(Draft) interface{}

// Form collects a lead and manages one in-flight request with a bounded
// wait. At most one submission is in flight at a time.
type Form struct {
	mu       sync.Mutex
	endpoint string
	client   *http.Client
	timeout  time.Duration
	defaults Defaults
	encode   encoder

	draft  Draft
	result Result
}

// Option configures a Form.
type Option func(*Form)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Form) { f.client = client }
}

// WithTimeout overrides the submission bound.
func WithTimeout(d time.Duration) Option {
	return func(f *Form) { f.timeout = d }
}

func newForm(endpoint string, defaults Defaults, enc encoder, opts ...Option) *Form {
	f := &Form{
		endpoint: endpoint,
		client:   &http.Client{},
		timeout:  defaultTimeout,
		defaults: defaults,
		encode:   enc,
		result:   Result{State: StateIdle},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewContactForm builds the detailed support-request form posting to the
// contact endpoint.
func NewContactForm(endpoint string, defaults Defaults, opts ...Option) *Form {
	return newForm(endpoint, defaults, encodeContact, opts...)
}

// NewServiceRequestForm builds the general request-service form.
func NewServiceRequestForm(endpoint string, defaults Defaults, opts ...Option) *Form {
	return newForm(endpoint, defaults, encodeServiceRequest, opts...)
}

// Defaults returns the display contact values the form was initialized with.
func (f *Form) Defaults() Defaults {
	return f.defaults
}

// Draft returns a copy of the current field values.
func (f *Form) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Result returns the outcome of the latest attempt.
func (f *Form) Result() Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Update mutates the draft. It is a no-op while a submission is in flight.
// Editing after a successful send returns the form to idle, so the success
// banner clears as soon as the user starts a new request.
func (f *Form) Update(mutate func(*Draft)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.result.State == StateSending {
		return
	}
	mutate(&f.draft)
	if f.result.State == StateSent {
		f.result = Result{State: StateIdle}
	}
}

// CanSubmit reports whether all required fields hold non-blank values, the
// email has a plausible shape, and no submission is in flight.
func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canSubmitLocked()
}

func (f *Form) canSubmitLocked() bool {
	if f.result.State == StateSending {
		return false
	}
	d := f.draft
	if strings.TrimSpace(d.ContactName) == "" ||
		strings.TrimSpace(d.Category) == "" ||
		strings.TrimSpace(d.Symptoms) == "" {
		return false
	}
	return emailShape(d.ContactEmail)
}

// Submit issues exactly one POST for the current draft. Guarded no-op when
// CanSubmit is false. On success the editable fields reset; on any failure
// they are preserved so the user can correct and resubmit.
func (f *Form) Submit(ctx context.Context) Result {
	f.mu.Lock()
	if !f.canSubmitLocked() {
		r := f.result
		f.mu.Unlock()
		return r
	}
	f.draft.trim()
	payload := f.encode(f.draft)
	f.result = Result{State: StateSending}
	f.mu.Unlock()

	outcome := f.post(ctx, payload)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.result = outcome
	if outcome.State == StateSent {
		region, source := f.draft.Region, f.draft.SourcePage
		f.draft = Draft{Region: region, SourcePage: source}
	}
	return f.result
}

type submissionReply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (f *Form) post(ctx context.Context, payload interface{}) Result {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{State: StateError, Message: genericMessage}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{State: StateError, Message: genericMessage}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Result{State: StateError, Message: timeoutMessage}
		}
		return Result{State: StateError, Message: genericMessage}
	}
	defer resp.Body.Close()

	var reply submissionReply
	decodeErr := json.NewDecoder(resp.Body).Decode(&reply)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && decodeErr == nil && reply.OK {
		return Result{State: StateSent}
	}

	msg := genericMessage
	if decodeErr == nil && reply.Error != "" {
		msg = reply.Error
	}
	return Result{State: StateError, Message: msg}
}

func (d *Draft) trim() {
	d.ContactName = strings.TrimSpace(d.ContactName)
	d.Company = strings.TrimSpace(d.Company)
	d.ContactEmail = strings.TrimSpace(d.ContactEmail)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Brand = strings.TrimSpace(d.Brand)
	d.Model = strings.TrimSpace(d.Model)
	d.SerialNumber = strings.TrimSpace(d.SerialNumber)
	d.Category = strings.TrimSpace(d.Category)
	d.Symptoms = strings.TrimSpace(d.Symptoms)
	d.Location = strings.TrimSpace(d.Location)
	d.Urgency = strings.TrimSpace(d.Urgency)
	d.ServiceFocus = strings.TrimSpace(d.ServiceFocus)
}

// emailShape is the client-side check only; the server re-validates.
func emailShape(s string) bool {
	return checkmail.ValidateFormat(strings.TrimSpace(s)) == nil
}
