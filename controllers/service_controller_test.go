package controller

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressfix/utils"
)

const serviceRecipient = "dispatch@pressfix.example.com"

var configuredSMTP = utils.SMTPConfig{
	Host:     "smtp.example.com",
	Port:     "587",
	Username: "mailer",
	Password: "secret",
	From:     "noreply@pressfix.example.com",
}

func newServiceApp(sender *fakeSender, smtp utils.SMTPConfig, recipient string) *fiber.App {
	app := fiber.New()
	var mailer utils.EmailSender
	if sender != nil {
		mailer = sender
	}
	sc := NewServiceRequestController(mailer, smtp, recipient, testLogger())
	app.Post("/api/request-service", sc.SubmitServiceRequest)
	return app
}

func validServiceBody() map[string]interface{} {
	return map[string]interface{}{
		"name":        "Priya Nair",
		"company":     "Chennai Print Co",
		"phone":       "+918005550101",
		"email":       "priya@chennaiprint.example.com",
		"serviceType": "preventive-maintenance",
		"brand":       "Honeywell",
		"model":       "PX940",
		"symptoms":    "Ribbon wrinkling and intermittent motor stall.",
		"location":    "Chennai",
		"urgency":     "medium",
	}
}

func TestSubmitServiceRequestMissingRequiredField(t *testing.T) {
	for _, field := range []string{"name", "email", "symptoms", "serviceType"} {
		sender := &fakeSender{}
		app := newServiceApp(sender, configuredSMTP, serviceRecipient)

		body := validServiceBody()
		body[field] = " "

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/request-service", body))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "field %s", field)

		out := decodeBody(t, resp)
		assert.Equal(t, "Missing required fields.", out["error"])
		assert.Empty(t, sender.messages())
	}
}

func TestSubmitServiceRequestInvalidEmail(t *testing.T) {
	sender := &fakeSender{}
	app := newServiceApp(sender, configuredSMTP, serviceRecipient)

	body := validServiceBody()
	body["email"] = "not-an-email"

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/request-service", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	out := decodeBody(t, resp)
	assert.Equal(t, false, out["ok"])
	assert.Equal(t, "Invalid email address.", out["error"])
	assert.Empty(t, sender.messages(), "no email may be sent for invalid input")
}

func TestSubmitServiceRequestMissingCredentials(t *testing.T) {
	app := newServiceApp(nil, utils.SMTPConfig{}, serviceRecipient)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/request-service", validServiceBody()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	out := decodeBody(t, resp)
	assert.Equal(t, "Missing SMTP_HOST", out["error"])
}

func TestSubmitServiceRequestMissingRecipient(t *testing.T) {
	sender := &fakeSender{}
	app := newServiceApp(sender, configuredSMTP, "")

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/request-service", validServiceBody()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Missing SERVICE_REQUEST_TO", decodeBody(t, resp)["error"])
}

func TestSubmitServiceRequestSuccess(t *testing.T) {
	sender := &fakeSender{}
	app := newServiceApp(sender, configuredSMTP, serviceRecipient)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/request-service", validServiceBody()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["ok"])

	msgs := sender.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, serviceRecipient, msgs[0].To)
	assert.Equal(t, "priya@chennaiprint.example.com", msgs[0].ReplyTo)
	assert.Contains(t, msgs[0].Body, "Ribbon wrinkling")
	assert.Contains(t, msgs[0].Body, "preventive-maintenance")
}

func TestSubmitServiceRequestPlaceholdersForOptionalFields(t *testing.T) {
	sender := &fakeSender{}
	app := newServiceApp(sender, configuredSMTP, serviceRecipient)

	body := map[string]interface{}{
		"name":        "Priya Nair",
		"email":       "priya@chennaiprint.example.com",
		"serviceType": "repair",
		"symptoms":    "Does not power on.",
	}

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/request-service", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	msgs := sender.messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Body, "(n/a)")
	assert.Contains(t, msgs[0].Body, "(unknown)")
}

func TestSubmitServiceRequestSendFailure(t *testing.T) {
	sender := &fakeSender{err: assert.AnError}
	app := newServiceApp(sender, configuredSMTP, serviceRecipient)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/request-service", validServiceBody()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	out := decodeBody(t, resp)
	assert.Equal(t, false, out["ok"])
	assert.NotEmpty(t, out["error"])
}
