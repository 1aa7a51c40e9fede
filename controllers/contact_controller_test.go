package controller

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pressfix/models"
	"pressfix/utils"
)

const (
	recipientA = "us-leads@pressfix.example.com"
	recipientB = "in-leads@pressfix.example.com"
)

func newContactApp(db *gorm.DB, sender *fakeSender) *fiber.App {
	app := fiber.New()
	var mailer utils.EmailSender
	if sender != nil {
		mailer = sender
	}
	cc := NewContactController(db, mailer, testLogger(), recipientA, recipientB)
	app.Post("/api/contact", cc.SubmitContact)
	return app
}

func validContactBody() map[string]interface{} {
	return map[string]interface{}{
		"region":        "B",
		"source_page":   "/maintenance",
		"name":          "Dana Ferro",
		"company":       "Acme Labels",
		"email":         "dana@acme.example.com",
		"phone":         "+15555550123",
		"printer_brand": "Zebra",
		"printer_model": "ZT411",
		"serial_number": "ZT411-0042",
		"service_focus": "production-line",
		"issue_type":    "print-quality",
		"issue_details": "Faded bands across every label after 20 minutes.",
		"urgency":       "high",
	}
}

func contactRows(t *testing.T, db *gorm.DB) []models.ContactRequest {
	t.Helper()
	var rows []models.ContactRequest
	require.NoError(t, db.Find(&rows).Error)
	return rows
}

func TestSubmitContactMissingRequiredField(t *testing.T) {
	for _, field := range []string{"name", "email", "printer_model", "issue_details", "issue_type"} {
		db := testDB(t)
		sender := &fakeSender{}
		app := newContactApp(db, sender)

		body := validContactBody()
		body[field] = "   "

		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/contact", body))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "field %s", field)

		out := decodeBody(t, resp)
		assert.Equal(t, false, out["ok"])
		assert.Equal(t, "Missing required fields.", out["error"])

		assert.Empty(t, contactRows(t, db), "no insert may happen for field %s", field)
		assert.Empty(t, sender.messages())
	}
}

func TestSubmitContactMalformedBody(t *testing.T) {
	db := testDB(t)
	app := newContactApp(db, nil)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/contact", `{"name": "Dana",`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	out := decodeBody(t, resp)
	assert.Equal(t, "Invalid request.", out["error"])
	assert.Empty(t, contactRows(t, db))
}

func TestSubmitContactMisconfiguredDatabase(t *testing.T) {
	app := newContactApp(nil, nil)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/contact", validContactBody()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	out := decodeBody(t, resp)
	assert.Equal(t, false, out["ok"])
	assert.Equal(t, "Server misconfigured.", out["error"])
}

func TestSubmitContactPersistFailure(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Exec("DROP TABLE contact_requests").Error)
	app := newContactApp(db, nil)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/contact", validContactBody()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	out := decodeBody(t, resp)
	assert.Equal(t, false, out["ok"])
	assert.NotEmpty(t, out["error"])
}

func TestSubmitContactSuccessRegionB(t *testing.T) {
	db := testDB(t)
	sender := &fakeSender{}
	app := newContactApp(db, sender)

	req := jsonRequest(http.MethodPost, "/api/contact", validContactBody())
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req.Header.Set("User-Agent", "site-e2e/1.0")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["ok"])

	rows := contactRows(t, db)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "B", row.Region)
	assert.Equal(t, "Dana Ferro", row.Name)
	require.NotNil(t, row.ClientIP)
	assert.Equal(t, "203.0.113.7", *row.ClientIP)
	require.NotNil(t, row.UserAgent)
	assert.Equal(t, "site-e2e/1.0", *row.UserAgent)

	msgs := sender.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, recipientB, msgs[0].To)
	assert.Equal(t, "dana@acme.example.com", msgs[0].ReplyTo)
	assert.Contains(t, msgs[0].Body, "ZT411")
	assert.Contains(t, msgs[0].Body, "Faded bands")
}

func TestSubmitContactUnrecognizedRegionDefaultsToUnknown(t *testing.T) {
	db := testDB(t)
	sender := &fakeSender{}
	app := newContactApp(db, sender)

	body := validContactBody()
	body["region"] = "atlantis"
	delete(body, "company")
	delete(body, "phone")

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/contact", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	rows := contactRows(t, db)
	require.Len(t, rows, 1)
	assert.Equal(t, "unknown", rows[0].Region)
	assert.Nil(t, rows[0].Company)
	assert.Nil(t, rows[0].Phone)

	// Unrouted regions fall back to the primary recipient.
	msgs := sender.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, recipientA, msgs[0].To)
	assert.Contains(t, msgs[0].Body, "Region: (unknown)")
	assert.Contains(t, msgs[0].Body, "(n/a)")
}

func TestSubmitContactEmailFailureIsNotFatal(t *testing.T) {
	db := testDB(t)
	sender := &fakeSender{err: assert.AnError}
	app := newContactApp(db, sender)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/contact", validContactBody()))
	require.NoError(t, err)

	// The row is durable; the failed notification never surfaces.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["ok"])
	assert.Len(t, contactRows(t, db), 1)
}

func TestSubmitContactWithoutMailerSkipsNotification(t *testing.T) {
	db := testDB(t)
	app := newContactApp(db, nil)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/contact", validContactBody()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, contactRows(t, db), 1)
}
