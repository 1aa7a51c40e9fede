package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pressfix/config"
	"pressfix/utils"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.MigrateDB(db))
	return db
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// fakeSender records outbound messages; a non-nil err makes every send fail.
type fakeSender struct {
	mu   sync.Mutex
	sent []utils.EmailMessage
	err  error
}

func (f *fakeSender) Send(msg utils.EmailMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) messages() []utils.EmailMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]utils.EmailMessage(nil), f.sent...)
}

func jsonRequest(method, target string, payload interface{}) *http.Request {
	var body io.Reader
	if raw, ok := payload.(string); ok {
		body = bytes.NewBufferString(raw)
	} else if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
