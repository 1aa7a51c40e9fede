package worker

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"pressfix/models"
	"pressfix/region"
	"pressfix/utils"
)

// DigestWorker mails each region's recipient a daily summary of the
// contact requests that arrived since the previous run. It is a courtesy
// recap, not a delivery guarantee; failures are logged and the window
// advances on success only.
type DigestWorker struct {
	DB         *gorm.DB
	Mailer     utils.EmailSender
	Logger     *log.Logger
	RecipientA string
	RecipientB string

	interval time.Duration
	lastRun  time.Time
}

func NewDigestWorker(db *gorm.DB, mailer utils.EmailSender, logger *log.Logger, recipientA, recipientB string) *DigestWorker {
	return &DigestWorker{
		DB:         db,
		Mailer:     mailer,
		Logger:     logger,
		RecipientA: recipientA,
		RecipientB: recipientB,
		interval:   24 * time.Hour,
		lastRun:    time.Now(),
	}
}

func (dw *DigestWorker) Start(ctx context.Context) {
	// Initial delay to let the server start up
	time.Sleep(10 * time.Second)

	dw.Logger.Println("Digest worker started")

	ticker := time.NewTicker(dw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			dw.Logger.Println("Digest worker shutting down...")
			return
		case <-ticker.C:
			dw.runOnce()
		}
	}
}

func (dw *DigestWorker) runOnce() {
	if dw.Mailer == nil {
		return
	}

	since := dw.lastRun
	now := time.Now()

	var requests []models.ContactRequest
	if err := dw.DB.Where("created_at > ?", since).Order("created_at asc").Find(&requests).Error; err != nil {
		dw.Logger.Printf("Error fetching contact requests for digest: %v", err)
		return
	}
	if len(requests) == 0 {
		dw.lastRun = now
		return
	}

	byRegion := map[string][]models.ContactRequest{}
	for _, r := range requests {
		byRegion[r.Region] = append(byRegion[r.Region], r)
	}

	ok := true
	for regionKey, rows := range byRegion {
		recipient := dw.RecipientA
		if region.Region(regionKey) == region.RegionB {
			recipient = dw.RecipientB
		}
		if recipient == "" {
			continue
		}

		msg := utils.EmailMessage{
			To:      recipient,
			Subject: fmt.Sprintf("Daily lead digest: %d new request(s)", len(rows)),
			Body:    digestBody(regionKey, rows, since),
		}
		if err := dw.Mailer.Send(msg); err != nil {
			dw.Logger.Printf("Error sending digest for region %s: %v", regionKey, err)
			ok = false
		}
	}

	if ok {
		dw.lastRun = now
	}
}

func digestBody(regionKey string, rows []models.ContactRequest, since time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Contact requests for region %s since %s\n\n",
		regionKey, since.Format(time.RFC1123))
	for _, r := range rows {
		fmt.Fprintf(&b, "#%d  %s  %s <%s>\n", r.ID, r.CreatedAt.Format("Jan 2 15:04"), r.Name, r.Email)
		fmt.Fprintf(&b, "    %s / %s - %s\n", r.PrinterBrand, r.PrinterModel, r.IssueType)
	}
	return b.String()
}
