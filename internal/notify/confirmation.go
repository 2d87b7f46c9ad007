package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/wolfman30/webmcpsetup/internal/leads"
)

// ConfirmationNotifier emails the submitter a receipt for their lead.
type ConfirmationNotifier struct {
	sender      EmailSender
	siteName    string
	calendlyURL string
}

func NewConfirmationNotifier(sender EmailSender, siteName, calendlyURL string) *ConfirmationNotifier {
	if sender == nil {
		return nil
	}
	if siteName == "" {
		siteName = defaultFromName
	}
	return &ConfirmationNotifier{sender: sender, siteName: siteName, calendlyURL: calendlyURL}
}

func (c *ConfirmationNotifier) Name() string { return "confirmation_email" }

func (c *ConfirmationNotifier) Notify(ctx context.Context, rec *leads.Record) error {
	return c.sender.Send(ctx, c.message(rec))
}

func (c *ConfirmationNotifier) message(rec *leads.Record) EmailMessage {
	subject := fmt.Sprintf("We received your WebMCP setup request (%s)", rec.LeadID)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", rec.FullName)
	fmt.Fprintf(&b, "Thanks for your request for %s. Your reference is %s.\n\n", rec.WebsiteURL, rec.LeadID)
	b.WriteString("What happens next:\n")
	b.WriteString("- We will contact you within 24 hours to schedule a discovery call\n")
	b.WriteString("- You will receive a detailed proposal with timeline and pricing\n")
	b.WriteString("- Implementation begins within one week of approval\n")
	if c.calendlyURL != "" {
		fmt.Fprintf(&b, "\nSchedule a call now: %s\n", c.calendlyURL)
	}
	fmt.Fprintf(&b, "\nThe %s team", c.siteName)

	htmlBody := fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px;">
<h2>Submission received</h2>
<p>Hi %s, thanks for your request for <strong>%s</strong>.</p>
<p><strong>Lead ID:</strong> %s</p>
<ul>
  <li>We will contact you within 24 hours to schedule a discovery call</li>
  <li>You will receive a detailed proposal with timeline and pricing</li>
  <li>Implementation begins within one week of approval</li>
</ul>
<p style="color: #6b7280; font-size: 12px;">The %s team</p>
</div>`,
		html.EscapeString(rec.FullName), html.EscapeString(rec.WebsiteURL),
		html.EscapeString(rec.LeadID), html.EscapeString(c.siteName))

	return EmailMessage{
		To:      rec.Email,
		ToName:  rec.FullName,
		Subject: subject,
		Body:    b.String(),
		HTML:    htmlBody,
	}
}
