package email

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ikigai/internal/config"

	"github.com/gomarkdown/markdown"
	"github.com/resend/resend-go/v2"
)

// ResendSender delivers the result report through Resend. Without an API key
// it runs in demo mode: the email is logged and reported as sent, matching
// local development without credentials.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates an email sender from email configuration
func NewResendSender(cfg config.EmailConfig) *ResendSender {
	var client *resend.Client
	if cfg.APIKey != "" {
		client = resend.NewClient(cfg.APIKey)
	} else {
		log.Println("[Email] RESEND_API_KEY not set - running in demo mode, emails will be logged only")
	}
	return &ResendSender{
		client: client,
		from:   cfg.From,
	}
}

// SendResult emails the PDF report to the user
func (s *ResendSender) SendResult(ctx context.Context, to, name string, pdf []byte) error {
	subject := fmt.Sprintf("%s, your Ikigai is ready!", name)
	filename := fmt.Sprintf("ikigai-%s.pdf", slugify(name))

	if s.client == nil {
		log.Printf("[Email] Demo mode: would send %q to %s with attachment %s (%d bytes)",
			subject, to, filename, len(pdf))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    resultBody(name),
		Attachments: []*resend.Attachment{
			{
				Filename: filename,
				Content:  pdf,
			},
		},
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	log.Printf("[Email] Sent result email to=%s id=%s", to, sent.Id)
	return nil
}

// resultBody renders the email body from a markdown template
func resultBody(name string) string {
	md := fmt.Sprintf(`# Your Ikigai is ready, %s!

Your personalized analysis is attached as a PDF. It covers:

- a summary of your profile and strengths
- career suggestions matched to your four pillars
- the gaps standing between you and your Ikigai
- a concrete action plan to start this week

Take your time with it, and revisit it whenever you need direction.
`, name)

	return string(markdown.ToHTML([]byte(md), nil, nil))
}

func slugify(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), "-"))
}
