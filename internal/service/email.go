package service

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/resend/resend-go/v2"

	"github.com/justinjurolan/blogsite/internal/config"
)

// emailJob is a queued outbound message.
type emailJob struct {
	to      string
	subject string
	html    string
}

// EmailService sends transactional mail through Resend. Messages are
// queued on an in-memory outbox and delivered by a background worker so
// request handlers never block on the mail provider. In development no
// API key is configured and messages are logged instead of sent.
type EmailService struct {
	client *resend.Client
	from   string
	appURL string
	isDev  bool

	outbox chan emailJob
	done   chan struct{}
	wg     sync.WaitGroup
}

func NewEmailService(cfg *config.Config) *EmailService {
	s := &EmailService{
		from:   cfg.EmailFrom,
		appURL: cfg.AppURL,
		isDev:  cfg.IsDevelopment(),
		outbox: make(chan emailJob, 64),
		done:   make(chan struct{}),
	}
	if cfg.ResendAPIKey != "" {
		s.client = resend.NewClient(cfg.ResendAPIKey)
	}
	return s
}

// Start launches the delivery worker. Call Close to drain and stop it.
func (s *EmailService) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case job := <-s.outbox:
				s.deliver(job)
			case <-s.done:
				// Drain anything still queued before exiting.
				for {
					select {
					case job := <-s.outbox:
						s.deliver(job)
					default:
						return
					}
				}
			}
		}
	}()
}

// Close stops the worker after draining the outbox.
func (s *EmailService) Close() {
	close(s.done)
	s.wg.Wait()
}

// QueueResetEmail enqueues a password reset email. The enqueue never
// blocks; if the outbox is full the message is dropped and logged, since
// the user can simply request another reset.
func (s *EmailService) QueueResetEmail(to, token string) {
	link := s.appURL + "/reset/" + token
	job := emailJob{
		to:      to,
		subject: "Reset your password",
		html: fmt.Sprintf(`<p>You requested a password reset.</p>
<p>Click <a href="%s">this link</a> to set a new password. The link expires in one hour.</p>
<p>If you did not request this, you can ignore this email.</p>`, link),
	}

	select {
	case s.outbox <- job:
	default:
		slog.Warn("email outbox full, dropping message", "to", to, "subject", job.subject)
	}
}

func (s *EmailService) deliver(job emailJob) {
	if s.isDev || s.client == nil {
		slog.Info("email (dev mode, not sent)",
			"to", job.to,
			"subject", job.subject,
			"html", job.html,
		)
		return
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{job.to},
		Subject: job.subject,
		Html:    job.html,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		// Delivery failures are logged only; the reset flow has already
		// committed the token and must not depend on the provider.
		slog.Error("failed to send email", "to", job.to, "subject", job.subject, "error", err)
		return
	}

	slog.Info("email sent", "to", job.to, "subject", job.subject, "id", sent.Id)
}
