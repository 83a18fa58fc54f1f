package jobs

import (
	"context"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/ferrumtrans/ferrumtrans/internal/applications"
)

// RecipientSource resolves the notification recipient list and sender
// address at enqueue time. Implemented by the settings module.
type RecipientSource interface {
	NotificationRecipients(ctx context.Context) ([]string, string, error)
}

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// EnqueueSendEmail queues one outbound message.
func (c *Client) EnqueueSendEmail(ctx context.Context, payload SendEmailPayload) error {
	task, err := NewSendEmailTask(payload)
	if err != nil {
		return err
	}
	if _, err := c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault)); err != nil {
		return fmt.Errorf("jobs: enqueue mail: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Enqueuer is the slice of Client the notifier needs.
type Enqueuer interface {
	EnqueueSendEmail(ctx context.Context, payload SendEmailPayload) error
}

// MailNotifier queues an email for each new inquiry. It satisfies
// applications.Notifier; enqueue failures propagate to the caller, the
// effect runner makes them best-effort.
type MailNotifier struct {
	enqueuer    Enqueuer
	recipients  RecipientSource
	defaultFrom string
}

func NewMailNotifier(enqueuer Enqueuer, recipients RecipientSource, defaultFrom string) *MailNotifier {
	return &MailNotifier{enqueuer: enqueuer, recipients: recipients, defaultFrom: defaultFrom}
}

func (n *MailNotifier) NotifyNewApplication(ctx context.Context, app *applications.Application) error {
	to, from, err := n.recipients.NotificationRecipients(ctx)
	if err != nil {
		return fmt.Errorf("jobs: resolve recipients: %w", err)
	}
	if len(to) == 0 {
		return nil
	}
	if from == "" {
		from = n.defaultFrom
	}
	return n.enqueuer.EnqueueSendEmail(ctx, SendEmailPayload{
		To:      to,
		From:    from,
		Subject: fmt.Sprintf("New inquiry #%d from %s", app.ID, app.Name),
		Body:    renderInquiry(app),
	})
}

func renderInquiry(app *applications.Application) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Inquiry #%d\n", app.ID)
	fmt.Fprintf(&b, "Name: %s\n", app.Name)
	if app.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", app.Phone)
	}
	if app.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", app.Email)
	}
	fmt.Fprintf(&b, "\n%s\n", app.Message)
	return b.String()
}
