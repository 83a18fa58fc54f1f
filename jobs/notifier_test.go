package jobs

import (
	"context"
	"strings"
	"testing"

	"github.com/ferrumtrans/ferrumtrans/internal/applications"
)

type fakeEnqueuer struct {
	payloads []SendEmailPayload
}

func (f *fakeEnqueuer) EnqueueSendEmail(_ context.Context, p SendEmailPayload) error {
	f.payloads = append(f.payloads, p)
	return nil
}

type fakeRecipients struct {
	to   []string
	from string
}

func (f *fakeRecipients) NotificationRecipients(context.Context) ([]string, string, error) {
	return f.to, f.from, nil
}

func TestNotifyNewApplication_EnqueuesMail(t *testing.T) {
	enq := &fakeEnqueuer{}
	notifier := NewMailNotifier(enq, &fakeRecipients{
		to:   []string{"sales@ferrumtrans.example"},
		from: "noreply@ferrumtrans.example",
	}, "fallback@ferrumtrans.example")

	app := &applications.Application{
		ID:      42,
		Name:    "Ivan Petrov",
		Phone:   "+79991234567",
		Message: "Need a quote for rail freight.",
	}
	if err := notifier.NotifyNewApplication(context.Background(), app); err != nil {
		t.Fatalf("NotifyNewApplication: %v", err)
	}
	if len(enq.payloads) != 1 {
		t.Fatalf("enqueued = %d payloads, want 1", len(enq.payloads))
	}
	p := enq.payloads[0]
	if p.From != "noreply@ferrumtrans.example" || len(p.To) != 1 {
		t.Fatalf("payload addressing = %q -> %v", p.From, p.To)
	}
	if !strings.Contains(p.Subject, "#42") || !strings.Contains(p.Subject, "Ivan Petrov") {
		t.Fatalf("subject = %q, want inquiry id and name", p.Subject)
	}
	if !strings.Contains(p.Body, "+79991234567") || !strings.Contains(p.Body, "rail freight") {
		t.Fatalf("body = %q, want contact and message", p.Body)
	}
}

func TestNotifyNewApplication_NoRecipientsIsNoop(t *testing.T) {
	enq := &fakeEnqueuer{}
	notifier := NewMailNotifier(enq, &fakeRecipients{}, "fallback@ferrumtrans.example")

	err := notifier.NotifyNewApplication(context.Background(), &applications.Application{ID: 1, Name: "x"})
	if err != nil {
		t.Fatalf("NotifyNewApplication: %v", err)
	}
	if len(enq.payloads) != 0 {
		t.Fatal("nothing should be enqueued without recipients")
	}
}

func TestNotifyNewApplication_FallbackSender(t *testing.T) {
	enq := &fakeEnqueuer{}
	notifier := NewMailNotifier(enq, &fakeRecipients{
		to: []string{"sales@ferrumtrans.example"},
	}, "fallback@ferrumtrans.example")

	err := notifier.NotifyNewApplication(context.Background(), &applications.Application{ID: 2, Name: "x", Message: "y"})
	if err != nil {
		t.Fatalf("NotifyNewApplication: %v", err)
	}
	if len(enq.payloads) != 1 || enq.payloads[0].From != "fallback@ferrumtrans.example" {
		t.Fatalf("payloads = %+v, want fallback sender", enq.payloads)
	}
}
