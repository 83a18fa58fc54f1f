package settings

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ferrumtrans/ferrumtrans/internal/access"
	"github.com/ferrumtrans/ferrumtrans/internal/validate"
)

type fakeRepo struct {
	rec *SiteSettings
}

func (r *fakeRepo) Create(_ context.Context, s *SiteSettings) error {
	s.ID = 1
	cp := *s
	r.rec = &cp
	return nil
}

func (r *fakeRepo) Update(_ context.Context, s *SiteSettings) error {
	if r.rec == nil || r.rec.ID != s.ID {
		return ErrNotFound
	}
	cp := *s
	r.rec = &cp
	return nil
}

func (r *fakeRepo) Get(_ context.Context) (*SiteSettings, error) {
	if r.rec == nil {
		return nil, ErrNotFound
	}
	cp := *r.rec
	return &cp, nil
}

func (r *fakeRepo) Exists(_ context.Context) (bool, error) {
	return r.rec != nil, nil
}

func seeded() (*Service, *fakeRepo) {
	repo := &fakeRepo{rec: &SiteSettings{
		ID:                 1,
		SiteName:           "FerrumTrans",
		CompanyFullName:    "FerrumTrans Logistics LLC",
		NotificationEmails: "sales@ferrumtrans.example, ops@ferrumtrans.example",
		DefaultEmailFrom:   "noreply@ferrumtrans.example",
	}}
	return NewService(repo), repo
}

func strptr(s string) *string { return &s }

func TestBootstrap_SecondRecordRefused(t *testing.T) {
	svc := NewService(&fakeRepo{})

	if _, err := svc.Bootstrap(context.Background(), BootstrapRequest{SiteName: "FerrumTrans"}); err != nil {
		t.Fatalf("first bootstrap: %v", err)
	}
	_, err := svc.Bootstrap(context.Background(), BootstrapRequest{SiteName: "Other"})
	if !errors.Is(err, ErrSingleton) {
		t.Fatalf("second bootstrap = %v, want ErrSingleton", err)
	}
}

func TestNotificationRecipients_Parsing(t *testing.T) {
	s := SiteSettings{NotificationEmails: " a@x.example ,, b@x.example ; ;c@x.example,"}
	got := s.NotificationRecipients()
	want := []string{"a@x.example", "b@x.example", "c@x.example"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("recipients = %v, want %v", got, want)
	}

	empty := SiteSettings{}
	if got := empty.NotificationRecipients(); len(got) != 0 {
		t.Fatalf("recipients of empty list = %v, want none", got)
	}
}

func TestUpdate_ContentManagerBrandingOnly(t *testing.T) {
	svc, repo := seeded()

	rec, err := svc.Update(context.Background(), access.RoleContentManager, UpdateRequest{
		SiteName:        strptr("FerrumTrans Cargo"),
		CompanyFullName: strptr("FerrumTrans Cargo LLC"),
	})
	if err != nil {
		t.Fatalf("branding update: %v", err)
	}
	if rec.SiteName != "FerrumTrans Cargo" {
		t.Fatalf("site name = %q, want updated value", rec.SiteName)
	}
	if repo.rec.CompanyFullName != "FerrumTrans Cargo LLC" {
		t.Fatal("branding change should be persisted")
	}
}

func TestUpdate_ContentManagerIntegrationKeysRejected(t *testing.T) {
	svc, repo := seeded()

	_, err := svc.Update(context.Background(), access.RoleContentManager, UpdateRequest{
		SiteName:         strptr("New Name"),
		YandexMetricaID:  strptr("12345678"),
		RecaptchaSiteKey: strptr("key"),
	})
	var fe validate.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want field errors", err)
	}
	if !fe.Has("yandex_metrica_id") || !fe.Has("recaptcha_site_key") {
		t.Fatalf("field errors = %v, want both restricted fields flagged", fe)
	}
	if repo.rec.SiteName != "FerrumTrans" {
		t.Fatal("a rejected request must not apply its allowed fields either")
	}
}

func TestUpdate_AdminChangesIntegrationKeys(t *testing.T) {
	svc, repo := seeded()

	_, err := svc.Update(context.Background(), access.RoleAdmin, UpdateRequest{
		NotificationEmails: strptr("crm@ferrumtrans.example"),
		YandexMetricaID:    strptr("87654321"),
	})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if repo.rec.YandexMetricaID != "87654321" {
		t.Fatal("integration key change should be persisted for admin")
	}
	if repo.rec.NotificationEmails != "crm@ferrumtrans.example" {
		t.Fatal("recipient list change should be persisted for admin")
	}
}

func TestUpdate_RejectsBadRecipientAddress(t *testing.T) {
	svc, _ := seeded()

	_, err := svc.Update(context.Background(), access.RoleAdmin, UpdateRequest{
		NotificationEmails: strptr("good@x.example, not-an-address"),
	})
	var fe validate.FieldErrors
	if !errors.As(err, &fe) || !fe.Has("notification_emails") {
		t.Fatalf("err = %v, want field error on notification_emails", err)
	}
}

func TestNotificationRecipients_MissingRecordIsEmptyNotError(t *testing.T) {
	svc := NewService(&fakeRepo{})

	recipients, from, err := svc.NotificationRecipients(context.Background())
	if err != nil {
		t.Fatalf("NotificationRecipients: %v", err)
	}
	if len(recipients) != 0 || from != "" {
		t.Fatalf("got %v, %q; want empty before bootstrap", recipients, from)
	}
}
