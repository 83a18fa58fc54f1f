package contacts

import (
	"context"
	"errors"
	"testing"

	"github.com/ferrumtrans/ferrumtrans/internal/validate"
)

type fakeRepo struct {
	phones map[int64]*Phone
	social map[int64]*SocialMedia
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{phones: map[int64]*Phone{}, social: map[int64]*SocialMedia{}, nextID: 1}
}

func (f *fakeRepo) ListPhones(ctx context.Context, activeOnly bool) ([]Phone, error) {
	var out []Phone
	for _, p := range f.phones {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeRepo) GetPhone(ctx context.Context, id int64) (*Phone, error) {
	p, ok := f.phones[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) CreatePhone(ctx context.Context, p Phone) (int64, error) {
	p.ID = f.nextID
	f.nextID++
	f.phones[p.ID] = &p
	return p.ID, nil
}

func (f *fakeRepo) UpdatePhone(ctx context.Context, p Phone) error {
	if _, ok := f.phones[p.ID]; !ok {
		return ErrNotFound
	}
	cp := p
	f.phones[p.ID] = &cp
	return nil
}

func (f *fakeRepo) DeletePhone(ctx context.Context, id int64) error {
	delete(f.phones, id)
	return nil
}

func (f *fakeRepo) ListEmails(ctx context.Context, activeOnly bool) ([]Email, error) { return nil, nil }
func (f *fakeRepo) GetEmail(ctx context.Context, id int64) (*Email, error)           { return nil, ErrNotFound }
func (f *fakeRepo) CreateEmail(ctx context.Context, e Email) (int64, error)          { return 0, nil }
func (f *fakeRepo) UpdateEmail(ctx context.Context, e Email) error                   { return nil }
func (f *fakeRepo) DeleteEmail(ctx context.Context, id int64) error                  { return nil }

func (f *fakeRepo) ListAddresses(ctx context.Context, activeOnly bool) ([]Address, error) {
	return nil, nil
}
func (f *fakeRepo) GetAddress(ctx context.Context, id int64) (*Address, error) {
	return nil, ErrNotFound
}
func (f *fakeRepo) CreateAddress(ctx context.Context, a Address) (int64, error) { return 0, nil }
func (f *fakeRepo) UpdateAddress(ctx context.Context, a Address) error          { return nil }
func (f *fakeRepo) DeleteAddress(ctx context.Context, id int64) error           { return nil }

func (f *fakeRepo) ListSocialMedia(ctx context.Context, activeOnly bool) ([]SocialMedia, error) {
	return nil, nil
}
func (f *fakeRepo) GetSocialMedia(ctx context.Context, id int64) (*SocialMedia, error) {
	return nil, ErrNotFound
}

func (f *fakeRepo) CreateSocialMedia(ctx context.Context, s SocialMedia) (int64, error) {
	s.ID = f.nextID
	f.nextID++
	f.social[s.ID] = &s
	return s.ID, nil
}

func (f *fakeRepo) UpdateSocialMedia(ctx context.Context, s SocialMedia) error { return nil }
func (f *fakeRepo) DeleteSocialMedia(ctx context.Context, id int64) error      { return nil }

type fakeIcons struct {
	sizes map[int64]int64
}

func (f *fakeIcons) ImageSize(ctx context.Context, id int64) (int64, bool, error) {
	size, ok := f.sizes[id]
	return size, ok, nil
}

func TestCreatePhone_Normalizes(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	p, err := svc.CreatePhone(context.Background(), PhoneRequest{Number: "+7 (912) 345-67-89"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Number != "+79123456789" {
		t.Fatalf("number not normalized: %q", p.Number)
	}
	if !p.IsActive {
		t.Fatalf("new entries default to active")
	}
}

func TestCreatePhone_RejectsBadNumber(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	_, err := svc.CreatePhone(context.Background(), PhoneRequest{Number: "12345"})
	var fe validate.FieldErrors
	if !errors.As(err, &fe) || !fe.Has("number") {
		t.Fatalf("expected number field error, got %v", err)
	}
}

func TestCreateAddress_RejectsBlankText(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	_, err := svc.CreateAddress(context.Background(), AddressRequest{Text: "   "})
	var fe validate.FieldErrors
	if !errors.As(err, &fe) || !fe.Has("text") {
		t.Fatalf("expected text field error, got %v", err)
	}
}

func TestCreateSocialMedia_IconRules(t *testing.T) {
	icons := &fakeIcons{sizes: map[int64]int64{1: 1024, 2: MaxIconSize + 1}}
	svc := NewService(newFakeRepo(), icons)

	small := int64(1)
	if _, err := svc.CreateSocialMedia(context.Background(), SocialMediaRequest{
		Name: "Telegram", URL: "https://t.me/ferrumtrans", IconID: &small,
	}); err != nil {
		t.Fatalf("small icon rejected: %v", err)
	}

	big := int64(2)
	_, err := svc.CreateSocialMedia(context.Background(), SocialMediaRequest{
		Name: "VK", URL: "https://vk.com/ferrumtrans", IconID: &big,
	})
	var fe validate.FieldErrors
	if !errors.As(err, &fe) || !fe.Has("icon_id") {
		t.Fatalf("expected icon_id error, got %v", err)
	}

	missing := int64(99)
	_, err = svc.CreateSocialMedia(context.Background(), SocialMediaRequest{
		Name: "OK", URL: "https://ok.ru/ferrumtrans", IconID: &missing,
	})
	if !errors.As(err, &fe) || !fe.Has("icon_id") {
		t.Fatalf("expected icon_id error for missing image, got %v", err)
	}
}
