package applications

import (
	"context"
	"time"

	"github.com/ferrumtrans/ferrumtrans/internal/shared"
	"github.com/ferrumtrans/ferrumtrans/internal/validate"
)

// Notifier dispatches the new-inquiry notification to the configured
// recipients. Failure is best-effort territory: logged by the effect
// runner, never surfaced to the caller.
type Notifier interface {
	NotifyNewApplication(ctx context.Context, app *Application) error
}

// Service holds inquiry business rules: contact validation, the
// processed-timestamp invariant and the post-persist notification.
type Service struct {
	repo     Repository
	notifier Notifier
	effects  *shared.EffectRunner
	now      func() time.Time
}

func NewService(repo Repository, notifier Notifier, effects *shared.EffectRunner) *Service {
	return &Service{repo: repo, notifier: notifier, effects: effects, now: time.Now}
}

func (s *Service) Get(ctx context.Context, id int64) (*Application, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListApplicationsRequest) ([]Application, int, error) {
	if req.Limit <= 0 {
		req.Limit = 50
	}
	if fe := validate.Struct(req); fe != nil {
		return nil, 0, fe
	}
	return s.repo.List(ctx, req)
}

// Create validates and persists a new inquiry, then fires the
// notification effect. The inquiry row is the durable record of
// intent; a failed notification never rolls it back.
func (s *Service) Create(ctx context.Context, req CreateApplicationRequest) (*Application, error) {
	app := Application{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Message: req.Message,
		Status:  StatusNew,
	}
	fe := validate.Struct(req)
	if fe == nil {
		fe = make(validate.FieldErrors)
	}
	s.validateContacts(&app, fe)
	if err := fe.OrNil(); err != nil {
		return nil, err
	}
	app.stampProcessedAt(s.now())

	id, err := s.repo.Create(ctx, app)
	if err != nil {
		return nil, err
	}
	app.ID = id

	if s.notifier != nil {
		s.effects.Run(ctx, shared.SideEffect{
			Name: "application notification",
			Fn: func(ctx context.Context) error {
				return s.notifier.NotifyNewApplication(ctx, &app)
			},
		})
	}
	return &app, nil
}

// Update applies a partial update and re-runs the full validation and
// the processed-timestamp recomputation, whatever fields changed.
func (s *Service) Update(ctx context.Context, id int64, req UpdateApplicationRequest) (*Application, error) {
	if fe := validate.Struct(req); fe != nil {
		return nil, fe
	}

	app, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		app.Name = *req.Name
	}
	if req.Phone != nil {
		app.Phone = *req.Phone
	}
	if req.Email != nil {
		app.Email = *req.Email
	}
	if req.Message != nil {
		app.Message = *req.Message
	}
	if req.Status != nil {
		app.Status = Status(*req.Status)
	}
	if req.ManagerComment != nil {
		app.ManagerComment = *req.ManagerComment
	}

	fe := make(validate.FieldErrors)
	s.validateContacts(app, fe)
	if err := fe.OrNil(); err != nil {
		return nil, err
	}
	app.stampProcessedAt(s.now())

	if err := s.repo.Update(ctx, *app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// validateContacts checks the at-least-one-contact rule and the field
// formats, normalizing the phone in place. Errors accumulate into fe
// so the caller sees every problem in one pass.
func (s *Service) validateContacts(app *Application, fe validate.FieldErrors) {
	if app.Phone == "" && app.Email == "" {
		fe.Add(validate.NonFieldKey, "provide a phone number or an email address")
	}
	if app.Phone != "" {
		normalized, ok := validate.NormalizePhone(app.Phone)
		if !ok {
			fe.Add("phone", "enter a valid phone number in the format +7 999 123-45-67")
		} else {
			app.Phone = normalized
		}
	}
	if app.Email != "" && !validate.ValidEmail(app.Email) {
		fe.Add("email", "enter a valid email address")
	}
	if !app.Status.Valid() {
		fe.Add("status", "unknown status")
	}
}
