package analytics

import (
	"context"
	"fmt"

	"github.com/ferrumtrans/ferrumtrans/internal/validate"
)

// Service enforces the diagram rules: the system-wide active limit and
// category color/value validation.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetDiagram(ctx context.Context, id int64) (*Diagram, error) {
	return s.repo.GetDiagram(ctx, id)
}

func (s *Service) ListDiagrams(ctx context.Context, activeOnly bool) ([]Diagram, error) {
	return s.repo.ListDiagrams(ctx, activeOnly)
}

func (s *Service) CreateDiagram(ctx context.Context, req DiagramRequest) (*Diagram, error) {
	d := Diagram{
		Title:           req.Title,
		Description:     req.Description,
		ChartType:       ChartType(req.ChartType),
		MeasurementUnit: req.MeasurementUnit,
		Order:           req.Order,
	}
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}
	if err := validateDiagramReq(req); err != nil {
		return nil, err
	}

	// The count check and the insert share one transaction so two
	// concurrent activations cannot both observe count < limit.
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if d.IsActive {
			if ferr := checkActiveLimit(ctx, repo, 0); ferr != nil {
				return ferr
			}
		}
		id, cerr := repo.CreateDiagram(ctx, d)
		if cerr != nil {
			return cerr
		}
		d.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Service) UpdateDiagram(ctx context.Context, id int64, req DiagramRequest) (*Diagram, error) {
	if err := validateDiagramReq(req); err != nil {
		return nil, err
	}

	var out *Diagram
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		d, gerr := repo.GetDiagram(ctx, id)
		if gerr != nil {
			return gerr
		}
		d.Title = req.Title
		d.Description = req.Description
		d.ChartType = ChartType(req.ChartType)
		d.MeasurementUnit = req.MeasurementUnit
		d.Order = req.Order
		if req.IsActive != nil {
			d.IsActive = *req.IsActive
		}
		if d.IsActive {
			if ferr := checkActiveLimit(ctx, repo, d.ID); ferr != nil {
				return ferr
			}
		}
		if uerr := repo.UpdateDiagram(ctx, *d); uerr != nil {
			return uerr
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) DeleteDiagram(ctx context.Context, id int64) error {
	return s.repo.DeleteDiagram(ctx, id)
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}

// ListCategories returns the diagram's categories with their derived
// percentage of the total.
func (s *Service) ListCategories(ctx context.Context, diagramID int64) ([]Category, error) {
	if _, err := s.repo.GetDiagram(ctx, diagramID); err != nil {
		return nil, err
	}
	categories, err := s.repo.ListCategories(ctx, diagramID)
	if err != nil {
		return nil, err
	}
	return withPercentages(categories), nil
}

func (s *Service) CreateCategory(ctx context.Context, diagramID int64, req CategoryRequest) (*Category, error) {
	if _, err := s.repo.GetDiagram(ctx, diagramID); err != nil {
		return nil, err
	}
	c := Category{DiagramID: diagramID, Name: req.Name, Value: req.Value, Order: req.Order}
	if err := applyCategoryColor(&c, req); err != nil {
		return nil, err
	}
	id, err := s.repo.CreateCategory(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	return &c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, req CategoryRequest) (*Category, error) {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = req.Name
	c.Value = req.Value
	c.Order = req.Order
	if err := applyCategoryColor(c, req); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateCategory(ctx, *c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.repo.DeleteCategory(ctx, id)
}

func validateDiagramReq(req DiagramRequest) error {
	fe := validate.Struct(req)
	if fe == nil {
		fe = make(validate.FieldErrors)
	}
	if req.MeasurementUnit != "" && !validate.NotBlank(req.MeasurementUnit) {
		fe.Add("measurement_unit", "measurement unit cannot be blank")
	}
	return fe.OrNil()
}

func applyCategoryColor(c *Category, req CategoryRequest) error {
	fe := validate.Struct(req)
	if fe == nil {
		fe = make(validate.FieldErrors)
	}
	if req.Color != "" {
		normalized, ok := validate.NormalizeHexColor(req.Color)
		if !ok {
			fe.Add("color", "invalid color format, use hex: #FFFFFF or #FFF")
		} else {
			c.Color = normalized
		}
	}
	return fe.OrNil()
}

func checkActiveLimit(ctx context.Context, repo Repository, excludeID int64) error {
	count, err := repo.CountActive(ctx, excludeID)
	if err != nil {
		return err
	}
	if count >= MaxActiveDiagrams {
		fe := make(validate.FieldErrors)
		fe.Add("is_active", fmt.Sprintf("no more than %d diagrams can be active; %d are active now, deactivate one first", MaxActiveDiagrams, count))
		return fe
	}
	return nil
}
