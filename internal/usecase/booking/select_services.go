package booking

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// ServiceChoice is one requested service and the pricing options picked for it.
type ServiceChoice struct {
	ServiceID uint     `json:"service_id" binding:"required"`
	Options   []string `json:"options"`
}

// SelectServices resolves requested services against the catalog, capturing
// duration, padding and pricing in request order.
type SelectServices struct {
	repo domain.Repository
}

func NewSelectServices(repo domain.Repository) *SelectServices {
	return &SelectServices{repo: repo}
}

const codeUnknownService = "unknown_service"

// IsUnknownService reports a choice naming a missing or inactive service.
func IsUnknownService(err error) bool {
	return httperr.IsValidationCode(err, codeUnknownService)
}

func (uc *SelectServices) Execute(
	ctx context.Context,
	businessID uint,
	choices []ServiceChoice,
) ([]domain.SelectedService, error) {

	if len(choices) == 0 {
		return nil, httperr.ErrValidation("services", "no_services")
	}

	out := make([]domain.SelectedService, 0, len(choices))
	for _, c := range choices {
		svc, err := uc.repo.GetService(ctx, businessID, c.ServiceID)
		if err != nil {
			if isNotFound(err) {
				return nil, httperr.ErrValidation("services", codeUnknownService)
			}
			return nil, fmt.Errorf("get service: %w", err)
		}
		if !svc.Active {
			return nil, httperr.ErrValidation("services", codeUnknownService)
		}
		out = append(out, domain.SelectedFromService(*svc, c.Options...))
	}
	return out, nil
}
