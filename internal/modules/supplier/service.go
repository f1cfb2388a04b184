package supplier

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/MachePOS/mache-supplier-portal-sub000/internal/identity"
)

// ErrNoSupplier is returned when the current session cannot be resolved to
// an owning supplier.
var ErrNoSupplier = errors.New("no supplier linked to this session")

// Service defines supplier business logic.
type Service interface {
	Onboard(ctx context.Context, ownerUserID, name, contactEmail, phone string) (*Supplier, error)
	GetSupplier(ctx context.Context, id string) (*Supplier, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*Supplier, error)

	// ResolveSupplierID maps the current session to its owning supplier: the
	// impersonated supplier when an admin impersonation is active, otherwise
	// the supplier owned by the authenticated user. ErrNoSupplier when
	// neither applies.
	ResolveSupplierID(ctx context.Context) (uuid.UUID, error)
}

// UpdateProfileRequest holds the editable supplier profile fields.
type UpdateProfileRequest struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
}

type service struct {
	repo Repository
}

// NewService creates a new supplier service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Onboard(ctx context.Context, ownerUserID, name, contactEmail, phone string) (*Supplier, error) {
	if name == "" {
		return nil, errors.New("supplier name is required")
	}
	parsedOwnerID, err := uuid.Parse(ownerUserID)
	if err != nil {
		return nil, err
	}

	sup := &Supplier{
		ID:           uuid.New(),
		OwnerUserID:  parsedOwnerID,
		Name:         name,
		Status:       StatusPending,
		ContactEmail: contactEmail,
		Phone:        phone,
	}

	if err := s.repo.CreateSupplier(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *service) GetSupplier(ctx context.Context, id string) (*Supplier, error) {
	return s.repo.GetSupplierByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*Supplier, error) {
	sup, err := s.repo.GetSupplierByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		sup.Name = req.Name
	}
	sup.ContactEmail = req.ContactEmail
	sup.Phone = req.Phone

	if err := s.repo.UpdateSupplier(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *service) ResolveSupplierID(ctx context.Context) (uuid.UUID, error) {
	if imp, ok := identity.FromImpersonation(ctx); ok {
		id, err := uuid.Parse(imp.SupplierID)
		if err != nil {
			return uuid.Nil, ErrNoSupplier
		}
		return id, nil
	}

	userID, ok := identity.UserID(ctx)
	if !ok {
		return uuid.Nil, ErrNoSupplier
	}
	sup, err := s.repo.GetSupplierByOwnerID(ctx, userID)
	if err != nil {
		return uuid.Nil, ErrNoSupplier
	}
	return sup.ID, nil
}
