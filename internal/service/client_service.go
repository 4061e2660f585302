package service

import (
	"database/sql"
	"strings"

	"github.com/ormanet/lumeo-api/internal/models"
	"github.com/ormanet/lumeo-api/internal/utils"
)

// clientStore is the slice of the client repository this service needs.
type clientStore interface {
	Create(client *models.Client) error
	Update(client *models.Client) error
	GetByID(id int64) (*models.Client, error)
	FindByEmailOrTaxID(email, taxID string) (*models.Client, error)
	GetAll(segment string, promoOnly bool) ([]models.Client, error)
	Delete(id int64) error
}

// ClientService handles client registry business logic.
type ClientService struct {
	repo clientStore
}

// NewClientService constructs a ClientService.
func NewClientService(repo clientStore) *ClientService {
	return &ClientService{repo: repo}
}

// SaveClientRequest carries the mutable client profile fields.
type SaveClientRequest struct {
	CompanyName  string `json:"companyName" binding:"required"`
	TaxID        string `json:"taxId"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Segment      string `json:"segment"`
	Status       string `json:"status"`
	Note         string `json:"note"`
	PromoEnabled bool   `json:"promoEnabled"`
}

// Create inserts a new client with normalized fields.
func (s *ClientService) Create(req *SaveClientRequest) (*models.Client, error) {
	client := clientFromRequest(req)
	if err := s.repo.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

// Update overwrites an existing client's profile fields. Loyalty state is not
// affected.
func (s *ClientService) Update(id int64, req *SaveClientRequest) (*models.Client, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrClientNotFound
		}
		return nil, err
	}

	updated := clientFromRequest(req)
	updated.ID = existing.ID
	updated.UserID = existing.UserID
	if err := s.repo.Update(updated); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

// Get returns a client by id.
func (s *ClientService) Get(id int64) (*models.Client, error) {
	client, err := s.repo.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

// List returns clients newest-first with optional filters.
func (s *ClientService) List(segment string, promoOnly bool) ([]models.Client, error) {
	clients, err := s.repo.GetAll(segment, promoOnly)
	if err != nil {
		return nil, err
	}
	if clients == nil {
		clients = []models.Client{}
	}
	return clients, nil
}

// Delete removes a client.
func (s *ClientService) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrClientNotFound
		}
		return err
	}
	return nil
}

// FindOrCreate resolves the canonical client for an (email, tax id) pair:
// email match wins, tax id is the fallback, and only when neither matches is
// a new row created. Returns the client and whether it was created.
func (s *ClientService) FindOrCreate(template *models.Client) (*models.Client, bool, error) {
	existing, err := s.repo.FindByEmailOrTaxID(template.Email, template.TaxID)
	if err != nil && err != sql.ErrNoRows {
		return nil, false, err
	}

	if existing == nil {
		if err := s.repo.Create(template); err != nil {
			return nil, false, err
		}
		return template, true, nil
	}

	// Refresh the profile from the import row without touching loyalty state.
	existing.CompanyName = coalesce(template.CompanyName, existing.CompanyName)
	existing.TaxID = coalesce(template.TaxID, existing.TaxID)
	existing.Email = coalesce(template.Email, existing.Email)
	existing.Phone = coalesce(template.Phone, existing.Phone)
	if template.Segment.Valid() {
		existing.Segment = template.Segment
	}
	existing.Note = coalesce(template.Note, existing.Note)
	if template.PromoEnabled {
		existing.PromoEnabled = true
	}

	if err := s.repo.Update(existing); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func clientFromRequest(req *SaveClientRequest) *models.Client {
	segment := models.Segment(req.Segment)
	if !segment.Valid() {
		segment = models.DefaultSegment
	}
	status := models.ClientStatus(req.Status)
	if status != models.ClientStatusInactive {
		status = models.ClientStatusActive
	}

	return &models.Client{
		CompanyName:  strings.TrimSpace(req.CompanyName),
		TaxID:        strings.TrimSpace(req.TaxID),
		Email:        strings.TrimSpace(strings.ToLower(req.Email)),
		Phone:        strings.TrimSpace(req.Phone),
		Segment:      segment,
		Status:       status,
		Note:         req.Note,
		PromoEnabled: req.PromoEnabled,
	}
}

func coalesce(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
