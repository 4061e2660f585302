package service

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ormanet/lumeo-api/internal/ingest"
	"github.com/ormanet/lumeo-api/internal/models"
)

// clientReconciler finds or creates the canonical client for an import row.
type clientReconciler interface {
	FindOrCreate(template *models.Client) (*models.Client, bool, error)
}

// accountLinker re-attaches imported clients to existing login accounts.
type accountLinker interface {
	LinkToUserByEmail(userID int64, email string) (int64, error)
}

// userLookup resolves accounts by email for the post-import link step.
type userLookup interface {
	GetByEmail(email string) (*models.User, error)
}

// ClientImportService ingests the promo-adherent client workbook. The export
// has no header row; columns are fixed by position.
type ClientImportService struct {
	clients clientReconciler
	linker  accountLinker
	users   userLookup
}

// NewClientImportService constructs a ClientImportService. users and linker
// may be nil when account linking is not wired.
func NewClientImportService(clients clientReconciler, linker accountLinker, users userLookup) *ClientImportService {
	return &ClientImportService{clients: clients, linker: linker, users: users}
}

// ClientImportResult summarizes one import run.
type ClientImportResult struct {
	Processed int               `json:"processed"`
	Imported  int               `json:"imported"`
	Updated   int               `json:"updated"`
	Errors    []models.RowError `json:"errors"`
}

// Positional columns of the promo signup export.
const (
	colCompanyName = 1
	colTaxID       = 2
	colEmail       = 6
	colPhone       = 7
	colSegment     = 10
)

// Import reconciles every non-empty row into the client registry. A row needs
// at least an email or a tax id; matched clients are refreshed and enrolled,
// unmatched ones created. Loyalty state of existing clients is never touched.
func (s *ClientImportService) Import(data []byte) (*ClientImportResult, error) {
	rows, err := ingest.OpenWorkbook(data)
	if err != nil {
		return nil, err
	}

	result := &ClientImportResult{Errors: []models.RowError{}}

	rowNum := 0
	for _, row := range rows {
		if ingest.IsEmptyRow(row) {
			continue
		}
		rowNum++
		result.Processed++

		template, rowErr := s.clientFromRow(row, rowNum)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			continue
		}

		client, created, err := s.clients.FindOrCreate(template)
		if err != nil {
			log.Error().Err(err).Int("row", rowNum).Msg("client import row failed")
			result.Errors = append(result.Errors, models.RowError{Row: rowNum, Reason: "persist_failed", Detail: err.Error()})
			continue
		}
		if created {
			result.Imported++
		} else {
			result.Updated++
		}

		s.linkAccount(client)
	}

	log.Info().
		Int("processed", result.Processed).
		Int("imported", result.Imported).
		Int("updated", result.Updated).
		Int("errors", len(result.Errors)).
		Msg("promo client import complete")

	return result, nil
}

func (s *ClientImportService) clientFromRow(row []string, rowNum int) (*models.Client, *models.RowError) {
	cell := func(idx int) string {
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	email := strings.ToLower(cell(colEmail))
	taxID := cell(colTaxID)

	if email == "" && taxID == "" {
		return nil, &models.RowError{Row: rowNum, Reason: "missing_email_and_tax_id"}
	}
	if email != "" && !validEmail(email) {
		return nil, &models.RowError{Row: rowNum, Reason: "invalid_email", Detail: email}
	}

	return &models.Client{
		CompanyName:  cell(colCompanyName),
		TaxID:        taxID,
		Email:        email,
		Phone:        cell(colPhone),
		Segment:      models.ParseSegment(cell(colSegment)),
		Status:       models.ClientStatusActive,
		PromoEnabled: true,
	}, nil
}

// linkAccount attaches the client to a login account sharing its email.
func (s *ClientImportService) linkAccount(client *models.Client) {
	if s.users == nil || s.linker == nil || client.Email == "" {
		return
	}
	user, err := s.users.GetByEmail(client.Email)
	if err != nil || user == nil {
		return
	}
	if _, err := s.linker.LinkToUserByEmail(user.ID, client.Email); err != nil {
		log.Warn().Err(err).Str("email", client.Email).Msg("client account link failed")
	}
}

// validEmail applies the import's lax email check: an @ and a dot in the
// domain part.
func validEmail(value string) bool {
	at := strings.LastIndex(value, "@")
	if at <= 0 || at == len(value)-1 {
		return false
	}
	return strings.Contains(value[at+1:], ".")
}
