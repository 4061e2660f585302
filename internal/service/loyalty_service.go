package service

import (
	"database/sql"

	"github.com/ormanet/lumeo-api/internal/models"
	"github.com/ormanet/lumeo-api/internal/repository"
	"github.com/ormanet/lumeo-api/internal/utils"
)

// loyaltyStore is the slice of the loyalty repository this service needs.
type loyaltyStore interface {
	GrantPoints(clientID int64, action models.ActionCode, points int, newTicket string) (*repository.GrantResult, error)
	ListLedger(clientID int64) ([]models.PromoLedgerEntry, error)
}

// clientGetter resolves clients for summary reads.
type clientGetter interface {
	GetByID(id int64) (*models.Client, error)
}

// LoyaltyService manages point grants and derived loyalty state.
type LoyaltyService struct {
	ledger  loyaltyStore
	clients clientGetter
}

// NewLoyaltyService constructs a LoyaltyService.
func NewLoyaltyService(ledger loyaltyStore, clients clientGetter) *LoyaltyService {
	return &LoyaltyService{ledger: ledger, clients: clients}
}

// GrantOutcome is the caller-facing result of a point grant.
type GrantOutcome struct {
	ClientID    int64              `json:"clientId"`
	ActionCode  models.ActionCode  `json:"actionCode"`
	Points      int                `json:"points"`
	TotalPoints int                `json:"totalPoints"`
	Tier        models.LoyaltyTier `json:"tier"`
	TicketCode  *string            `json:"ticketCode"`
}

// Grant awards the fixed point value of an action to a client. Unknown action
// codes are rejected before touching the ledger; a missing client surfaces as
// ErrClientNotFound.
func (s *LoyaltyService) Grant(clientID int64, action models.ActionCode) (*GrantOutcome, error) {
	points, ok := models.ActionPoints[action]
	if !ok {
		return nil, utils.ErrUnknownActionCode
	}

	result, err := s.ledger.GrantPoints(clientID, action, points, utils.GenerateTicketCode())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrClientNotFound
		}
		return nil, err
	}

	return &GrantOutcome{
		ClientID:    clientID,
		ActionCode:  action,
		Points:      points,
		TotalPoints: result.TotalPoints,
		Tier:        models.TierForPoints(result.TotalPoints),
		TicketCode:  result.TicketCode,
	}, nil
}

// Summary is the derived loyalty state returned to the account area.
type Summary struct {
	ClientID        int64                     `json:"clientId"`
	PromoEnabled    bool                      `json:"promoEnabled"`
	Points          int                       `json:"points"`
	Tier            models.LoyaltyTier        `json:"tier"`
	PrizesAvailable []string                  `json:"prizesAvailable"`
	TicketCode      *string                   `json:"ticketCode"`
	Actions         []models.PromoLedgerEntry `json:"actions"`
}

// GetSummary assembles the loyalty summary for a client: stored counter,
// derived tier, the tier's prize list, and the ledger newest-first.
func (s *LoyaltyService) GetSummary(clientID int64) (*Summary, error) {
	client, err := s.clients.GetByID(clientID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrClientNotFound
		}
		return nil, err
	}

	entries, err := s.ledger.ListLedger(clientID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.PromoLedgerEntry{}
	}

	tier := models.TierForPoints(client.PromoPoints)
	return &Summary{
		ClientID:        client.ID,
		PromoEnabled:    client.PromoEnabled,
		Points:          client.PromoPoints,
		Tier:            tier,
		PrizesAvailable: models.PrizesForTier(tier),
		TicketCode:      client.PromoTicketCode,
		Actions:         entries,
	}, nil
}
