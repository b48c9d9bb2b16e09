package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/scaleworks/ddt-api/internal/domain/enum"
	"github.com/scaleworks/ddt-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// TicketRef selects one ticket for consolidation.
type TicketRef struct {
	TicketID  int64 `json:"ticket_id" binding:"required"`
	CompanyID int64 `json:"company_id"`
}

// ManualLineInput is a client-declared ad-hoc line not backed by a ticket.
// The unit price is VAT-inclusive, as declared at the counter.
type ManualLineInput struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	VATClass    enum.VATClass   `json:"vat_class"`
	Expiry      *time.Time      `json:"expiry,omitempty"`
}

// CanonicalLine is the single normalized shape the pricing engine consumes,
// regardless of whether the line originated from a ticket or a manual entry.
type CanonicalLine struct {
	ArticleID        int64
	Description      string
	Quantity         decimal.Decimal
	UnitPrice        decimal.Decimal
	PriceIncludesVAT bool
	VATClass         enum.VATClass
	Expiry           *time.Time
	TicketID         *int64 // nil for manual lines
	Manual           bool
}

// Warning is a non-fatal per-selection problem surfaced to the caller.
type Warning struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// LineSourceService normalizes ticket references and manual payloads into
// canonical lines.
type LineSourceService struct {
	ticketRepo  repository.TicketRepository
	articleRepo repository.ArticleRepository
}

// NewLineSourceService creates a new line source service
func NewLineSourceService(ticketRepo repository.TicketRepository, articleRepo repository.ArticleRepository) *LineSourceService {
	return &LineSourceService{
		ticketRepo:  ticketRepo,
		articleRepo: articleRepo,
	}
}

// Normalize resolves ticket references and manual lines into canonical
// lines. Missing tickets are skipped with a warning so the batch can
// partially succeed; lines failing the parent-id integrity check are
// dropped, logged and reported, never silently included.
func (s *LineSourceService) Normalize(ctx context.Context, refs []TicketRef, manual []ManualLineInput) ([]CanonicalLine, []Warning, error) {
	var lines []CanonicalLine
	var warnings []Warning

	for _, ref := range refs {
		ticketLines, warns, err := s.normalizeTicket(ctx, ref)
		if err != nil {
			return nil, nil, err
		}
		lines = append(lines, ticketLines...)
		warnings = append(warnings, warns...)
	}

	if len(manual) > 0 {
		manualLines, err := s.normalizeManual(ctx, manual)
		if err != nil {
			return nil, nil, err
		}
		lines = append(lines, manualLines...)
	}

	return lines, warnings, nil
}

func (s *LineSourceService) normalizeTicket(ctx context.Context, ref TicketRef) ([]CanonicalLine, []Warning, error) {
	ticket, err := s.ticketRepo.GetWithLines(ctx, ref.TicketID, ref.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	if ticket == nil {
		log.Printf("Warning: ticket %d not found for company %d, skipping selection", ref.TicketID, ref.CompanyID)
		return nil, []Warning{{
			Kind:    "source_not_found",
			Message: fmt.Sprintf("ticket %d not found", ref.TicketID),
		}}, nil
	}

	articleIDs := make([]int64, 0, len(ticket.Lines))
	for _, l := range ticket.Lines {
		articleIDs = append(articleIDs, l.ArticleID)
	}
	articles, err := s.articleRepo.GetByIDs(ctx, articleIDs)
	if err != nil {
		return nil, nil, err
	}
	articleByID := make(map[int64]int, len(articles))
	for i := range articles {
		articleByID[articles[i].ID] = i
	}

	var lines []CanonicalLine
	var warnings []Warning
	for _, tl := range ticket.Lines {
		// The fetch joins on ticket_id, but source data from the scales has
		// historically carried mismatched parents. Re-verify and drop: a
		// foreign line must never reach the totals.
		if tl.TicketID != ticket.ID {
			log.Printf("Warning: data integrity violation: line %d claims ticket %d while fetching ticket %d", tl.ID, tl.TicketID, ticket.ID)
			warnings = append(warnings, Warning{
				Kind:    "data_integrity_violation",
				Message: fmt.Sprintf("line %d does not belong to ticket %d", tl.ID, ticket.ID),
			})
			continue
		}

		idx, ok := articleByID[tl.ArticleID]
		if !ok {
			log.Printf("Warning: article %d for line %d of ticket %d not found", tl.ArticleID, tl.ID, ticket.ID)
			warnings = append(warnings, Warning{
				Kind:    "source_not_found",
				Message: fmt.Sprintf("article %d not found for ticket %d", tl.ArticleID, ticket.ID),
			})
			continue
		}
		article := articles[idx]

		description := tl.Description
		if description == "" {
			description = article.Description
		}

		// The article's list price is VAT-inclusive; derive the net unit
		// price here so ticket lines enter pricing already exclusive.
		unitNet := article.Price.
			Div(one.Add(article.VATClass.Rate())).
			Round(unitPricePrecision)

		ticketID := ticket.ID
		lines = append(lines, CanonicalLine{
			ArticleID:        article.ID,
			Description:      description,
			Quantity:         tl.Quantity,
			UnitPrice:        unitNet,
			PriceIncludesVAT: false,
			VATClass:         article.VATClass,
			Expiry:           tl.Expiry,
			TicketID:         &ticketID,
		})
	}

	return lines, warnings, nil
}

func (s *LineSourceService) normalizeManual(ctx context.Context, manual []ManualLineInput) ([]CanonicalLine, error) {
	custom, err := s.articleRepo.GetOrCreateCustom(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]CanonicalLine, 0, len(manual))
	for _, m := range manual {
		lines = append(lines, CanonicalLine{
			ArticleID:        custom.ID,
			Description:      m.Description,
			Quantity:         m.Quantity,
			UnitPrice:        m.UnitPrice,
			PriceIncludesVAT: true,
			VATClass:         m.VATClass,
			Expiry:           m.Expiry,
			Manual:           true,
		})
	}
	return lines, nil
}
