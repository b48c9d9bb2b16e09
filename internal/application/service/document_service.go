package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/scaleworks/ddt-api/internal/domain/entity"
	"github.com/scaleworks/ddt-api/internal/domain/enum"
	"github.com/scaleworks/ddt-api/internal/domain/repository"
	"github.com/scaleworks/ddt-api/pkg/apperror"
	"github.com/scaleworks/ddt-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// DocumentService consolidates tickets and manual lines into delivery
// documents and reverses them. Every mutation runs as one atomic unit of
// work: ticket transitions, line inserts, numbering and task updates all
// commit or roll back together.
type DocumentService struct {
	tx          repository.TxManager
	docRepo     repository.DocumentRepository
	ticketRepo  repository.TicketRepository
	clientRepo  repository.ClientRepository
	companyRepo repository.CompanyRepository
	taskRepo    repository.TaskRepository
	seqRepo     repository.SequenceRepository
	lineSource  *LineSourceService
	now         func() time.Time
}

// NewDocumentService creates a new document service
func NewDocumentService(
	tx repository.TxManager,
	docRepo repository.DocumentRepository,
	ticketRepo repository.TicketRepository,
	clientRepo repository.ClientRepository,
	companyRepo repository.CompanyRepository,
	taskRepo repository.TaskRepository,
	seqRepo repository.SequenceRepository,
	lineSource *LineSourceService,
) *DocumentService {
	return &DocumentService{
		tx:          tx,
		docRepo:     docRepo,
		ticketRepo:  ticketRepo,
		clientRepo:  clientRepo,
		companyRepo: companyRepo,
		taskRepo:    taskRepo,
		seqRepo:     seqRepo,
		lineSource:  lineSource,
		now:         time.Now,
	}
}

// CreateDocumentInput represents the create document input
type CreateDocumentInput struct {
	ClientID  int64
	CompanyID int64
	Tickets   []TicketRef
	Manual    []ManualLineInput
	// Discounts maps a source ticket id to its discount percentage. The
	// percentage is constant across all lines from the same ticket.
	Discounts      map[int64]decimal.Decimal
	ManualDiscount decimal.Decimal
	Note           string
	TaskID         *int64
	CreatedBy      uuid.UUID
}

// CreateReport carries non-fatal outcomes of a consolidation.
type CreateReport struct {
	LinesProduced int       `json:"lines_produced"`
	Warnings      []Warning `json:"warnings,omitempty"`
}

// CreateDocument consolidates the selected tickets and manual lines into a
// new document for the client. If every selection fails to resolve, nothing
// is persisted.
func (s *DocumentService) CreateDocument(ctx context.Context, input *CreateDocumentInput) (*entity.Document, *CreateReport, error) {
	if len(input.Tickets) == 0 && len(input.Manual) == 0 {
		return nil, nil, apperror.NewBadRequestError("at least one ticket selection or manual line is required")
	}
	for _, pct := range input.Discounts {
		if err := ValidateDiscount(pct); err != nil {
			return nil, nil, err
		}
	}
	if err := ValidateDiscount(input.ManualDiscount); err != nil {
		return nil, nil, err
	}

	var doc *entity.Document
	var report *CreateReport

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		client, err := s.clientRepo.GetByID(ctx, input.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return apperror.NewSourceNotFoundError("client", input.ClientID)
		}

		company, err := s.companyRepo.GetByID(ctx, input.CompanyID)
		if err != nil {
			return err
		}
		if company == nil {
			return apperror.NewSourceNotFoundError("company", input.CompanyID)
		}

		id, err := s.seqRepo.Next(ctx, repository.SequenceDocumentID)
		if err != nil {
			return err
		}
		number, err := s.seqRepo.Next(ctx, repository.SequenceDocumentNumber)
		if err != nil {
			return err
		}

		canonical, warnings, err := s.lineSource.Normalize(ctx, input.Tickets, input.Manual)
		if err != nil {
			return err
		}
		if len(canonical) == 0 {
			return apperror.NewNoLinesProducedError()
		}

		lines := make([]entity.DocumentLine, 0, len(canonical))
		for _, cl := range canonical {
			amounts, err := PriceLine(cl, s.discountFor(cl, input))
			if err != nil {
				return err
			}
			lines = append(lines, entity.DocumentLine{
				TicketID:    cl.TicketID,
				ArticleID:   cl.ArticleID,
				Description: cl.Description,
				Quantity:    cl.Quantity,
				UnitPrice:   amounts.UnitPrice,
				VATRate:     amounts.VATRate,
				DiscountPct: amounts.DiscountPct,
				NetAmount:   amounts.NetAmount,
				VATAmount:   amounts.VATAmount,
				Manual:      cl.Manual,
				Expiry:      cl.Expiry,
			})
		}

		// Consume each source ticket exactly once. The guarded update only
		// succeeds from FREE or TASK_RESERVED inside this transaction, so a
		// concurrent second consolidation cannot double-consume a ticket.
		for _, ticketID := range sourceTicketIDs(lines) {
			ok, err := s.ticketRepo.TransitionStatus(ctx, ticketID, enum.ConsumableStatuses(), enum.TicketStatusProcessed)
			if err != nil {
				return err
			}
			if !ok {
				current, err := s.ticketRepo.GetByID(ctx, ticketID)
				if err != nil {
					return err
				}
				if current == nil {
					return apperror.NewSourceNotFoundError("ticket", ticketID)
				}
				return apperror.NewInvalidTransitionError(ticketID, current.Status, enum.TicketStatusProcessed)
			}

			// A ticket that was still consumable must not be referenced by
			// any live document. A nonzero count means a reversal half-applied
			// or someone touched ticket state behind the engine's back.
			count, err := s.docRepo.CountLiveForTicket(ctx, ticketID)
			if err != nil {
				return err
			}
			if count > 0 {
				return apperror.NewDataIntegrityError("ticket is still referenced by an existing document")
			}
		}

		totals := SumLines(lines)
		doc = &entity.Document{
			ID:       id,
			Number:   number,
			IssuedAt: s.now(),

			CompanyID:         company.ID,
			CompanyName:       company.Name,
			CompanyAddress:    company.Address,
			CompanyCity:       company.City,
			CompanyProvince:   company.Province,
			CompanyPostalCode: company.PostalCode,
			CompanyVATNumber:  company.VATNumber,

			ClientID:         client.ID,
			ClientName:       client.Name,
			ClientAddress:    client.Address,
			ClientCity:       client.City,
			ClientProvince:   client.Province,
			ClientPostalCode: client.PostalCode,
			ClientVATNumber:  client.VATNumber,
			ClientFiscalCode: client.FiscalCode,

			NetTotal:  totals.Net,
			VATTotal:  totals.VAT,
			Total:     totals.Total,
			LineCount: len(lines),
			Note:      input.Note,
			TaskID:    input.TaskID,
			CreatedBy: input.CreatedBy,
			Lines:     lines,
		}
		if err := s.docRepo.Create(ctx, doc); err != nil {
			return err
		}

		if input.TaskID != nil {
			task, err := s.taskRepo.GetByID(ctx, *input.TaskID)
			if err != nil {
				return err
			}
			if task == nil {
				return apperror.NewSourceNotFoundError("task", *input.TaskID)
			}
			if err := s.taskRepo.SetDocument(ctx, task.ID, &doc.ID); err != nil {
				return err
			}
			if err := s.taskRepo.RecomputeProgress(ctx, task.ID); err != nil {
				return err
			}
		}

		report = &CreateReport{LinesProduced: len(lines), Warnings: warnings}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return doc, report, nil
}

func (s *DocumentService) discountFor(line CanonicalLine, input *CreateDocumentInput) decimal.Decimal {
	if line.Manual {
		return input.ManualDiscount
	}
	if line.TicketID != nil {
		if pct, ok := input.Discounts[*line.TicketID]; ok {
			return pct
		}
	}
	return decimal.Zero
}

// sourceTicketIDs returns the distinct ticket ids referenced by the lines,
// in first-appearance order.
func sourceTicketIDs(lines []entity.DocumentLine) []int64 {
	seen := make(map[int64]bool)
	var ids []int64
	for _, l := range lines {
		if l.TicketID == nil || seen[*l.TicketID] {
			continue
		}
		seen[*l.TicketID] = true
		ids = append(ids, *l.TicketID)
	}
	return ids
}

// DeleteDocument reverses a consolidation: every source ticket is restored
// to the state it should have had before the document existed, the owning
// task (if any) is updated or cleaned up, and the document and its lines
// are removed. The whole reversal is one transaction; a partial reversal is
// structurally impossible.
func (s *DocumentService) DeleteDocument(ctx context.Context, id int64) error {
	return s.tx.Do(ctx, func(ctx context.Context) error {
		doc, err := s.docRepo.GetWithLines(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return apperror.NewNotFoundError("Document")
		}

		// The task membership check must run inside this transaction: a
		// membership that changes mid-reversal would otherwise restore the
		// wrong state.
		var task *entity.Task
		if doc.TaskID != nil {
			task, err = s.taskRepo.GetByID(ctx, *doc.TaskID)
			if err != nil {
				return err
			}
			if task == nil {
				return apperror.NewReversalInconsistencyError("document references a task that no longer exists")
			}
		}

		for _, ticketID := range sourceTicketIDs(doc.Lines) {
			target := enum.TicketStatusFree
			if task != nil {
				member, err := s.taskRepo.IsMember(ctx, task.ID, ticketID)
				if err != nil {
					return err
				}
				if member {
					target = enum.TicketStatusTaskReserved
				}
			}

			ok, err := s.ticketRepo.TransitionStatus(ctx, ticketID, enum.ProcessedStatuses(), target)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.NewReversalInconsistencyError("source ticket is missing or no longer in a consumed state")
			}
		}

		if task != nil {
			if err := s.taskRepo.SetDocument(ctx, task.ID, nil); err != nil {
				return err
			}
			count, err := s.taskRepo.CountTickets(ctx, task.ID)
			if err != nil {
				return err
			}
			if count == 0 {
				// A task with no member tickets is an invalid state.
				if err := s.taskRepo.DeleteWithNotifications(ctx, task.ID); err != nil {
					return err
				}
			} else if err := s.taskRepo.RecomputeProgress(ctx, task.ID); err != nil {
				return err
			}
		}

		return s.docRepo.DeleteWithLines(ctx, doc.ID)
	})
}

// PreviewResult is the read-only outcome of a consolidation dry run.
type PreviewResult struct {
	Lines    []entity.DocumentLine `json:"lines"`
	Totals   Totals                `json:"totals"`
	Warnings []Warning             `json:"warnings,omitempty"`
}

// PreviewLines runs the same normalization and pricing as CreateDocument
// without allocating numbers or mutating any ticket.
func (s *DocumentService) PreviewLines(ctx context.Context, tickets []TicketRef, manual []ManualLineInput, discounts map[int64]decimal.Decimal, manualDiscount decimal.Decimal) (*PreviewResult, error) {
	canonical, warnings, err := s.lineSource.Normalize(ctx, tickets, manual)
	if err != nil {
		return nil, err
	}

	input := &CreateDocumentInput{Discounts: discounts, ManualDiscount: manualDiscount}
	lines := make([]entity.DocumentLine, 0, len(canonical))
	for _, cl := range canonical {
		amounts, err := PriceLine(cl, s.discountFor(cl, input))
		if err != nil {
			return nil, err
		}
		lines = append(lines, entity.DocumentLine{
			TicketID:    cl.TicketID,
			ArticleID:   cl.ArticleID,
			Description: cl.Description,
			Quantity:    cl.Quantity,
			UnitPrice:   amounts.UnitPrice,
			VATRate:     amounts.VATRate,
			DiscountPct: amounts.DiscountPct,
			NetAmount:   amounts.NetAmount,
			VATAmount:   amounts.VATAmount,
			Manual:      cl.Manual,
			Expiry:      cl.Expiry,
		})
	}

	return &PreviewResult{
		Lines:    lines,
		Totals:   SumLines(lines),
		Warnings: warnings,
	}, nil
}

// GetDocument retrieves a document with its lines
func (s *DocumentService) GetDocument(ctx context.Context, id int64) (*entity.Document, error) {
	doc, err := s.docRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NewNotFoundError("Document")
	}
	return doc, nil
}

// ListDocuments lists documents with filtering
func (s *DocumentService) ListDocuments(ctx context.Context, params *repository.DocumentFilterParams) (*pagination.PaginatedResult[entity.Document], error) {
	docs, total, err := s.docRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(docs, pag), nil
}
