package service

import (
	"context"
	"testing"
	"time"

	"github.com/scaleworks/ddt-api/internal/domain/entity"
	"github.com/scaleworks/ddt-api/internal/domain/enum"
	"github.com/scaleworks/ddt-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

func newDocumentFixture(t *testing.T) (*DocumentService, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	store.clients[1] = &entity.Client{
		ID: 1, Name: "Bottega Rossi", Address: "Via Roma 1", City: "Milano",
		Province: "MI", PostalCode: "20100", VATNumber: "IT00000000001",
	}
	store.companies[1] = &entity.Company{
		ID: 1, Name: "Scaleworks Srl", Address: "Via Po 2", City: "Torino",
		Province: "TO", PostalCode: "10100", VATNumber: "IT00000000002",
	}

	lineSource := NewLineSourceService(&fakeTicketRepo{store: store}, &fakeArticleRepo{store: store})
	svc := NewDocumentService(
		&fakeTxManager{store: store},
		&fakeDocumentRepo{store: store},
		&fakeTicketRepo{store: store},
		&fakeClientRepo{store: store},
		&fakeCompanyRepo{store: store},
		&fakeTaskRepo{store: store},
		&fakeSequenceRepo{store: store},
		lineSource,
	)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	return svc, store
}

// seedScenario sets up ticket 100 with two clean-number lines:
// art 5 at 1.22 gross / 22% (net 1.00), art 6 at 1.10 gross / 10% (net 1.00).
func seedScenario(store *fakeStore) {
	seedArticle(store, 5, "1.22", enum.VATClassStandard22)
	seedArticle(store, 6, "1.10", enum.VATClassReduced10)
	seedTicket(store, 100, 1, enum.TicketStatusFree,
		entity.TicketLine{ID: 1, TicketID: 100, ArticleID: 5, Description: "apples", Quantity: dec("2")},
		entity.TicketLine{ID: 2, TicketID: 100, ArticleID: 6, Description: "pears", Quantity: dec("3")},
	)
}

func TestCreateAndDeleteDocumentScenario(t *testing.T) {
	svc, store := newDocumentFixture(t)
	seedScenario(store)

	doc, report, err := svc.CreateDocument(context.Background(), &CreateDocumentInput{
		ClientID:  1,
		CompanyID: 1,
		Tickets:   []TicketRef{{TicketID: 100, CompanyID: 1}},
		Manual: []ManualLineInput{
			{Description: "spare crate", Quantity: dec("1"), UnitPrice: dec("12.20"), VATClass: enum.VATClassStandard22},
		},
		Note: "morning delivery",
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if report.LinesProduced != 3 || len(doc.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d (report %d)", len(doc.Lines), report.LinesProduced)
	}
	if doc.ID != 1 || doc.Number != 1 {
		t.Errorf("id/number = %d/%d, want 1/1", doc.ID, doc.Number)
	}

	// Snapshot fields, not references.
	if doc.ClientName != "Bottega Rossi" || doc.CompanyName != "Scaleworks Srl" {
		t.Errorf("client/company snapshot missing: %q / %q", doc.ClientName, doc.CompanyName)
	}

	// ticket lines: 2.00 net + 0.44 VAT, 3.00 net + 0.30 VAT
	// manual line: 10.00 net + 2.20 VAT
	if !doc.NetTotal.Equal(dec("15.00")) {
		t.Errorf("net total = %s, want 15.00", doc.NetTotal)
	}
	if !doc.VATTotal.Equal(dec("2.94")) {
		t.Errorf("vat total = %s, want 2.94", doc.VATTotal)
	}
	if !doc.Total.Equal(dec("17.94")) {
		t.Errorf("total = %s, want 17.94", doc.Total)
	}

	// Totals must equal a fresh recomputation from the persisted lines.
	recomputed := SumLines(store.docs[doc.ID].Lines)
	if !recomputed.Net.Equal(doc.NetTotal) || !recomputed.VAT.Equal(doc.VATTotal) {
		t.Errorf("stored totals diverge from line recomputation: %+v", recomputed)
	}

	if store.tickets[100].Status != enum.TicketStatusProcessed {
		t.Errorf("ticket status = %s, want Processed", store.tickets[100].Status)
	}

	// Manual line carries no source ticket; ticket lines do.
	manualCount := 0
	for _, l := range doc.Lines {
		if l.Manual {
			manualCount++
			if l.TicketID != nil {
				t.Error("manual line must not reference a ticket")
			}
		} else if l.TicketID == nil || *l.TicketID != 100 {
			t.Errorf("ticket line source = %v, want 100", l.TicketID)
		}
	}
	if manualCount != 1 {
		t.Errorf("manual line count = %d, want 1", manualCount)
	}

	// Reversal: ticket had no task, so it returns to Free and the document
	// and its lines are gone.
	if err := svc.DeleteDocument(context.Background(), doc.ID); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	if store.tickets[100].Status != enum.TicketStatusFree {
		t.Errorf("ticket status after reversal = %s, want Free", store.tickets[100].Status)
	}
	if len(store.docs) != 0 {
		t.Errorf("document should be deleted, %d remain", len(store.docs))
	}
}

func TestCreateDocumentNoLinesProduced(t *testing.T) {
	svc, store := newDocumentFixture(t)

	_, _, err := svc.CreateDocument(context.Background(), &CreateDocumentInput{
		ClientID:  1,
		CompanyID: 1,
		Tickets:   []TicketRef{{TicketID: 777, CompanyID: 1}}, // does not exist
	})
	if !apperror.IsKind(err, apperror.KindNoLinesProduced) {
		t.Fatalf("expected no_lines_produced, got %v", err)
	}
	if len(store.docs) != 0 {
		t.Error("no document may be persisted")
	}
	// The allocated numbers roll back with the unit of work, so the next
	// successful creation is not preceded by a race-created gap.
	if store.seq["document_number"] != 0 {
		t.Errorf("sequence must roll back, got %d", store.seq["document_number"])
	}
}

func TestCreateDocumentRejectsConsumedTicket(t *testing.T) {
	svc, store := newDocumentFixture(t)
	seedScenario(store)
	store.tickets[100].Status = enum.TicketStatusProcessed

	_, _, err := svc.CreateDocument(context.Background(), &CreateDocumentInput{
		ClientID:  1,
		CompanyID: 1,
		Tickets:   []TicketRef{{TicketID: 100, CompanyID: 1}},
	})
	if !apperror.IsKind(err, apperror.KindInvalidStateTransition) {
		t.Fatalf("expected invalid_state_transition, got %v", err)
	}
	if len(store.docs) != 0 {
		t.Error("a rejected consolidation must persist nothing")
	}
	if store.seq["document_number"] != 0 {
		t.Error("sequence must roll back on rejection")
	}
}

func TestCreateDocumentPartialBatch(t *testing.T) {
	svc, store := newDocumentFixture(t)
	seedScenario(store)

	doc, report, err := svc.CreateDocument(context.Background(), &CreateDocumentInput{
		ClientID:  1,
		CompanyID: 1,
		Tickets: []TicketRef{
			{TicketID: 100, CompanyID: 1},
			{TicketID: 777, CompanyID: 1}, // missing, skipped with warning
		},
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if len(doc.Lines) != 2 {
		t.Fatalf("expected 2 lines from the surviving ticket, got %d", len(doc.Lines))
	}
	if len(report.Warnings) != 1 || report.Warnings[0].Kind != "source_not_found" {
		t.Fatalf("expected source_not_found warning, got %+v", report.Warnings)
	}
}

func TestCreateDocumentPerTicketDiscount(t *testing.T) {
	svc, store := newDocumentFixture(t)
	seedScenario(store)

	doc, _, err := svc.CreateDocument(context.Background(), &CreateDocumentInput{
		ClientID:  1,
		CompanyID: 1,
		Tickets:   []TicketRef{{TicketID: 100, CompanyID: 1}},
		Discounts: map[int64]decimal.Decimal{100: dec("50")},
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	// 2.00 + 3.00 net halved, 0.44 + 0.30 VAT halved by the same factor.
	if !doc.NetTotal.Equal(dec("2.50")) {
		t.Errorf("net total = %s, want 2.50", doc.NetTotal)
	}
	if !doc.VATTotal.Equal(dec("0.37")) {
		t.Errorf("vat total = %s, want 0.37", doc.VATTotal)
	}
	for _, l := range doc.Lines {
		if !l.DiscountPct.Equal(dec("50")) {
			t.Errorf("line discount = %s, want 50 on every line of the ticket", l.DiscountPct)
		}
	}
}

func TestCreateDocumentInvalidDiscount(t *testing.T) {
	svc, store := newDocumentFixture(t)
	seedScenario(store)

	_, _, err := svc.CreateDocument(context.Background(), &CreateDocumentInput{
		ClientID:  1,
		CompanyID: 1,
		Tickets:   []TicketRef{{TicketID: 100, CompanyID: 1}},
		Discounts: map[int64]decimal.Decimal{100: dec("150")},
	})
	if err == nil {
		t.Fatal("discount above 100 must be rejected")
	}
	if store.tickets[100].Status != enum.TicketStatusFree {
		t.Error("ticket must stay Free after rejected input")
	}
}

func TestCreateDocumentEmptyInput(t *testing.T) {
	svc, _ := newDocumentFixture(t)

	_, _, err := svc.CreateDocument(context.Background(), &CreateDocumentInput{ClientID: 1, CompanyID: 1})
	if err == nil {
		t.Fatal("empty selection must be rejected")
	}
}

func TestCreateDocumentMissingClient(t *testing.T) {
	svc, store := newDocumentFixture(t)
	seedScenario(store)

	_, _, err := svc.CreateDocument(context.Background(), &CreateDocumentInput{
		ClientID:  99,
		CompanyID: 1,
		Tickets:   []TicketRef{{TicketID: 100, CompanyID: 1}},
	})
	if !apperror.IsKind(err, apperror.KindSourceNotFound) {
		t.Fatalf("expected source_not_found, got %v", err)
	}
	if store.tickets[100].Status != enum.TicketStatusFree {
		t.Error("ticket must stay Free when the client is missing")
	}
}

func TestSequenceMonotonicAcrossDeletes(t *testing.T) {
	svc, store := newDocumentFixture(t)
	seedArticle(store, 5, "1.22", enum.VATClassStandard22)

	var docIDs []int64
	for i := int64(1); i <= 3; i++ {
		seedTicket(store, 100+i, 1, enum.TicketStatusFree,
			entity.TicketLine{ID: i, TicketID: 100 + i, ArticleID: 5, Quantity: dec("1")},
		)
		doc, _, err := svc.CreateDocument(context.Background(), &CreateDocumentInput{
			ClientID:  1,
			CompanyID: 1,
			Tickets:   []TicketRef{{TicketID: 100 + i, CompanyID: 1}},
		})
		if err != nil {
			t.Fatalf("CreateDocument %d: %v", i, err)
		}
		if doc.Number != i {
			t.Errorf("document %d number = %d, want %d", i, doc.Number, i)
		}
		docIDs = append(docIDs, doc.ID)
	}

	// Deleting a document leaves a legitimate gap; the sequence keeps
	// increasing and never reissues the freed number.
	if err := svc.DeleteDocument(context.Background(), docIDs[1]); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	seedTicket(store, 200, 1, enum.TicketStatusFree,
		entity.TicketLine{ID: 9, TicketID: 200, ArticleID: 5, Quantity: dec("1")},
	)
	doc, _, err := svc.CreateDocument(context.Background(), &CreateDocumentInput{
		ClientID:  1,
		CompanyID: 1,
		Tickets:   []TicketRef{{TicketID: 200, CompanyID: 1}},
	})
	if err != nil {
		t.Fatalf("CreateDocument after delete: %v", err)
	}
	if doc.Number != 4 {
		t.Errorf("number after delete = %d, want 4", doc.Number)
	}
}

func TestPreviewDoesNotMutate(t *testing.T) {
	svc, store := newDocumentFixture(t)
	seedScenario(store)

	result, err := svc.PreviewLines(context.Background(),
		[]TicketRef{{TicketID: 100, CompanyID: 1}},
		[]ManualLineInput{{Description: "crate", Quantity: dec("1"), UnitPrice: dec("12.20"), VATClass: enum.VATClassStandard22}},
		nil, decimal.Zero)
	if err != nil {
		t.Fatalf("PreviewLines: %v", err)
	}
	if len(result.Lines) != 3 {
		t.Fatalf("expected 3 preview lines, got %d", len(result.Lines))
	}
	if !result.Totals.Total.Equal(dec("17.94")) {
		t.Errorf("preview total = %s, want 17.94", result.Totals.Total)
	}

	if store.tickets[100].Status != enum.TicketStatusFree {
		t.Error("preview must not transition tickets")
	}
	if len(store.docs) != 0 {
		t.Error("preview must not persist documents")
	}
	if store.seq["document_number"] != 0 {
		t.Error("preview must not consume numbers")
	}
}

// --- reversal with tasks -------------------------------------------------

func seedTaskScenario(store *fakeStore) {
	seedArticle(store, 5, "1.22", enum.VATClassStandard22)
	seedTicket(store, 100, 1, enum.TicketStatusTaskReserved,
		entity.TicketLine{ID: 1, TicketID: 100, ArticleID: 5, Quantity: dec("1")},
	)
	store.tasks[7] = &entity.Task{ID: 7, CompanyID: 1, Name: "friday picks"}
	store.memberships[100] = 7
	store.notifications[7] = []string{"task created"}
}

func createTaskDocument(t *testing.T, svc *DocumentService) *entity.Document {
	t.Helper()
	taskID := int64(7)
	doc, _, err := svc.CreateDocument(context.Background(), &CreateDocumentInput{
		ClientID:  1,
		CompanyID: 1,
		Tickets:   []TicketRef{{TicketID: 100, CompanyID: 1}},
		TaskID:    &taskID,
	})
	if err != nil {
		t.Fatalf("CreateDocument from task: %v", err)
	}
	return doc
}

func TestConsolidateTaskReservedTicket(t *testing.T) {
	svc, store := newDocumentFixture(t)
	seedTaskScenario(store)

	doc := createTaskDocument(t, svc)

	if store.tickets[100].Status != enum.TicketStatusProcessed {
		t.Errorf("ticket status = %s, want Processed", store.tickets[100].Status)
	}
	task := store.tasks[7]
	if task.DocumentID == nil || *task.DocumentID != doc.ID {
		t.Errorf("task document ref = %v, want %d", task.DocumentID, doc.ID)
	}
	if task.Progress != 100 {
		t.Errorf("task progress = %d, want 100", task.Progress)
	}
}

func TestReversalRestoresTaskReserved(t *testing.T) {
	svc, store := newDocumentFixture(t)
	seedTaskScenario(store)
	doc := createTaskDocument(t, svc)

	if err := svc.DeleteDocument(context.Background(), doc.ID); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}

	// The ticket is still a member of task 7, so it goes back to the task,
	// not to the free pool.
	if store.tickets[100].Status != enum.TicketStatusTaskReserved {
		t.Errorf("ticket status = %s, want TaskReserved", store.tickets[100].Status)
	}
	task, ok := store.tasks[7]
	if !ok {
		t.Fatal("task must survive while it still has member tickets")
	}
	if task.DocumentID != nil {
		t.Errorf("task document ref = %v, want cleared", task.DocumentID)
	}
	if task.Progress != 0 {
		t.Errorf("task progress = %d, want 0 after reversal", task.Progress)
	}
}

func TestReversalRestoresFreeWhenMembershipGone(t *testing.T) {
	svc, store := newDocumentFixture(t)
	seedTaskScenario(store)
	doc := createTaskDocument(t, svc)

	// The task subsystem removed the ticket from the task after
	// consolidation; the membership check runs at reversal time.
	delete(store.memberships, 100)

	if err := svc.DeleteDocument(context.Background(), doc.ID); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}

	if store.tickets[100].Status != enum.TicketStatusFree {
		t.Errorf("ticket status = %s, want Free", store.tickets[100].Status)
	}
	// The task lost its last ticket: an empty task is invalid and is
	// removed together with its notifications.
	if _, ok := store.tasks[7]; ok {
		t.Error("empty task must be deleted")
	}
	if _, ok := store.notifications[7]; ok {
		t.Error("task notifications must be deleted with the task")
	}
}

func TestReversalMissingTaskAborts(t *testing.T) {
	svc, store := newDocumentFixture(t)
	seedTaskScenario(store)
	doc := createTaskDocument(t, svc)

	delete(store.tasks, 7)

	err := svc.DeleteDocument(context.Background(), doc.ID)
	if !apperror.IsKind(err, apperror.KindReversalInconsistency) {
		t.Fatalf("expected reversal_inconsistency, got %v", err)
	}
	// Nothing may be partially applied.
	if store.tickets[100].Status != enum.TicketStatusProcessed {
		t.Errorf("ticket status = %s, want Processed (unchanged)", store.tickets[100].Status)
	}
	if _, ok := store.docs[doc.ID]; !ok {
		t.Error("document must survive an aborted reversal")
	}
}

func TestReversalMissingTicketAborts(t *testing.T) {
	svc, store := newDocumentFixture(t)
	seedScenario(store)

	doc, _, err := svc.CreateDocument(context.Background(), &CreateDocumentInput{
		ClientID:  1,
		CompanyID: 1,
		Tickets:   []TicketRef{{TicketID: 100, CompanyID: 1}},
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	delete(store.tickets, 100)

	err = svc.DeleteDocument(context.Background(), doc.ID)
	if !apperror.IsKind(err, apperror.KindReversalInconsistency) {
		t.Fatalf("expected reversal_inconsistency, got %v", err)
	}
	if _, ok := store.docs[doc.ID]; !ok {
		t.Error("document must survive an aborted reversal")
	}
}

func TestCreateDocumentDetectsStaleTicketState(t *testing.T) {
	svc, store := newDocumentFixture(t)
	seedScenario(store)

	if _, _, err := svc.CreateDocument(context.Background(), &CreateDocumentInput{
		ClientID:  1,
		CompanyID: 1,
		Tickets:   []TicketRef{{TicketID: 100, CompanyID: 1}},
	}); err != nil {
		t.Fatalf("first CreateDocument: %v", err)
	}

	// Someone forced the ticket back to Free while the document still
	// references it. The engine must refuse to consume it again.
	store.tickets[100].Status = enum.TicketStatusFree

	_, _, err := svc.CreateDocument(context.Background(), &CreateDocumentInput{
		ClientID:  1,
		CompanyID: 1,
		Tickets:   []TicketRef{{TicketID: 100, CompanyID: 1}},
	})
	if !apperror.IsKind(err, apperror.KindDataIntegrity) {
		t.Fatalf("expected data_integrity_violation, got %v", err)
	}
	if len(store.docs) != 1 {
		t.Errorf("second document must roll back, %d documents exist", len(store.docs))
	}
	if store.tickets[100].Status != enum.TicketStatusFree {
		t.Errorf("rolled back ticket status = %s, want Free", store.tickets[100].Status)
	}
}

func TestNoDoubleConsumption(t *testing.T) {
	svc, store := newDocumentFixture(t)
	seedScenario(store)

	if _, _, err := svc.CreateDocument(context.Background(), &CreateDocumentInput{
		ClientID:  1,
		CompanyID: 1,
		Tickets:   []TicketRef{{TicketID: 100, CompanyID: 1}},
	}); err != nil {
		t.Fatalf("first CreateDocument: %v", err)
	}

	_, _, err := svc.CreateDocument(context.Background(), &CreateDocumentInput{
		ClientID:  1,
		CompanyID: 1,
		Tickets:   []TicketRef{{TicketID: 100, CompanyID: 1}},
	})
	if !apperror.IsKind(err, apperror.KindInvalidStateTransition) {
		t.Fatalf("second consolidation must fail with invalid_state_transition, got %v", err)
	}
	if len(store.docs) != 1 {
		t.Errorf("exactly one live document may reference the ticket, got %d", len(store.docs))
	}
}
