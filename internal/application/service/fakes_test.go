package service

import (
	"context"

	"github.com/scaleworks/ddt-api/internal/domain/entity"
	"github.com/scaleworks/ddt-api/internal/domain/enum"
	domainRepo "github.com/scaleworks/ddt-api/internal/domain/repository"
	"github.com/scaleworks/ddt-api/pkg/pagination"
)

// fakeStore is an in-memory stand-in for the relational store. The fake tx
// manager snapshots it before each unit of work and restores it on error,
// mirroring transactional rollback.
type fakeStore struct {
	tickets       map[int64]*entity.Ticket
	articles      map[int64]*entity.Article
	clients       map[int64]*entity.Client
	companies     map[int64]*entity.Company
	docs          map[int64]*entity.Document
	tasks         map[int64]*entity.Task
	memberships   map[int64]int64 // ticket id -> task id
	notifications map[int64][]string
	seq           map[string]int64
	nextArticleID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tickets:       make(map[int64]*entity.Ticket),
		articles:      make(map[int64]*entity.Article),
		clients:       make(map[int64]*entity.Client),
		companies:     make(map[int64]*entity.Company),
		docs:          make(map[int64]*entity.Document),
		tasks:         make(map[int64]*entity.Task),
		memberships:   make(map[int64]int64),
		notifications: make(map[int64][]string),
		seq:           make(map[string]int64),
		nextArticleID: 1000,
	}
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	c.nextArticleID = s.nextArticleID
	for k, v := range s.tickets {
		t := *v
		t.Lines = append([]entity.TicketLine(nil), v.Lines...)
		c.tickets[k] = &t
	}
	for k, v := range s.articles {
		a := *v
		c.articles[k] = &a
	}
	for k, v := range s.clients {
		cl := *v
		c.clients[k] = &cl
	}
	for k, v := range s.companies {
		co := *v
		c.companies[k] = &co
	}
	for k, v := range s.docs {
		d := *v
		d.Lines = append([]entity.DocumentLine(nil), v.Lines...)
		if v.TaskID != nil {
			id := *v.TaskID
			d.TaskID = &id
		}
		c.docs[k] = &d
	}
	for k, v := range s.tasks {
		t := *v
		if v.DocumentID != nil {
			id := *v.DocumentID
			t.DocumentID = &id
		}
		c.tasks[k] = &t
	}
	for k, v := range s.memberships {
		c.memberships[k] = v
	}
	for k, v := range s.notifications {
		c.notifications[k] = append([]string(nil), v...)
	}
	for k, v := range s.seq {
		c.seq[k] = v
	}
	return c
}

type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := m.store.clone()
	if err := fn(ctx); err != nil {
		*m.store = *snapshot
		return err
	}
	return nil
}

type fakeTicketRepo struct {
	store *fakeStore
}

func (r *fakeTicketRepo) GetByID(ctx context.Context, id int64) (*entity.Ticket, error) {
	t, ok := r.store.tickets[id]
	if !ok {
		return nil, nil
	}
	return t, nil
}

func (r *fakeTicketRepo) GetWithLines(ctx context.Context, id, companyID int64) (*entity.Ticket, error) {
	t, ok := r.store.tickets[id]
	if !ok || t.CompanyID != companyID {
		return nil, nil
	}
	return t, nil
}

func (r *fakeTicketRepo) List(ctx context.Context, params *domainRepo.TicketFilterParams) ([]entity.Ticket, int64, error) {
	var out []entity.Ticket
	for _, t := range r.store.tickets {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTicketRepo) TransitionStatus(ctx context.Context, id int64, from []enum.TicketStatus, to enum.TicketStatus) (bool, error) {
	t, ok := r.store.tickets[id]
	if !ok {
		return false, nil
	}
	for _, f := range from {
		if t.Status == f {
			t.Status = to
			return true, nil
		}
	}
	return false, nil
}

type fakeArticleRepo struct {
	store *fakeStore
}

func (r *fakeArticleRepo) GetByID(ctx context.Context, id int64) (*entity.Article, error) {
	a, ok := r.store.articles[id]
	if !ok {
		return nil, nil
	}
	return a, nil
}

func (r *fakeArticleRepo) GetByIDs(ctx context.Context, ids []int64) ([]entity.Article, error) {
	var out []entity.Article
	for _, id := range ids {
		if a, ok := r.store.articles[id]; ok {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeArticleRepo) GetOrCreateCustom(ctx context.Context) (*entity.Article, error) {
	for _, a := range r.store.articles {
		if a.Code == entity.CustomArticleCode {
			return a, nil
		}
	}
	r.store.nextArticleID++
	custom := &entity.Article{
		ID:          r.store.nextArticleID,
		Code:        entity.CustomArticleCode,
		Description: "Custom product",
		IsCustom:    true,
	}
	r.store.articles[custom.ID] = custom
	return custom, nil
}

type fakeClientRepo struct {
	store *fakeStore
}

func (r *fakeClientRepo) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	c, ok := r.store.clients[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *fakeClientRepo) List(ctx context.Context, search string, params *pagination.PaginationParams) ([]entity.Client, int64, error) {
	var out []entity.Client
	for _, c := range r.store.clients {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

type fakeCompanyRepo struct {
	store *fakeStore
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id int64) (*entity.Company, error) {
	c, ok := r.store.companies[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

type fakeDocumentRepo struct {
	store *fakeStore
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	for i := range doc.Lines {
		doc.Lines[i].DocumentID = doc.ID
		doc.Lines[i].ID = int64(i + 1)
	}
	stored := *doc
	stored.Lines = append([]entity.DocumentLine(nil), doc.Lines...)
	r.store.docs[doc.ID] = &stored
	return nil
}

func (r *fakeDocumentRepo) GetWithLines(ctx context.Context, id int64) (*entity.Document, error) {
	d, ok := r.store.docs[id]
	if !ok {
		return nil, nil
	}
	return d, nil
}

func (r *fakeDocumentRepo) List(ctx context.Context, params *domainRepo.DocumentFilterParams) ([]entity.Document, int64, error) {
	var out []entity.Document
	for _, d := range r.store.docs {
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (r *fakeDocumentRepo) DeleteWithLines(ctx context.Context, id int64) error {
	delete(r.store.docs, id)
	return nil
}

func (r *fakeDocumentRepo) CountLiveForTicket(ctx context.Context, ticketID int64) (int64, error) {
	var count int64
	for _, d := range r.store.docs {
		for _, l := range d.Lines {
			if l.TicketID != nil && *l.TicketID == ticketID {
				count++
				break
			}
		}
	}
	return count, nil
}

type fakeTaskRepo struct {
	store *fakeStore
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	t, ok := r.store.tasks[id]
	if !ok {
		return nil, nil
	}
	return t, nil
}

func (r *fakeTaskRepo) IsMember(ctx context.Context, taskID, ticketID int64) (bool, error) {
	return r.store.memberships[ticketID] == taskID, nil
}

func (r *fakeTaskRepo) SetDocument(ctx context.Context, taskID int64, documentID *int64) error {
	if t, ok := r.store.tasks[taskID]; ok {
		t.DocumentID = documentID
	}
	return nil
}

func (r *fakeTaskRepo) CountTickets(ctx context.Context, taskID int64) (int64, error) {
	var count int64
	for _, tid := range r.store.memberships {
		if tid == taskID {
			count++
		}
	}
	return count, nil
}

func (r *fakeTaskRepo) RecomputeProgress(ctx context.Context, taskID int64) error {
	task, ok := r.store.tasks[taskID]
	if !ok {
		return nil
	}
	var total, processed int64
	for ticketID, tid := range r.store.memberships {
		if tid != taskID {
			continue
		}
		total++
		if t, ok := r.store.tickets[ticketID]; ok && t.Status.Normalize() == enum.TicketStatusProcessed {
			processed++
		}
	}
	if total == 0 {
		task.Progress = 0
		return nil
	}
	task.Progress = int(100 * processed / total)
	return nil
}

func (r *fakeTaskRepo) DeleteWithNotifications(ctx context.Context, taskID int64) error {
	delete(r.store.tasks, taskID)
	delete(r.store.notifications, taskID)
	for ticketID, tid := range r.store.memberships {
		if tid == taskID {
			delete(r.store.memberships, ticketID)
		}
	}
	return nil
}

type fakeSequenceRepo struct {
	store *fakeStore
}

func (r *fakeSequenceRepo) Next(ctx context.Context, name string) (int64, error) {
	r.store.seq[name]++
	return r.store.seq[name], nil
}
