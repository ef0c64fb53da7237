package memory

import (
	"context"
	"sync"
	"time"

	"portal-learning/internal/domain"
)

// ContentStore is an in-memory implementation of app.ContentStore, used by
// the no-database serve mode and transport tests.
type ContentStore struct {
	mu       sync.RWMutex
	nextID   int64
	clock    func() time.Time
	contacts map[int64]domain.Contact
	faq      map[int64]domain.FaqEntry
	links    map[int64]domain.Link
	pages    map[int64]domain.Page
	callLogs []domain.CallLog
}

func NewContentStore() *ContentStore {
	return &ContentStore{
		nextID:   1,
		clock:    time.Now,
		contacts: make(map[int64]domain.Contact),
		faq:      make(map[int64]domain.FaqEntry),
		links:    make(map[int64]domain.Link),
		pages:    make(map[int64]domain.Page),
	}
}

func (s *ContentStore) ListContacts(_ context.Context) ([]domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		out = append(out, c)
	}
	return out, nil
}

func (s *ContentStore) CreateContact(_ context.Context, contact domain.Contact) (domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contact.ID = s.nextID
	s.nextID++
	s.contacts[contact.ID] = contact
	return contact, nil
}

func (s *ContentStore) UpdateContact(_ context.Context, contact domain.Contact) (domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[contact.ID]; !ok {
		return domain.Contact{}, domain.ErrNotFound
	}
	s.contacts[contact.ID] = contact
	return contact, nil
}

func (s *ContentStore) DeleteContact(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contacts, id)
	return nil
}

func (s *ContentStore) ListFaqEntries(_ context.Context) ([]domain.FaqEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.FaqEntry, 0, len(s.faq))
	for _, e := range s.faq {
		out = append(out, e)
	}
	return out, nil
}

func (s *ContentStore) CreateFaqEntry(_ context.Context, entry domain.FaqEntry) (domain.FaqEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = s.nextID
	s.nextID++
	s.faq[entry.ID] = entry
	return entry, nil
}

func (s *ContentStore) UpdateFaqEntry(_ context.Context, entry domain.FaqEntry) (domain.FaqEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.faq[entry.ID]; !ok {
		return domain.FaqEntry{}, domain.ErrNotFound
	}
	s.faq[entry.ID] = entry
	return entry, nil
}

func (s *ContentStore) DeleteFaqEntry(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.faq, id)
	return nil
}

func (s *ContentStore) ListLinks(_ context.Context) ([]domain.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Link, 0, len(s.links))
	for _, l := range s.links {
		out = append(out, l)
	}
	return out, nil
}

func (s *ContentStore) CreateLink(_ context.Context, link domain.Link) (domain.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	link.ID = s.nextID
	s.nextID++
	s.links[link.ID] = link
	return link, nil
}

func (s *ContentStore) UpdateLink(_ context.Context, link domain.Link) (domain.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.links[link.ID]; !ok {
		return domain.Link{}, domain.ErrNotFound
	}
	s.links[link.ID] = link
	return link, nil
}

func (s *ContentStore) DeleteLink(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.links, id)
	return nil
}

func (s *ContentStore) ListPages(_ context.Context) ([]domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Page, 0, len(s.pages))
	for _, p := range s.pages {
		out = append(out, p)
	}
	return out, nil
}

func (s *ContentStore) CreatePage(_ context.Context, page domain.Page) (domain.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	page.ID = s.nextID
	s.nextID++
	s.pages[page.ID] = page
	return page, nil
}

func (s *ContentStore) UpdatePage(_ context.Context, page domain.Page) (domain.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[page.ID]; !ok {
		return domain.Page{}, domain.ErrNotFound
	}
	s.pages[page.ID] = page
	return page, nil
}

func (s *ContentStore) DeletePage(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pages, id)
	return nil
}

func (s *ContentStore) CreateCallLog(_ context.Context, entry domain.CallLog) (domain.CallLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = s.nextID
	s.nextID++
	entry.CreatedAt = s.clock()
	s.callLogs = append(s.callLogs, entry)
	return entry, nil
}

func (s *ContentStore) ListCallLogsByUser(_ context.Context, userID int64) ([]domain.CallLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CallLog, 0)
	for _, l := range s.callLogs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}
