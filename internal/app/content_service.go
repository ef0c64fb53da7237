package app

import (
	"context"
	"fmt"

	"portal-learning/internal/domain"
)

// ContentStore persists the portal's curated records: contacts, FAQ entries,
// useful links, informational pages and call logs.
type ContentStore interface {
	ListContacts(ctx context.Context) ([]domain.Contact, error)
	CreateContact(ctx context.Context, contact domain.Contact) (domain.Contact, error)
	UpdateContact(ctx context.Context, contact domain.Contact) (domain.Contact, error)
	DeleteContact(ctx context.Context, id int64) error

	ListFaqEntries(ctx context.Context) ([]domain.FaqEntry, error)
	CreateFaqEntry(ctx context.Context, entry domain.FaqEntry) (domain.FaqEntry, error)
	UpdateFaqEntry(ctx context.Context, entry domain.FaqEntry) (domain.FaqEntry, error)
	DeleteFaqEntry(ctx context.Context, id int64) error

	ListLinks(ctx context.Context) ([]domain.Link, error)
	CreateLink(ctx context.Context, link domain.Link) (domain.Link, error)
	UpdateLink(ctx context.Context, link domain.Link) (domain.Link, error)
	DeleteLink(ctx context.Context, id int64) error

	ListPages(ctx context.Context) ([]domain.Page, error)
	CreatePage(ctx context.Context, page domain.Page) (domain.Page, error)
	UpdatePage(ctx context.Context, page domain.Page) (domain.Page, error)
	DeletePage(ctx context.Context, id int64) error

	CreateCallLog(ctx context.Context, log domain.CallLog) (domain.CallLog, error)
	ListCallLogsByUser(ctx context.Context, userID int64) ([]domain.CallLog, error)
}

// ContentService fronts the content store with payload validation. The records
// themselves are plain data; administrators curate everything except call
// logs, which belong to the agent who handled the call.
type ContentService struct {
	store ContentStore
}

func NewContentService(store ContentStore) *ContentService {
	return &ContentService{store: store}
}

func (s *ContentService) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	return s.store.ListContacts(ctx)
}

func (s *ContentService) CreateContact(ctx context.Context, contact domain.Contact) (domain.Contact, error) {
	if contact.Name == "" {
		return domain.Contact{}, fmt.Errorf("%w: contact name is required", domain.ErrValidation)
	}
	return s.store.CreateContact(ctx, contact)
}

func (s *ContentService) UpdateContact(ctx context.Context, contact domain.Contact) (domain.Contact, error) {
	if contact.Name == "" {
		return domain.Contact{}, fmt.Errorf("%w: contact name is required", domain.ErrValidation)
	}
	return s.store.UpdateContact(ctx, contact)
}

func (s *ContentService) DeleteContact(ctx context.Context, id int64) error {
	return s.store.DeleteContact(ctx, id)
}

func (s *ContentService) ListFaqEntries(ctx context.Context) ([]domain.FaqEntry, error) {
	return s.store.ListFaqEntries(ctx)
}

func (s *ContentService) CreateFaqEntry(ctx context.Context, entry domain.FaqEntry) (domain.FaqEntry, error) {
	if err := validateFaq(entry); err != nil {
		return domain.FaqEntry{}, err
	}
	return s.store.CreateFaqEntry(ctx, entry)
}

func (s *ContentService) UpdateFaqEntry(ctx context.Context, entry domain.FaqEntry) (domain.FaqEntry, error) {
	if err := validateFaq(entry); err != nil {
		return domain.FaqEntry{}, err
	}
	return s.store.UpdateFaqEntry(ctx, entry)
}

func (s *ContentService) DeleteFaqEntry(ctx context.Context, id int64) error {
	return s.store.DeleteFaqEntry(ctx, id)
}

func (s *ContentService) ListLinks(ctx context.Context) ([]domain.Link, error) {
	return s.store.ListLinks(ctx)
}

func (s *ContentService) CreateLink(ctx context.Context, link domain.Link) (domain.Link, error) {
	if link.Title == "" || link.URL == "" {
		return domain.Link{}, fmt.Errorf("%w: link title and url are required", domain.ErrValidation)
	}
	return s.store.CreateLink(ctx, link)
}

func (s *ContentService) UpdateLink(ctx context.Context, link domain.Link) (domain.Link, error) {
	if link.Title == "" || link.URL == "" {
		return domain.Link{}, fmt.Errorf("%w: link title and url are required", domain.ErrValidation)
	}
	return s.store.UpdateLink(ctx, link)
}

func (s *ContentService) DeleteLink(ctx context.Context, id int64) error {
	return s.store.DeleteLink(ctx, id)
}

func (s *ContentService) ListPages(ctx context.Context) ([]domain.Page, error) {
	return s.store.ListPages(ctx)
}

func (s *ContentService) CreatePage(ctx context.Context, page domain.Page) (domain.Page, error) {
	if page.Title == "" || page.Slug == "" {
		return domain.Page{}, fmt.Errorf("%w: page title and slug are required", domain.ErrValidation)
	}
	return s.store.CreatePage(ctx, page)
}

func (s *ContentService) UpdatePage(ctx context.Context, page domain.Page) (domain.Page, error) {
	if page.Title == "" || page.Slug == "" {
		return domain.Page{}, fmt.Errorf("%w: page title and slug are required", domain.ErrValidation)
	}
	return s.store.UpdatePage(ctx, page)
}

func (s *ContentService) DeletePage(ctx context.Context, id int64) error {
	return s.store.DeletePage(ctx, id)
}

// LogCall records a handled call for the calling agent.
func (s *ContentService) LogCall(ctx context.Context, userID int64, entry domain.CallLog) (domain.CallLog, error) {
	if entry.Duration < 0 {
		return domain.CallLog{}, fmt.Errorf("%w: call duration cannot be negative", domain.ErrValidation)
	}
	if entry.Outcome == "" {
		return domain.CallLog{}, fmt.Errorf("%w: call outcome is required", domain.ErrValidation)
	}
	entry.UserID = userID
	return s.store.CreateCallLog(ctx, entry)
}

// CallLogs lists the calling agent's own call history.
func (s *ContentService) CallLogs(ctx context.Context, userID int64) ([]domain.CallLog, error) {
	return s.store.ListCallLogsByUser(ctx, userID)
}

func validateFaq(entry domain.FaqEntry) error {
	if entry.Question == "" || entry.Answer == "" {
		return fmt.Errorf("%w: faq question and answer are required", domain.ErrValidation)
	}
	return nil
}
