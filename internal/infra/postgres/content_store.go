package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"portal-learning/internal/domain"
)

// ContentStore persists the portal's curated records in Postgres.
type ContentStore struct {
	db *bun.DB
}

func NewContentStore(db *bun.DB) *ContentStore {
	return &ContentStore{db: db}
}

func (s *ContentStore) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	var rows []contactRow
	if err := s.db.NewSelect().Model(&rows).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	contacts := make([]domain.Contact, 0, len(rows))
	for _, r := range rows {
		contacts = append(contacts, domain.Contact{ID: r.ID, Name: r.Name, Phone: r.Phone, Email: r.Email, Address: r.Address})
	}
	return contacts, nil
}

func (s *ContentStore) CreateContact(ctx context.Context, contact domain.Contact) (domain.Contact, error) {
	row := contactRow{Name: contact.Name, Phone: contact.Phone, Email: contact.Email, Address: contact.Address}
	if _, err := s.db.NewInsert().Model(&row).Returning("id").Exec(ctx); err != nil {
		return domain.Contact{}, fmt.Errorf("create contact: %w", err)
	}
	contact.ID = row.ID
	return contact, nil
}

func (s *ContentStore) UpdateContact(ctx context.Context, contact domain.Contact) (domain.Contact, error) {
	row := contactRow{ID: contact.ID, Name: contact.Name, Phone: contact.Phone, Email: contact.Email, Address: contact.Address}
	res, err := s.db.NewUpdate().Model(&row).WherePK().Exec(ctx)
	if err != nil {
		return domain.Contact{}, fmt.Errorf("update contact: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.Contact{}, domain.ErrNotFound
	}
	return contact, nil
}

func (s *ContentStore) DeleteContact(ctx context.Context, id int64) error {
	if _, err := s.db.NewDelete().Model((*contactRow)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

func (s *ContentStore) ListFaqEntries(ctx context.Context) ([]domain.FaqEntry, error) {
	var rows []faqRow
	if err := s.db.NewSelect().Model(&rows).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list faq: %w", err)
	}
	entries := make([]domain.FaqEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, domain.FaqEntry{ID: r.ID, Question: r.Question, Answer: r.Answer, Category: r.Category})
	}
	return entries, nil
}

func (s *ContentStore) CreateFaqEntry(ctx context.Context, entry domain.FaqEntry) (domain.FaqEntry, error) {
	row := faqRow{Question: entry.Question, Answer: entry.Answer, Category: entry.Category}
	if _, err := s.db.NewInsert().Model(&row).Returning("id").Exec(ctx); err != nil {
		return domain.FaqEntry{}, fmt.Errorf("create faq entry: %w", err)
	}
	entry.ID = row.ID
	return entry, nil
}

func (s *ContentStore) UpdateFaqEntry(ctx context.Context, entry domain.FaqEntry) (domain.FaqEntry, error) {
	row := faqRow{ID: entry.ID, Question: entry.Question, Answer: entry.Answer, Category: entry.Category}
	res, err := s.db.NewUpdate().Model(&row).WherePK().Exec(ctx)
	if err != nil {
		return domain.FaqEntry{}, fmt.Errorf("update faq entry: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.FaqEntry{}, domain.ErrNotFound
	}
	return entry, nil
}

func (s *ContentStore) DeleteFaqEntry(ctx context.Context, id int64) error {
	if _, err := s.db.NewDelete().Model((*faqRow)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		return fmt.Errorf("delete faq entry: %w", err)
	}
	return nil
}

func (s *ContentStore) ListLinks(ctx context.Context) ([]domain.Link, error) {
	var rows []linkRow
	if err := s.db.NewSelect().Model(&rows).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	links := make([]domain.Link, 0, len(rows))
	for _, r := range rows {
		links = append(links, domain.Link{ID: r.ID, Title: r.Title, URL: r.URL, Description: r.Description})
	}
	return links, nil
}

func (s *ContentStore) CreateLink(ctx context.Context, link domain.Link) (domain.Link, error) {
	row := linkRow{Title: link.Title, URL: link.URL, Description: link.Description}
	if _, err := s.db.NewInsert().Model(&row).Returning("id").Exec(ctx); err != nil {
		return domain.Link{}, fmt.Errorf("create link: %w", err)
	}
	link.ID = row.ID
	return link, nil
}

func (s *ContentStore) UpdateLink(ctx context.Context, link domain.Link) (domain.Link, error) {
	row := linkRow{ID: link.ID, Title: link.Title, URL: link.URL, Description: link.Description}
	res, err := s.db.NewUpdate().Model(&row).WherePK().Exec(ctx)
	if err != nil {
		return domain.Link{}, fmt.Errorf("update link: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.Link{}, domain.ErrNotFound
	}
	return link, nil
}

func (s *ContentStore) DeleteLink(ctx context.Context, id int64) error {
	if _, err := s.db.NewDelete().Model((*linkRow)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	return nil
}

func (s *ContentStore) ListPages(ctx context.Context) ([]domain.Page, error) {
	var rows []pageRow
	if err := s.db.NewSelect().Model(&rows).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	pages := make([]domain.Page, 0, len(rows))
	for _, r := range rows {
		pages = append(pages, domain.Page{ID: r.ID, Title: r.Title, Content: r.Content, Slug: r.Slug})
	}
	return pages, nil
}

func (s *ContentStore) CreatePage(ctx context.Context, page domain.Page) (domain.Page, error) {
	row := pageRow{Title: page.Title, Content: page.Content, Slug: page.Slug}
	if _, err := s.db.NewInsert().Model(&row).Returning("id").Exec(ctx); err != nil {
		return domain.Page{}, fmt.Errorf("create page: %w", err)
	}
	page.ID = row.ID
	return page, nil
}

func (s *ContentStore) UpdatePage(ctx context.Context, page domain.Page) (domain.Page, error) {
	row := pageRow{ID: page.ID, Title: page.Title, Content: page.Content, Slug: page.Slug}
	res, err := s.db.NewUpdate().Model(&row).WherePK().Exec(ctx)
	if err != nil {
		return domain.Page{}, fmt.Errorf("update page: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.Page{}, domain.ErrNotFound
	}
	return page, nil
}

func (s *ContentStore) DeletePage(ctx context.Context, id int64) error {
	if _, err := s.db.NewDelete().Model((*pageRow)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return nil
}

func (s *ContentStore) CreateCallLog(ctx context.Context, entry domain.CallLog) (domain.CallLog, error) {
	row := callLogRow{UserID: entry.UserID, Duration: entry.Duration, Outcome: entry.Outcome, Notes: entry.Notes}
	if _, err := s.db.NewInsert().Model(&row).Returning("id, created_at").Exec(ctx); err != nil {
		return domain.CallLog{}, fmt.Errorf("create call log: %w", err)
	}
	entry.ID = row.ID
	entry.CreatedAt = row.CreatedAt
	return entry, nil
}

func (s *ContentStore) ListCallLogsByUser(ctx context.Context, userID int64) ([]domain.CallLog, error) {
	var rows []callLogRow
	err := s.db.NewSelect().Model(&rows).Where("user_id = ?", userID).Order("created_at DESC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list call logs: %w", err)
	}
	logs := make([]domain.CallLog, 0, len(rows))
	for _, r := range rows {
		logs = append(logs, domain.CallLog{ID: r.ID, UserID: r.UserID, Duration: r.Duration, Outcome: r.Outcome, Notes: r.Notes, CreatedAt: r.CreatedAt})
	}
	return logs, nil
}
