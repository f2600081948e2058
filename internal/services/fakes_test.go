package services

import (
	"context"
	"errors"
	"slices"
	"sync"

	"ledger-backend/internal/models"
	"ledger-backend/internal/repositories"
	"ledger-backend/internal/session"
)

var errBoom = errors.New("boom")

type memClients struct {
	mu      sync.Mutex
	rows    []models.Client
	next    int
	failDel error
}

func (m *memClients) Create(_ context.Context, req *models.CreateClientRequest) (*models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	c := models.Client{ID: m.next, FullName: req.FullName, PhoneNumber: req.PhoneNumber, Address: req.Address}
	m.rows = append(m.rows, c)
	return &c, nil
}

func (m *memClients) Get(_ context.Context, id int) (*models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.rows {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memClients) List(_ context.Context, _ string) ([]models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.rows), nil
}

func (m *memClients) Update(_ context.Context, id int, req *models.UpdateClientRequest) (*models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].FullName, m.rows[i].PhoneNumber, m.rows[i].Address = req.FullName, req.PhoneNumber, req.Address
			c := m.rows[i]
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memClients) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDel != nil {
		return m.failDel
	}
	n := len(m.rows)
	m.rows = slices.DeleteFunc(m.rows, func(c models.Client) bool { return c.ID == id })
	if len(m.rows) == n {
		return repositories.ErrNotFound
	}
	return nil
}

// cascadeClients adds an all-or-nothing delete on top of memClients.
type cascadeClients struct {
	*memClients
	result repositories.CascadeResult
	err    error
	calls  int
}

func (c *cascadeClients) DeleteCascade(ctx context.Context, id int) (repositories.CascadeResult, error) {
	c.calls++
	if c.err != nil {
		return repositories.CascadeResult{}, c.err
	}
	if err := c.memClients.Delete(ctx, id); err != nil {
		return repositories.CascadeResult{}, err
	}
	return c.result, nil
}

type memPayments struct {
	mu      sync.Mutex
	rows    []models.Payment
	next    int
	total   float64
	failDel error
	pages   []int // offsets requested
}

func (m *memPayments) Create(_ context.Context, p *models.Payment) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	cp := *p
	cp.ID = m.next
	m.rows = append(m.rows, cp)
	return &cp, nil
}

func (m *memPayments) Get(_ context.Context, id int) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.rows {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memPayments) ListByClient(_ context.Context, clientID int) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Payment
	for _, p := range m.rows {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPayments) Update(_ context.Context, p *models.Payment) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == p.ID {
			p.ClientID = m.rows[i].ClientID
			m.rows[i] = *p
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memPayments) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.rows)
	m.rows = slices.DeleteFunc(m.rows, func(p models.Payment) bool { return p.ID == id })
	if len(m.rows) == n {
		return repositories.ErrNotFound
	}
	return nil
}

func (m *memPayments) DeleteByClient(_ context.Context, clientID int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDel != nil {
		return 0, m.failDel
	}
	n := len(m.rows)
	m.rows = slices.DeleteFunc(m.rows, func(p models.Payment) bool { return p.ClientID == clientID })
	return int64(n - len(m.rows)), nil
}

func (m *memPayments) ListPage(_ context.Context, offset, limit int) ([]models.Payment, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages = append(m.pages, offset)
	return window(m.rows, offset, limit), len(m.rows), nil
}

func (m *memPayments) Total(context.Context) (float64, error) { return m.total, nil }

type memPurchases struct {
	mu      sync.Mutex
	rows    []models.Purchase
	next    int
	total   float64
	failDel error
}

func (m *memPurchases) Create(_ context.Context, p *models.Purchase) (*models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	cp := *p
	cp.ID = m.next
	m.rows = append(m.rows, cp)
	return &cp, nil
}

func (m *memPurchases) Get(_ context.Context, id int) (*models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.rows {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memPurchases) ListByClient(_ context.Context, clientID int) ([]models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Purchase
	for _, p := range m.rows {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPurchases) Update(_ context.Context, p *models.Purchase) (*models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == p.ID {
			p.ClientID = m.rows[i].ClientID
			m.rows[i] = *p
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memPurchases) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.rows)
	m.rows = slices.DeleteFunc(m.rows, func(p models.Purchase) bool { return p.ID == id })
	if len(m.rows) == n {
		return repositories.ErrNotFound
	}
	return nil
}

func (m *memPurchases) DeleteByClient(_ context.Context, clientID int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDel != nil {
		return 0, m.failDel
	}
	n := len(m.rows)
	m.rows = slices.DeleteFunc(m.rows, func(p models.Purchase) bool { return p.ClientID == clientID })
	return int64(n - len(m.rows)), nil
}

func (m *memPurchases) ListPage(_ context.Context, offset, limit int) ([]models.Purchase, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return window(m.rows, offset, limit), len(m.rows), nil
}

func (m *memPurchases) Total(context.Context) (float64, error) { return m.total, nil }

func window[T any](rows []T, offset, limit int) []T {
	if offset >= len(rows) {
		return nil
	}
	return slices.Clone(rows[offset:min(offset+limit, len(rows))])
}

type memLabels struct {
	rows map[models.LabelKind][]models.Label
	next int
}

func (m *memLabels) List(_ context.Context, kind models.LabelKind) ([]models.Label, error) {
	return m.rows[kind], nil
}

func (m *memLabels) Create(_ context.Context, kind models.LabelKind, name string) (*models.Label, error) {
	if m.rows == nil {
		m.rows = map[models.LabelKind][]models.Label{}
	}
	for _, l := range m.rows[kind] {
		if l.Name == name {
			return &l, nil
		}
	}
	m.next++
	l := models.Label{ID: m.next, Kind: kind, Name: name}
	m.rows[kind] = append(m.rows[kind], l)
	return &l, nil
}

type memUsers map[string]models.User

func (m memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := m[username]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

type stubTokens struct{ last session.Session }

func (s *stubTokens) GenerateToken(sess session.Session) (string, error) {
	s.last = sess
	return "token-" + sess.Username, nil
}

type stubArchive struct {
	keys []string
	err  error
}

func (s *stubArchive) Put(_ context.Context, clientID int, fileName string, _ []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	key := fileName
	s.keys = append(s.keys, key)
	return key, nil
}

func ptr[T any](v T) *T { return &v }
