package workspace

import (
	"context"

	"ledger-backend/internal/models"
	"ledger-backend/internal/services"
	"ledger-backend/internal/session"
)

// ClientList is the client index: the full collection plus the current filter.
type ClientList struct {
	store   Store
	session session.Session
	clients *Collection[models.Client]
	query   string

	busy
}

func NewClientList(store Store, sess session.Session) *ClientList {
	return &ClientList{store: store, session: sess, clients: NewCollection(clientID, nil)}
}

// Load replaces the collection with every client from the store.
func (l *ClientList) Load(ctx context.Context) error {
	if err := l.enter(); err != nil {
		return err
	}
	defer l.leave()

	clients, err := l.store.ListClients(ctx, "")
	if err != nil {
		return err
	}
	l.clients = NewCollection(clientID, clients)
	return nil
}

func (l *ClientList) SetQuery(q string) { l.query = q }

// Visible is the collection filtered by the current query.
func (l *ClientList) Visible() []models.Client {
	return FilterClients(l.clients.Items(), l.query)
}

func (l *ClientList) All() []models.Client { return l.clients.Items() }

func (l *ClientList) Create(ctx context.Context, req *models.CreateClientRequest) (*models.Client, error) {
	if !l.session.CanManageClients() {
		return nil, ErrForbidden
	}
	if err := services.ValidateClient(req); err != nil {
		return nil, err
	}
	if err := l.enter(); err != nil {
		return nil, err
	}
	defer l.leave()

	c, err := l.store.CreateClient(ctx, req)
	if err != nil {
		return nil, err
	}
	l.clients.Prepend(*c)
	return c, nil
}

// Delete drops the client locally only once the store confirms every step.
func (l *ClientList) Delete(ctx context.Context, id int) error {
	if !l.session.CanManageClients() {
		return ErrForbidden
	}
	if err := l.enter(); err != nil {
		return err
	}
	defer l.leave()

	if _, err := l.store.DeleteClient(ctx, id); err != nil {
		return err
	}
	l.clients.Remove(id)
	return nil
}
