package sales

import "errors"

// ErrNotFound is returned when a sale with the given ID is not found.
var ErrNotFound = errors.New("sale not found")

// ErrEmptyID is returned when trying to store a sale with an empty ID.
var ErrEmptyID = errors.New("empty sale ID")

// Storage is the main interface for the sales storage layer. Sales are
// never deleted; they are an audit record.
type Storage interface {
	Set(sale *Sale) error
	Read(id string) (*Sale, error)
	GetAll() ([]*Sale, error)
}

// LocalStorage provides an in-memory implementation for storing sales.
// GetAll returns sales in insertion order so admin listings stay stable.
type LocalStorage struct {
	m     map[string]*Sale
	order []string
}

// NewLocalStorage instantiates a new LocalStorage with an empty index.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{
		m: map[string]*Sale{},
	}
}

// Set stores or replaces a sale. Returns ErrEmptyID if the sale has an
// empty ID.
func (l *LocalStorage) Set(sale *Sale) error {
	if sale.ID == "" {
		return ErrEmptyID
	}
	if _, exists := l.m[sale.ID]; !exists {
		l.order = append(l.order, sale.ID)
	}
	l.m[sale.ID] = sale
	return nil
}

// Read retrieves a sale by ID. Returns ErrNotFound if the sale is not found.
func (l *LocalStorage) Read(id string) (*Sale, error) {
	s, ok := l.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// GetAll retrieves all sales in the order they were first stored.
func (l *LocalStorage) GetAll() ([]*Sale, error) {
	sales := make([]*Sale, 0, len(l.m))
	for _, id := range l.order {
		sales = append(sales, l.m[id])
	}
	return sales, nil
}
