package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	caterrors "github.com/npodsekin/gocatalog/internal/errors"
	"github.com/npodsekin/gocatalog/internal/store"
	"github.com/shopspring/decimal"
)

// ProductService defines the product data lifecycle against the document
// store: one unfiltered full-collection fetch, single reads, and the three
// mutations. Filtering never happens here; it is a local projection owned by
// the list view (see Filter).
type ProductService interface {
	// FindAll returns the entire products collection in the store's order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// FindByID retrieves a single product by its identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id string) (*Product, error)

	// Create stores a new product; the store assigns the ID.
	Create(ctx context.Context, draft ProductDraft) (*Product, error)

	// Update overwrites all three fields of the product with the given ID.
	// The fields are rewritten together; there is no partial-field diffing.
	Update(ctx context.Context, id string, draft ProductDraft) error

	// DeleteByID removes a product by its ID.
	DeleteByID(ctx context.Context, id string) error
}

// ProductDraft is the uncommitted field set submitted by the add and edit
// forms. Price has already been coerced from form text to a decimal; that
// coercion happens exactly once, at submission time.
type ProductDraft struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category Category        `json:"category"`
}

// Service implements ProductService over a DocumentStore.
type Service struct {
	store store.DocumentStore
}

// NewService creates a new ProductService backed by the given document store.
func NewService(s store.DocumentStore) *Service {
	return &Service{store: s}
}

// FindAll fetches the whole products collection.
func (s *Service) FindAll(ctx context.Context) ([]Product, error) {
	docs, err := s.store.ListDocuments(ctx, Collection)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	products := make([]Product, 0, len(docs))
	for _, doc := range docs {
		p, err := fromFields(doc.ID, doc.Fields)
		if err != nil {
			return nil, fmt.Errorf("failed to decode product %s: %w", doc.ID, err)
		}
		products = append(products, *p)
	}
	return products, nil
}

// FindByID fetches one product. A missing document maps to ErrProductNotFound.
func (s *Service) FindByID(ctx context.Context, id string) (*Product, error) {
	fields, found, err := s.store.GetDocument(ctx, Collection, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}
	if !found {
		return nil, caterrors.ErrProductNotFound
	}
	p, err := fromFields(id, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to decode product %s: %w", id, err)
	}
	return p, nil
}

// Create writes a new product document and returns it with the assigned ID.
func (s *Service) Create(ctx context.Context, draft ProductDraft) (*Product, error) {
	fields, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product: %w", err)
	}
	id, err := s.store.CreateDocument(ctx, Collection, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &Product{ID: id, Name: draft.Name, Price: draft.Price, Category: draft.Category}, nil
}

// Update rewrites the three product fields for the captured ID.
func (s *Service) Update(ctx context.Context, id string, draft ProductDraft) error {
	fields, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode product: %w", err)
	}
	if err := s.store.UpdateDocument(ctx, Collection, id, fields); err != nil {
		return fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}
	return nil
}

// DeleteByID removes a product document.
func (s *Service) DeleteByID(ctx context.Context, id string) error {
	if err := s.store.DeleteDocument(ctx, Collection, id); err != nil {
		return fmt.Errorf("failed to delete product with ID %s: %w", id, err)
	}
	return nil
}

// fromFields decodes a stored field object into a Product.
func fromFields(id string, fields json.RawMessage) (*Product, error) {
	var p Product
	if err := json.Unmarshal(fields, &p); err != nil {
		return nil, err
	}
	p.ID = id
	return &p, nil
}
