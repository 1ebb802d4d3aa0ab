package services

import (
	"math"

	"github.com/ghuser/voiceshop/services/shop/domain"
	"github.com/ghuser/voiceshop/services/shop/domain/models"
)

// PriceLineItems validates every request against the catalog and returns the
// priced line items with their sum. The first invalid request aborts with a
// *domain.LineItemError; nothing is returned alongside an error.
func PriceLineItems(catalog *Catalog, reqs []models.LineItemRequest) ([]models.LineItem, int64, error) {
	if len(reqs) == 0 {
		return nil, 0, domain.ErrEmptyOrder
	}

	items := make([]models.LineItem, 0, len(reqs))
	var total int64
	for i, req := range reqs {
		item, err := priceLineItem(catalog, i, req)
		if err != nil {
			return nil, 0, err
		}
		if total > math.MaxInt64-item.LineTotal {
			return nil, 0, &domain.LineItemError{
				Index:       i,
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Size:        item.Size,
				Err:         domain.ErrInvalidQuantity,
			}
		}
		items = append(items, item)
		total += item.LineTotal
	}
	return items, total, nil
}

func priceLineItem(catalog *Catalog, index int, req models.LineItemRequest) (models.LineItem, error) {
	reject := func(p models.Product, err error) (models.LineItem, error) {
		return models.LineItem{}, &domain.LineItemError{
			Index:       index,
			ProductID:   req.ProductID,
			ProductName: p.Name,
			Size:        req.Size,
			Sizes:       p.Sizes,
			Err:         err,
		}
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	product, ok := catalog.Find(req.ProductID)
	if !ok {
		return reject(models.Product{}, domain.ErrProductNotFound)
	}
	// Prices are positive, so the division bounds price*quantity to int64.
	if quantity < 0 || int64(quantity) > math.MaxInt64/product.Price {
		return reject(product, domain.ErrInvalidQuantity)
	}
	if product.HasSizes() && req.Size == "" {
		return reject(product, domain.ErrMissingSize)
	}
	if req.Size != "" && !product.OffersSize(req.Size) {
		return reject(product, domain.ErrInvalidSize)
	}

	return models.LineItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		Size:        req.Size,
		UnitPrice:   product.Price,
		LineTotal:   product.Price * int64(quantity),
	}, nil
}
