package logic

import (
	"github.com/shopfabric/backend/pkg/money"
	"github.com/shopfabric/backend/services/catalog/internal/models"
	"github.com/shopfabric/backend/services/catalog/internal/types"
)

func toProductView(p *models.Product) types.ProductView {
	return types.ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       money.FromCents(p.PriceCents).String(),
		Inventory:   p.Inventory,
	}
}
