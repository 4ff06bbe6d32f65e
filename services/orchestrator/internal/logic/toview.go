package logic

import (
	"time"

	"github.com/shopfabric/backend/pkg/money"
	"github.com/shopfabric/backend/services/orchestrator/internal/models"
	"github.com/shopfabric/backend/services/orchestrator/internal/types"
)

func toOrderView(order *models.Order, lines []*models.OrderLine) types.OrderView {
	lineViews := make([]types.OrderLineView, 0, len(lines))
	for _, l := range lines {
		lineViews = append(lineViews, types.OrderLineView{
			ProductID:       l.ProductID,
			Quantity:        l.Quantity,
			PriceAtPurchase: money.FromCents(l.PriceAtPurchase).String(),
		})
	}

	return types.OrderView{
		ID:        order.ID,
		Total:     money.FromCents(order.TotalCents).String(),
		Status:    string(order.Status),
		Lines:     lineViews,
		CreatedAt: order.CreatedAt.Format(time.RFC3339),
	}
}

func toOrderViewFromRows(order *models.Order, lines []models.OrderLine) types.OrderView {
	ptrLines := make([]*models.OrderLine, len(lines))
	for i := range lines {
		ptrLines[i] = &lines[i]
	}
	return toOrderView(order, ptrLines)
}
