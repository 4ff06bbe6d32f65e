package logic

import (
	"context"
	"strconv"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/catalogpb"
	"github.com/shopfabric/backend/services/catalog/internal/repository"
	"github.com/shopfabric/backend/services/catalog/internal/svc"
)

type CheckAvailabilityLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewCheckAvailabilityLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CheckAvailabilityLogic {
	return &CheckAvailabilityLogic{ctx: ctx, svcCtx: svcCtx, Logger: logx.WithContext(ctx)}
}

// CheckAvailability reports whether each line's requested quantity is
// currently in stock. It never mutates inventory — decrementing at
// order creation was weighed and rejected in favor of a later,
// unimplemented confirm-transition decrement point.
func (l *CheckAvailabilityLogic) CheckAvailability(req *catalogpb.CheckAvailabilityRequest) (*catalogpb.CheckAvailabilityResponse, error) {
	lines := make([]catalogpb.LineAvailability, 0, len(req.Lines))
	allAvailable := true

	for _, line := range req.Lines {
		id, err := strconv.ParseInt(line.ProductID, 10, 64)
		if err != nil {
			lines = append(lines, catalogpb.LineAvailability{ProductID: line.ProductID, Available: false})
			allAvailable = false
			continue
		}

		p, err := l.svcCtx.Products.GetByID(l.ctx, id)
		if err != nil {
			if err == repository.ErrNotFound {
				lines = append(lines, catalogpb.LineAvailability{ProductID: line.ProductID, Available: false})
				allAvailable = false
				continue
			}
			return nil, err
		}

		available := p.Active && p.Inventory >= line.Quantity
		if !available {
			allAvailable = false
		}
		lines = append(lines, catalogpb.LineAvailability{
			ProductID: line.ProductID,
			Available: available,
			InStock:   p.Inventory,
		})
	}

	return &catalogpb.CheckAvailabilityResponse{Lines: lines, AllAvailable: allAvailable}, nil
}
