package application

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/logger"
	"github.com/wyfcoding/talkstoque/pkg/utils"
)

// CreateProductCommand 创建商品
type CreateProductCommand struct {
	Name        string           `json:"nome" binding:"required"`
	Description *string          `json:"descricao"`
	Price       *decimal.Decimal `json:"preco" binding:"required"`
	Stock       *int             `json:"quantidade_estoque" binding:"required"`
	Category    *string          `json:"categoria"`
}

// UpdateProductCommand 商品部分更新，显式 null 清空可空字段
type UpdateProductCommand struct {
	Name        *string                 `json:"nome"`
	Description domain.Optional[string] `json:"descricao"`
	Price       *decimal.Decimal        `json:"preco"`
	Stock       *int                    `json:"quantidade_estoque"`
	Category    domain.Optional[string] `json:"categoria"`
}

// ListQuery 通用分页与搜索参数
type ListQuery struct {
	Skip   int    `form:"skip"`
	Limit  *int   `form:"limit"`
	Search string `form:"search"`
}

// ProductService 商品服务
type ProductService struct {
	tx        domain.TxManager
	products  domain.ProductRepository
	items     domain.OrderItemRepository
	movements domain.StockMovementRepository
}

// NewProductService 创建商品服务
func NewProductService(
	tx domain.TxManager,
	products domain.ProductRepository,
	items domain.OrderItemRepository,
	movements domain.StockMovementRepository,
) *ProductService {
	return &ProductService{tx: tx, products: products, items: items, movements: movements}
}

// CreateProduct 创建商品
func (s *ProductService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (*ProductDTO, error) {
	price, err := required("preco", cmd.Price)
	if err != nil {
		return nil, err
	}
	stock, err := required("quantidade_estoque", cmd.Stock)
	if err != nil {
		return nil, err
	}
	p, err := domain.NewProduct(cmd.Name, cmd.Description, price, stock, cmd.Category)
	if err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, domain.AsStorageConflict("criar produto", err)
	}
	return toProductDTO(p), nil
}

// GetProduct 获取商品
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*ProductDTO, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound(domain.EntityProduct, id)
	}
	return toProductDTO(p), nil
}

// ListProducts 列出商品，search 匹配名称、描述与分类
func (s *ProductService) ListProducts(ctx context.Context, query ListQuery) ([]*ProductDTO, error) {
	w := utils.NewWindow(query.Skip, query.Limit)
	products, err := s.products.List(ctx, query.Search, w.Skip, w.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]*ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDTO(p))
	}
	return out, nil
}

// UpdateProduct 部分更新商品
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, cmd UpdateProductCommand) (*ProductDTO, error) {
	var p *domain.Product
	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		if p, err = s.products.GetForUpdate(txCtx, id); err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound(domain.EntityProduct, id)
		}
		if err := p.Apply(domain.ProductPatch{
			Name:        cmd.Name,
			Description: cmd.Description,
			Price:       cmd.Price,
			Stock:       cmd.Stock,
			Category:    cmd.Category,
		}); err != nil {
			return err
		}
		return s.products.Update(txCtx, p)
	})
	if err != nil {
		return nil, domain.AsStorageConflict("atualizar produto", err)
	}
	return toProductDTO(p), nil
}

// DeleteProduct 删除商品及引用它的订单行，不归还库存
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		p, err := s.products.Get(txCtx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound(domain.EntityProduct, id)
		}
		removed, err := s.items.DeleteByProductID(txCtx, id)
		if err != nil {
			return err
		}
		if removed > 0 {
			logger.Info(txCtx, "order items removed with product", "produto_id", id, "itens", removed)
		}
		return s.products.Delete(txCtx, id)
	})
	return domain.AsStorageConflict("deletar produto", err)
}

// ListMovements 列出商品库存流水
func (s *ProductService) ListMovements(ctx context.Context, productID int64, skip int, limit *int) ([]*StockMovementDTO, error) {
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound(domain.EntityProduct, productID)
	}
	w := utils.NewWindow(skip, limit)
	movements, err := s.movements.ListByProduct(ctx, productID, w.Skip, w.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]*StockMovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, toStockMovementDTO(m))
	}
	return out, nil
}
