package application

import (
	"context"

	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/logger"
	"github.com/wyfcoding/talkstoque/pkg/utils"
)

// CreateClientCommand 创建客户
type CreateClientCommand struct {
	Name    string  `json:"nome" binding:"required"`
	Email   *string `json:"email"`
	Phone   *string `json:"telefone"`
	Address *string `json:"endereco"`
}

// UpdateClientCommand 客户部分更新
type UpdateClientCommand struct {
	Name    *string                 `json:"nome"`
	Email   domain.Optional[string] `json:"email"`
	Phone   domain.Optional[string] `json:"telefone"`
	Address domain.Optional[string] `json:"endereco"`
}

// ClientService 客户服务，删除时经订单聚合逐单级联
type ClientService struct {
	tx      domain.TxManager
	clients domain.ClientRepository
	orders  domain.OrderRepository
	cascade *OrderCommandService
}

// NewClientService 创建客户服务
func NewClientService(
	tx domain.TxManager,
	clients domain.ClientRepository,
	orders domain.OrderRepository,
	cascade *OrderCommandService,
) *ClientService {
	return &ClientService{tx: tx, clients: clients, orders: orders, cascade: cascade}
}

// CreateClient 创建客户
func (s *ClientService) CreateClient(ctx context.Context, cmd CreateClientCommand) (*ClientDTO, error) {
	c, err := domain.NewClient(cmd.Name, cmd.Email, cmd.Phone, cmd.Address)
	if err != nil {
		return nil, err
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, domain.AsStorageConflict("criar cliente", err)
	}
	return toClientDTO(c), nil
}

// GetClient 获取客户
func (s *ClientService) GetClient(ctx context.Context, id int64) (*ClientDTO, error) {
	c, err := s.clients.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound(domain.EntityClient, id)
	}
	return toClientDTO(c), nil
}

// ListClients 列出客户，search 匹配姓名
func (s *ClientService) ListClients(ctx context.Context, query ListQuery) ([]*ClientDTO, error) {
	w := utils.NewWindow(query.Skip, query.Limit)
	clients, err := s.clients.List(ctx, query.Search, w.Skip, w.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]*ClientDTO, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientDTO(c))
	}
	return out, nil
}

// UpdateClient 部分更新客户
func (s *ClientService) UpdateClient(ctx context.Context, id int64, cmd UpdateClientCommand) (*ClientDTO, error) {
	var c *domain.Client
	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		if c, err = s.clients.Get(txCtx, id); err != nil {
			return err
		}
		if c == nil {
			return domain.NotFound(domain.EntityClient, id)
		}
		if err := c.Apply(domain.ClientPatch{
			Name:    cmd.Name,
			Email:   cmd.Email,
			Phone:   cmd.Phone,
			Address: cmd.Address,
		}); err != nil {
			return err
		}
		return s.clients.Update(txCtx, c)
	})
	if err != nil {
		return nil, domain.AsStorageConflict("atualizar cliente", err)
	}
	return toClientDTO(c), nil
}

// DeleteClient 删除客户及其全部订单，订单行库存逐一归还
func (s *ClientService) DeleteClient(ctx context.Context, id int64) error {
	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		c, err := s.clients.Get(txCtx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.NotFound(domain.EntityClient, id)
		}
		orderIDs, err := s.orders.ListIDsByClient(txCtx, id)
		if err != nil {
			return err
		}
		for _, orderID := range orderIDs {
			if err := s.cascade.deleteOrder(txCtx, orderID); err != nil {
				return err
			}
		}
		if len(orderIDs) > 0 {
			logger.Info(txCtx, "client orders removed", "cliente_id", id, "pedidos", len(orderIDs))
		}
		return s.clients.Delete(txCtx, id)
	})
	return domain.AsStorageConflict("deletar cliente", err)
}
