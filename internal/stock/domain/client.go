package domain

import (
	"strings"
	"time"
)

// Client 客户（Cliente），email 可空但非空时唯一
type Client struct {
	ID           int64
	Name         string
	Email        *string
	Phone        *string
	Address      *string
	RegisteredAt time.Time
}

// NewClient 创建客户并校验字段
func NewClient(name string, email, phone, address *string) (*Client, error) {
	c := &Client{
		Name:    strings.TrimSpace(name),
		Email:   email,
		Phone:   phone,
		Address: address,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate 校验客户字段
func (c *Client) Validate() error {
	if c.Name == "" {
		return &ValidationError{Field: "nome", Reason: "obrigatório"}
	}
	if len(c.Name) > 255 {
		return &ValidationError{Field: "nome", Reason: "máximo de 255 caracteres"}
	}
	if c.Email != nil && len(*c.Email) > 255 {
		return &ValidationError{Field: "email", Reason: "máximo de 255 caracteres"}
	}
	if c.Phone != nil && len(*c.Phone) > 20 {
		return &ValidationError{Field: "telefone", Reason: "máximo de 20 caracteres"}
	}
	return nil
}

// ClientPatch 客户部分更新
type ClientPatch struct {
	Name    *string
	Email   Optional[string]
	Phone   Optional[string]
	Address Optional[string]
}

// Apply 逐字段应用补丁并校验
func (c *Client) Apply(patch ClientPatch) error {
	next := *c
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	patch.Email.applyTo(&next.Email)
	patch.Phone.applyTo(&next.Phone)
	patch.Address.applyTo(&next.Address)
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}
