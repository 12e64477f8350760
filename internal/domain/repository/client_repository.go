package repository

import (
	"context"

	"github.com/novasalud/clinic-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ListFilter) ([]*entity.Client, int, error)
	ListAll(ctx context.Context) ([]*entity.Client, error)
}
