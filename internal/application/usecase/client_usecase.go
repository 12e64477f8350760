package usecase

import (
	"context"

	"github.com/novasalud/clinic-api/internal/application/dto"
	"github.com/novasalud/clinic-api/internal/domain"
	"github.com/novasalud/clinic-api/internal/domain/entity"
	"github.com/novasalud/clinic-api/internal/domain/repository"
)

// ClientUseCase aplica reglas de negocio para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso con el puerto de persistencia.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create registra un cliente. DNI repetido → ErrConflict.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	c := &entity.Client{}
	applyClient(c, in)
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := toClientResponse(c)
	return &out, nil
}

// GetByID obtiene un cliente.
func (uc *ClientUseCase) GetByID(ctx context.Context, id int64) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("cliente", id)
	}
	out := toClientResponse(c)
	return &out, nil
}

// Update reemplaza los datos de un cliente.
func (uc *ClientUseCase) Update(ctx context.Context, id int64, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("cliente", id)
	}
	applyClient(c, in)
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	out := toClientResponse(c)
	return &out, nil
}

// Delete elimina un cliente sin ventas.
func (uc *ClientUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.repo.Delete(ctx, id)
	if isReferential(err) {
		return domain.ReferencedBy("el cliente tiene ventas registradas")
	}
	return err
}

// List lista clientes paginados.
func (uc *ClientUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ClientListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, filterOf(page))
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toClientResponse(c))
	}
	return &dto.ClientListResponse{Items: items, Page: dto.NewPageResponse(page, total)}, nil
}

func applyClient(c *entity.Client, in dto.ClientRequest) {
	c.Name = normalizeName(in.Name)
	c.DNI = normalizeName(in.DNI)
	c.Phone = normalizeName(in.Phone)
	c.Email = normalizeName(in.Email)
	c.Address = normalizeName(in.Address)
}

func toClientResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:           c.ID,
		Name:         c.Name,
		DNI:          c.DNI,
		Phone:        c.Phone,
		Email:        c.Email,
		Address:      c.Address,
		RegisteredAt: c.RegisteredAt,
	}
}
