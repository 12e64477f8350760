package usecase

import (
	"context"

	"github.com/novasalud/clinic-api/internal/application/dto"
	"github.com/novasalud/clinic-api/internal/domain"
	"github.com/novasalud/clinic-api/internal/domain/entity"
	"github.com/novasalud/clinic-api/internal/domain/repository"
)

// ProductUseCase aplica reglas de negocio para productos.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories}
}

// Create registra un producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate(ctx, in); err != nil {
		return nil, err
	}
	p := &entity.Product{}
	applyProduct(p, in)
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, p.ID)
}

// GetByID obtiene un producto con el nombre de su categoría.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("producto", id)
	}
	out := toProductResponse(p)
	return &out, nil
}

// Update reemplaza los datos del producto, incluido el stock.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate(ctx, in); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("producto", id)
	}
	applyProduct(p, in)
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina un producto sin ventas.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.repo.Delete(ctx, id)
	if isReferential(err) {
		return domain.ReferencedBy("el producto figura en ventas registradas")
	}
	return err
}

// List lista productos paginados.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, filterOf(page))
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.NewPageResponse(page, total)}, nil
}

func (uc *ProductUseCase) validate(ctx context.Context, in dto.ProductRequest) error {
	if err := dto.Validate(in); err != nil {
		return err
	}
	if in.CategoryID == nil {
		return nil
	}
	cat, err := uc.categories.GetByID(ctx, *in.CategoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.NotFound("categoría", *in.CategoryID)
	}
	return nil
}

func applyProduct(p *entity.Product, in dto.ProductRequest) {
	p.Name = normalizeName(in.Name)
	p.Description = in.Description
	p.Stock = in.Stock
	p.Price = in.Price
	p.CategoryID = in.CategoryID
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Stock:        p.Stock,
		Price:        p.Price,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		CreatedAt:    p.CreatedAt,
	}
}
