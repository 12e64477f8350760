package usecase

import (
	"context"
	"fmt"

	"github.com/novasalud/clinic-api/internal/application/dto"
	"github.com/novasalud/clinic-api/internal/domain"
	"github.com/novasalud/clinic-api/internal/domain/entity"
	"github.com/novasalud/clinic-api/internal/domain/repository"
)

// CategoryUseCase aplica reglas de negocio para categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create registra una categoría con el nombre normalizado. Duplicada → ErrConflict.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	c := &entity.Category{Name: normalizeName(in.Name)}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name}, nil
}

// Delete elimina una categoría sin productos asignados.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	n, err := uc.repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ReferencedBy(fmt.Sprintf("la categoría está asignada a %d producto(s)", n))
	}
	err = uc.repo.Delete(ctx, id)
	if isReferential(err) {
		return domain.ReferencedBy("la categoría está asignada a productos")
	}
	return err
}

// List lista categorías paginadas.
func (uc *CategoryUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CategoryListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, filterOf(page))
	if err != nil {
		return nil, err
	}
	return &dto.CategoryListResponse{Items: toCategoryResponses(list), Page: dto.NewPageResponse(page, total)}, nil
}

// ListAll todas las categorías (selectores).
func (uc *CategoryUseCase) ListAll(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(list), nil
}

func toCategoryResponses(list []*entity.Category) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out
}
