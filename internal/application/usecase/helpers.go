package usecase

import (
	"errors"

	"github.com/novasalud/clinic-api/internal/application/dto"
	"github.com/novasalud/clinic-api/internal/domain"
	"github.com/novasalud/clinic-api/internal/domain/repository"
)

func filterOf(page dto.PageRequest) repository.ListFilter {
	return repository.ListFilter{Search: page.Search, Limit: page.Limit, Offset: page.Offset()}
}

func isReferential(err error) bool {
	return err != nil && errors.Is(err, domain.ErrReferentialIntegrity)
}
