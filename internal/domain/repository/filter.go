package repository

// ListFilter paginación y búsqueda libre para los listados.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}
