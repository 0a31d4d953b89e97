package services

import (
	"context"

	"ambientefest-api/domain"
)

// RepositorioCategorias sirve categorías y roles, nunca falla: ante un
// problema remoto devuelve las listas estáticas
type RepositorioCategorias interface {
	GetServiceCategories(ctx context.Context) []string
	GetBlogCategories(ctx context.Context) []string
	GetRoles(ctx context.Context) []domain.Rol
}

// CategoriaService expone las listas de categorías y roles
type CategoriaService struct {
	repo RepositorioCategorias
}

func NewCategoriaService(repo RepositorioCategorias) *CategoriaService {
	return &CategoriaService{repo: repo}
}

func (s *CategoriaService) CategoriasServicios(ctx context.Context) []string {
	return s.repo.GetServiceCategories(ctx)
}

func (s *CategoriaService) CategoriasBlogs(ctx context.Context) []string {
	return s.repo.GetBlogCategories(ctx)
}

func (s *CategoriaService) Roles(ctx context.Context) []domain.Rol {
	return s.repo.GetRoles(ctx)
}
