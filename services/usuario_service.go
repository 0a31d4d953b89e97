package services

import (
	"context"

	"ambientefest-api/domain"
	"ambientefest-api/dto"
)

// RepositorioUsuarios son las operaciones de usuarios del panel admin
type RepositorioUsuarios interface {
	GetAll(ctx context.Context) ([]domain.Usuario, error)
	GetByID(ctx context.Context, id int) (domain.Usuario, error)
	BuscarPorEmail(ctx context.Context, email string) (domain.Usuario, bool, error)
	Create(ctx context.Context, usuario domain.Usuario) (domain.Usuario, error)
	Update(ctx context.Context, id int, usuario domain.Usuario) (domain.Usuario, error)
	Delete(ctx context.Context, id int) error
}

// UsuarioService maneja el CRUD de usuarios del panel de administración
type UsuarioService struct {
	repo RepositorioUsuarios
}

func NewUsuarioService(repo RepositorioUsuarios) *UsuarioService {
	return &UsuarioService{repo: repo}
}

func (s *UsuarioService) Listar(ctx context.Context) ([]domain.Usuario, error) {
	usuarios, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range usuarios {
		usuarios[i] = usuarios[i].SinSecretos()
	}
	return usuarios, nil
}

func (s *UsuarioService) Obtener(ctx context.Context, id int) (domain.Usuario, error) {
	usuario, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Usuario{}, err
	}
	return usuario.SinSecretos(), nil
}

func (s *UsuarioService) Crear(ctx context.Context, req dto.UsuarioRequest) (domain.Usuario, error) {
	roleID := domain.RoleIDDesdeRol(req.Rol)
	usuario := domain.Usuario{
		Nombre:    req.Nombre,
		Apellidos: req.Apellidos,
		Email:     req.Email,
		Telefono:  req.Telefono,
		RoleID:    roleID,
		Rol:       domain.RolDesdeRoleID(roleID),
		Password:  req.Password,
	}
	creado, err := s.repo.Create(ctx, usuario)
	if err != nil {
		return domain.Usuario{}, err
	}
	return creado.SinSecretos(), nil
}

// Actualizar solo pisa los campos que vienen en el request
func (s *UsuarioService) Actualizar(ctx context.Context, id int, req dto.UsuarioUpdateRequest) (domain.Usuario, error) {
	actual, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Usuario{}, err
	}
	if req.Nombre != "" {
		actual.Nombre = req.Nombre
	}
	if req.Apellidos != "" {
		actual.Apellidos = req.Apellidos
	}
	if req.Email != "" {
		actual.Email = req.Email
	}
	if req.Telefono != "" {
		actual.Telefono = req.Telefono
	}
	if req.Password != "" {
		actual.Password = req.Password
	}
	if req.Rol != "" {
		actual.RoleID = domain.RoleIDDesdeRol(req.Rol)
		actual.Rol = domain.RolDesdeRoleID(actual.RoleID)
	}
	actualizado, err := s.repo.Update(ctx, id, actual)
	if err != nil {
		return domain.Usuario{}, err
	}
	return actualizado.SinSecretos(), nil
}

func (s *UsuarioService) Borrar(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
