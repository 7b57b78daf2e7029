package service

import (
	"context"
	"errors"

	"cataldo/internal/dto"
	"cataldo/internal/repository"

	"github.com/google/uuid"
)

var ErrUbicacionNoEncontrada = errors.New("ubicación no encontrada")

type GeografiaService interface {
	Paises(ctx context.Context) ([]dto.PaisResponse, error)
	Regiones(ctx context.Context, paisID string) ([]dto.RegionResponse, error)
	Provincias(ctx context.Context, regionID string) ([]dto.ProvinciaResponse, error)
	Comunas(ctx context.Context, provinciaID string) ([]dto.ComunaResponse, error)
}

type geografiaService struct {
	repo repository.GeografiaRepository
}

func NewGeografiaService(repo repository.GeografiaRepository) GeografiaService {
	return &geografiaService{repo: repo}
}

func (s *geografiaService) Paises(ctx context.Context) ([]dto.PaisResponse, error) {
	paises, err := s.repo.ListPaises(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PaisResponse, 0, len(paises))
	for _, p := range paises {
		resp = append(resp, dto.PaisResponse{ID: p.ID.String(), Nombre: p.Nombre})
	}
	return resp, nil
}

func (s *geografiaService) Regiones(ctx context.Context, paisID string) ([]dto.RegionResponse, error) {
	id, err := uuid.Parse(paisID)
	if err != nil {
		return nil, ErrUbicacionNoEncontrada
	}
	regiones, err := s.repo.ListRegiones(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RegionResponse, 0, len(regiones))
	for _, r := range regiones {
		resp = append(resp, dto.RegionResponse{ID: r.ID.String(), Nombre: r.Nombre})
	}
	return resp, nil
}

func (s *geografiaService) Provincias(ctx context.Context, regionID string) ([]dto.ProvinciaResponse, error) {
	id, err := uuid.Parse(regionID)
	if err != nil {
		return nil, ErrUbicacionNoEncontrada
	}
	provincias, err := s.repo.ListProvincias(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProvinciaResponse, 0, len(provincias))
	for _, p := range provincias {
		resp = append(resp, dto.ProvinciaResponse{ID: p.ID.String(), Nombre: p.Nombre})
	}
	return resp, nil
}

func (s *geografiaService) Comunas(ctx context.Context, provinciaID string) ([]dto.ComunaResponse, error) {
	id, err := uuid.Parse(provinciaID)
	if err != nil {
		return nil, ErrUbicacionNoEncontrada
	}
	comunas, err := s.repo.ListComunas(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ComunaResponse, 0, len(comunas))
	for _, c := range comunas {
		resp = append(resp, dto.ComunaResponse{ID: c.ID.String(), Nombre: c.Nombre})
	}
	return resp, nil
}
