// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"log/slog"

	"github.com/taibuivan/hondana/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListGenres(context context.Context) ([]*Genre, error) {
	return service.repo.List(context)
}

func (service *Service) GetGenre(context context.Context, id int64) (*Genre, error) {
	return service.repo.GetByID(context, id)
}

// CreateInput holds the admin-provided genre attributes.
type CreateInput struct {
	Name        string
	Description string
}

// CreateGenre persists a new genre with a slug derived from its name.
func (service *Service) CreateGenre(context context.Context, input CreateInput) (*Genre, error) {
	genre := &Genre{
		Name:        input.Name,
		Slug:        slug.From(input.Name),
		Description: input.Description,
	}

	if err := service.repo.Create(context, genre); err != nil {
		return nil, err
	}

	service.logger.Info("genre_created", slog.Int64("genre_id", genre.ID), slog.String("slug", genre.Slug))
	return genre, nil
}

// UpdateGenre replaces the genre's attributes, regenerating the slug.
func (service *Service) UpdateGenre(context context.Context, id int64, input CreateInput) (*Genre, error) {
	genre, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	genre.Name = input.Name
	genre.Slug = slug.From(input.Name)
	genre.Description = input.Description

	if err := service.repo.Update(context, genre); err != nil {
		return nil, err
	}

	return genre, nil
}

// DeleteGenre soft-deletes a genre. Books keep their junction rows; the
// genre simply stops resolving in listings.
func (service *Service) DeleteGenre(context context.Context, id int64) error {
	if _, err := service.repo.GetByID(context, id); err != nil {
		return err
	}

	return service.repo.SoftDelete(context, id)
}
