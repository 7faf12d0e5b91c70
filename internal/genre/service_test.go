// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hondana/internal/genre"
	"github.com/taibuivan/hondana/internal/platform/apperr"
)

// fakeRepository is an in-memory [genre.Repository].
type fakeRepository struct {
	genres map[int64]*genre.Genre
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{genres: make(map[int64]*genre.Genre), nextID: 1}
}

func (repo *fakeRepository) List(_ context.Context) ([]*genre.Genre, error) {
	result := make([]*genre.Genre, 0, len(repo.genres))
	for _, g := range repo.genres {
		result = append(result, g)
	}
	return result, nil
}

func (repo *fakeRepository) GetByID(_ context.Context, id int64) (*genre.Genre, error) {
	g, ok := repo.genres[id]
	if !ok {
		return nil, apperr.NotFound("Genre")
	}
	copied := *g
	return &copied, nil
}

func (repo *fakeRepository) Create(_ context.Context, g *genre.Genre) error {
	for _, existing := range repo.genres {
		if existing.Name == g.Name {
			return apperr.Conflict("Resource already exists")
		}
	}
	g.ID = repo.nextID
	repo.nextID++
	repo.genres[g.ID] = g
	return nil
}

func (repo *fakeRepository) Update(_ context.Context, g *genre.Genre) error {
	if _, ok := repo.genres[g.ID]; !ok {
		return apperr.NotFound("Genre")
	}
	repo.genres[g.ID] = g
	return nil
}

func (repo *fakeRepository) SoftDelete(_ context.Context, id int64) error {
	if _, ok := repo.genres[id]; !ok {
		return apperr.NotFound("Genre")
	}
	delete(repo.genres, id)
	return nil
}

func newService(repo genre.Repository) *genre.Service {
	return genre.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_CreateGenre checks slug derivation and persistence.
*/
func TestService_CreateGenre(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	created, err := service.CreateGenre(context.Background(), genre.CreateInput{
		Name:        "Science Fiction",
		Description: "Futures, space, and speculation",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "science-fiction", created.Slug)
}

/*
TestService_CreateGenre_DuplicateName surfaces the storage conflict.
*/
func TestService_CreateGenre_DuplicateName(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	_, err := service.CreateGenre(context.Background(), genre.CreateInput{Name: "Mystery", Description: "Whodunits"})
	require.NoError(t, err)

	_, err = service.CreateGenre(context.Background(), genre.CreateInput{Name: "Mystery", Description: "Again"})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 409, appError.HTTPStatus)
}

/*
TestService_UpdateGenre regenerates the slug from the new name.
*/
func TestService_UpdateGenre(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	created, err := service.CreateGenre(context.Background(), genre.CreateInput{Name: "Horror", Description: "Scary"})
	require.NoError(t, err)

	updated, err := service.UpdateGenre(context.Background(), created.ID, genre.CreateInput{
		Name:        "Cosmic Horror",
		Description: "Scarier",
	})
	require.NoError(t, err)

	assert.Equal(t, "cosmic-horror", updated.Slug)
	assert.Equal(t, "Scarier", updated.Description)
}

/*
TestService_DeleteGenre_NotFound maps a missing genre to 404.
*/
func TestService_DeleteGenre_NotFound(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	err := service.DeleteGenre(context.Background(), 99)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 404, appError.HTTPStatus)
}
