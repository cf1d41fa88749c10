package service

import (
	"context"
	"testing"

	"huonganh/internal/database"
	"huonganh/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCatalogServiceUnderTest(store *mockStore) *CatalogService {
	logger := zerolog.Nop()
	return NewCatalogService(store, &logger)
}

func threeServices() []models.Service {
	return []models.Service{
		{ID: 10, Title: "A", SortOrder: 0},
		{ID: 20, Title: "B", SortOrder: 1},
		{ID: 30, Title: "C", SortOrder: 2},
	}
}

func TestReorderServiceMovesUp(t *testing.T) {
	store := new(mockStore)
	svc := newCatalogServiceUnderTest(store)

	store.On("ListServices", mock.Anything).Return(threeServices(), nil)
	store.On("ReorderServices", mock.Anything, []database.OrderUpdate{
		{ID: 20, SortOrder: 0},
		{ID: 10, SortOrder: 1},
		{ID: 30, SortOrder: 2},
	}).Return(nil)

	require.NoError(t, svc.ReorderService(context.Background(), 20, DirectionUp))
	store.AssertExpectations(t)
}

func TestReorderServiceMovesDown(t *testing.T) {
	store := new(mockStore)
	svc := newCatalogServiceUnderTest(store)

	store.On("ListServices", mock.Anything).Return(threeServices(), nil)
	store.On("ReorderServices", mock.Anything, []database.OrderUpdate{
		{ID: 10, SortOrder: 0},
		{ID: 30, SortOrder: 1},
		{ID: 20, SortOrder: 2},
	}).Return(nil)

	require.NoError(t, svc.ReorderService(context.Background(), 20, DirectionDown))
	store.AssertExpectations(t)
}

func TestReorderServiceBoundaryNoOps(t *testing.T) {
	cases := []struct {
		name      string
		id        int64
		direction string
	}{
		{"FirstUp", 10, DirectionUp},
		{"LastDown", 30, DirectionDown},
		{"UnknownDirection", 20, "sideways"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := new(mockStore)
			svc := newCatalogServiceUnderTest(store)
			store.On("ListServices", mock.Anything).Return(threeServices(), nil)

			require.NoError(t, svc.ReorderService(context.Background(), tc.id, tc.direction))
			store.AssertNotCalled(t, "ReorderServices", mock.Anything, mock.Anything)
		})
	}
}

func TestReorderServiceUnknownID(t *testing.T) {
	store := new(mockStore)
	svc := newCatalogServiceUnderTest(store)

	store.On("ListServices", mock.Anything).Return(threeServices(), nil)

	err := svc.ReorderService(context.Background(), 99, DirectionUp)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestReorderGalleryImage(t *testing.T) {
	store := new(mockStore)
	svc := newCatalogServiceUnderTest(store)

	store.On("ListGalleryImages", mock.Anything).Return([]models.GalleryImage{
		{ID: 1, SortOrder: 0},
		{ID: 2, SortOrder: 1},
	}, nil)
	store.On("ReorderGalleryImages", mock.Anything, []database.OrderUpdate{
		{ID: 2, SortOrder: 0},
		{ID: 1, SortOrder: 1},
	}).Return(nil)

	require.NoError(t, svc.ReorderGalleryImage(context.Background(), 2, DirectionUp))
	store.AssertExpectations(t)
}

func TestReorderAboutSection(t *testing.T) {
	store := new(mockStore)
	svc := newCatalogServiceUnderTest(store)

	store.On("ListAboutSections", mock.Anything).Return([]models.AboutSection{
		{ID: 1, SortOrder: 0},
		{ID: 2, SortOrder: 1},
	}, nil)
	store.On("ReorderAboutSections", mock.Anything, []database.OrderUpdate{
		{ID: 2, SortOrder: 0},
		{ID: 1, SortOrder: 1},
	}).Return(nil)

	require.NoError(t, svc.ReorderAboutSection(context.Background(), 1, DirectionDown))
	store.AssertExpectations(t)
}

func TestSeedServicesOnlyWhenEmpty(t *testing.T) {
	seed := []models.Service{{Title: "Massage Thư Giãn"}, {Title: "Tắm Dưỡng"}}

	t.Run("EmptyTableSeeds", func(t *testing.T) {
		store := new(mockStore)
		svc := newCatalogServiceUnderTest(store)

		store.On("ListServices", mock.Anything).Return([]models.Service{}, nil)
		store.On("CreateService", mock.Anything, mock.Anything).Return(nil).Times(2)

		require.NoError(t, svc.SeedServices(context.Background(), seed))
		store.AssertExpectations(t)
	})

	t.Run("NonEmptyTableSkips", func(t *testing.T) {
		store := new(mockStore)
		svc := newCatalogServiceUnderTest(store)

		store.On("ListServices", mock.Anything).Return(threeServices(), nil)

		require.NoError(t, svc.SeedServices(context.Background(), seed))
		store.AssertNotCalled(t, "CreateService", mock.Anything, mock.Anything)
	})
}

func TestServiceTitles(t *testing.T) {
	store := new(mockStore)
	svc := newCatalogServiceUnderTest(store)

	store.On("ListServices", mock.Anything).Return(threeServices(), nil)

	titles, err := svc.ServiceTitles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, titles)
}
