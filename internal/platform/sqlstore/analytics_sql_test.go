package sqlstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery_backend/internal/domain/entity"
)

func TestAnalyticsSQL_Stats(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		gdb := setupTestDB(t)

		s, err := NewAnalyticsRepository(gdb).Stats(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, &entity.DashboardStats{PopularProducts: []entity.PopularProduct{}}, s)
	})

	t.Run("ranks by views and breaks ties by id", func(t *testing.T) {
		gdb := setupTestDB(t)
		repo := NewAnalyticsRepository(gdb)
		ctx := context.Background()
		seedUser(t, gdb, "u1", "a@example.com", baseTime)
		seedProduct(t, gdb, "p1", "One", baseTime)
		seedProduct(t, gdb, "p2", "Two", baseTime)
		seedProduct(t, gdb, "p3", "Three", baseTime)

		views := map[string]int{"p1": 1, "p2": 3, "p3": 1}
		n := 0
		for _, pid := range []string{"p1", "p2", "p3"} {
			for i := 0; i < views[pid]; i++ {
				n++
				v := entity.ProductView{ID: fmt.Sprintf("v%d", n), ProductID: pid, ViewerID: "u1", CreatedAt: baseTime}
				require.NoError(t, repo.RecordView(ctx, &v))
			}
		}

		s, err := repo.Stats(ctx, 2)

		require.NoError(t, err)
		assert.EqualValues(t, 5, s.TotalViews)
		assert.EqualValues(t, 3, s.TotalProducts)
		assert.EqualValues(t, 1, s.TotalUsers)
		assert.Equal(t, []entity.PopularProduct{
			{ProductID: "p2", Title: "Two", ViewCount: 3},
			{ProductID: "p1", Title: "One", ViewCount: 1},
		}, s.PopularProducts)
	})
}
