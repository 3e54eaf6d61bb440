package repository

import (
	"bamboo/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestVerifierRepo(t *testing.T) {
	db := newTestDB(t)
	repo := NewVerifierRepository(db)
	ctx := context.Background()

	t.Run("pick from empty pool", func(t *testing.T) {
		_, err := repo.PickRandom(ctx)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	seeded := []model.Verifier{
		{Question: "校门口的奶茶店叫什么", Answer: "竹里馆"},
		{Question: "图书馆几点闭馆", Answer: "22:00"},
		{Question: "校庆是几月几号", Answer: "5月20日"},
	}
	for i := range seeded {
		require.NoError(t, db.Create(&seeded[i]).Error)
	}

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, seeded[0].ID)
		require.NoError(t, err)
		assert.Equal(t, seeded[0].Question, got.Question)

		_, err = repo.GetByID(ctx, 999)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("pick random returns a seeded question", func(t *testing.T) {
		known := make(map[uint64]bool)
		for _, v := range seeded {
			known[v.ID] = true
		}
		for i := 0; i < 20; i++ {
			got, err := repo.PickRandom(ctx)
			require.NoError(t, err)
			assert.True(t, known[got.ID])
		}
	})
}

func TestVerifierIsCorrect(t *testing.T) {
	v := model.Verifier{Question: "q", Answer: "竹里馆"}

	assert.True(t, v.IsCorrect("竹里馆"))
	assert.False(t, v.IsCorrect("竹里馆 "))
	assert.False(t, v.IsCorrect(""))

	caseSensitive := model.Verifier{Question: "q", Answer: "Bamboo"}
	assert.False(t, caseSensitive.IsCorrect("bamboo"))
}
