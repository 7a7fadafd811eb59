package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListQuery(t *testing.T) {
	t.Run("first page without search", func(t *testing.T) {
		sql, args, err := buildListQuery("", 20, uuid.NullUUID{})
		require.NoError(t, err)

		assert.Equal(t,
			`SELECT "id", "name", "price", "description", "image", "created_at", "updated_at" FROM "products" ORDER BY "id" ASC LIMIT $1`,
			sql)
		require.Len(t, args, 1)
		assert.EqualValues(t, 20, args[0])
	})

	t.Run("search with cursor", func(t *testing.T) {
		cur := uuid.MustParse("7d8f1c7e-3b55-4c1a-9d0e-2f3c4b5a6d7e")
		sql, args, err := buildListQuery("key_board", 5, uuid.NullUUID{UUID: cur, Valid: true})
		require.NoError(t, err)

		assert.Contains(t, sql, `"name" ILIKE $1`)
		assert.Contains(t, sql, `"id" > $2`)
		require.Len(t, args, 3)
		assert.Equal(t, `%key\_board%`, args[0])
		assert.Equal(t, cur.String(), args[1])
		assert.EqualValues(t, 5, args[2])
	})
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now\\`, escapeLike(`50% off_now\`))
}
