package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-control/internal/domain/entity"
	"github.com/jhoicas/stock-control/internal/domain/repository"
)

func TestBuildListMovementsQuery_SinFiltros(t *testing.T) {
	query, args, err := buildListMovementsQuery(repository.MovementFilter{})
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "from movements m")
	assert.Contains(t, q, "join products p on p.id = m.product_id")
	assert.Contains(t, q, "join users u on u.id = m.user_id")
	assert.Contains(t, q, "order by m.created_at desc, m.id desc")
	assert.NotContains(t, q, "where")
	assert.NotContains(t, q, "limit")
	assert.Empty(t, args)
}

func TestBuildListMovementsQuery_ConFiltros(t *testing.T) {
	query, args, err := buildListMovementsQuery(repository.MovementFilter{
		ProductID: 9,
		Type:      entity.MovementTypeOut,
		Limit:     100,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "m.product_id = $1")
	assert.Contains(t, query, "m.type = $2")
	assert.Contains(t, query, "LIMIT 100")
	assert.Equal(t, []any{int64(9), "saida"}, args)
}
