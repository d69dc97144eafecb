package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turbocafe/turbocafe-api/internal/application/dto"
)

func TestPageRequestNormalize(t *testing.T) {
	p := dto.PageRequest{}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)

	p = dto.PageRequest{Page: -3, PageSize: 1000}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PageSize)

	p = dto.PageRequest{Page: 4, PageSize: 10}
	p.Normalize()
	assert.Equal(t, 4, p.Page)
	assert.Equal(t, 10, p.PageSize)
}

func TestNewPageMeta(t *testing.T) {
	meta := dto.NewPageMeta(0, 1, 20)
	assert.Equal(t, 1, meta.NumPages, "empty collection still reports one page")
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrevious)

	meta = dto.NewPageMeta(45, 1, 20)
	assert.Equal(t, 3, meta.NumPages)
	assert.True(t, meta.HasNext)
	assert.False(t, meta.HasPrevious)

	meta = dto.NewPageMeta(45, 2, 20)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrevious)

	meta = dto.NewPageMeta(45, 3, 20)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrevious)

	meta = dto.NewPageMeta(40, 2, 20)
	assert.Equal(t, 2, meta.NumPages, "exact multiple does not add a page")
}
