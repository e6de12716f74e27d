package usecase

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// fakeWareRepo implementación en memoria del puerto WareRepository.
type fakeWareRepo struct {
	wares  map[int64]*entity.Ware
	nextID int64
}

func newFakeWareRepo() *fakeWareRepo {
	return &fakeWareRepo{wares: make(map[int64]*entity.Ware)}
}

func (r *fakeWareRepo) Create(ware *entity.Ware) error {
	for _, w := range r.wares {
		if w.Name == ware.Name {
			return domain.ErrDuplicate
		}
	}
	r.nextID++
	ware.ID = r.nextID
	r.wares[ware.ID] = ware
	return nil
}

func (r *fakeWareRepo) GetByID(id int64) (*entity.Ware, error) {
	return r.wares[id], nil
}

func (r *fakeWareRepo) GetForUpdate(id int64) (*entity.Ware, error) {
	return r.wares[id], nil
}

func (r *fakeWareRepo) List(limit, offset int) ([]*entity.Ware, error) {
	var list []*entity.Ware
	for _, w := range r.wares {
		list = append(list, w)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func TestWareCreate(t *testing.T) {
	uc := NewWareUseCase(newFakeWareRepo())

	out, err := uc.Create(dto.CreateWareRequest{Name: "tornillos", CostMethod: entity.CostMethodFIFO})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "tornillos", out.Name)
	assert.Equal(t, entity.CostMethodFIFO, out.CostMethod)
}

func TestWareCreate_Validation(t *testing.T) {
	uc := NewWareUseCase(newFakeWareRepo())

	tests := []struct {
		name string
		in   dto.CreateWareRequest
	}{
		{"nombre vacío", dto.CreateWareRequest{Name: "", CostMethod: entity.CostMethodFIFO}},
		{"nombre solo espacios", dto.CreateWareRequest{Name: "   ", CostMethod: entity.CostMethodFIFO}},
		{"método de costeo desconocido", dto.CreateWareRequest{Name: "x", CostMethod: "lifo"}},
		{"método de costeo vacío", dto.CreateWareRequest{Name: "x", CostMethod: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(tt.in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestWareCreate_Duplicate(t *testing.T) {
	uc := NewWareUseCase(newFakeWareRepo())

	_, err := uc.Create(dto.CreateWareRequest{Name: "tornillos", CostMethod: entity.CostMethodFIFO})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateWareRequest{Name: "tornillos", CostMethod: entity.CostMethodWeightedMean})
	require.ErrorIs(t, err, domain.ErrDuplicate,
		"el nombre es único aunque el método de costeo difiera")
}

func TestWareGetByID(t *testing.T) {
	uc := NewWareUseCase(newFakeWareRepo())

	created, err := uc.Create(dto.CreateWareRequest{Name: "arandelas", CostMethod: entity.CostMethodWeightedMean})
	require.NoError(t, err)

	out, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "arandelas", out.Name)

	missing, err := uc.GetByID(999)
	require.NoError(t, err)
	assert.Nil(t, missing, "ware inexistente devuelve nil sin error")
}

func TestWareList(t *testing.T) {
	uc := NewWareUseCase(newFakeWareRepo())

	for _, name := range []string{"a", "b", "c"} {
		_, err := uc.Create(dto.CreateWareRequest{Name: name, CostMethod: entity.CostMethodFIFO})
		require.NoError(t, err)
	}

	out, err := uc.List(2, 0)
	require.NoError(t, err)
	assert.Len(t, out.Wares, 2)
	assert.Equal(t, 2, out.Limit)

	out, err = uc.List(10, 2)
	require.NoError(t, err)
	assert.Len(t, out.Wares, 1)
}
