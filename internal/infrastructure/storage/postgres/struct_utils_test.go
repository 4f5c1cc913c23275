package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"almacen/internal/core/entity"
	"almacen/internal/domain/catalogs/product"
	"almacen/internal/domain/catalogs/supplier"
)

func TestExtractDBColumns_EmbeddedCatalog(t *testing.T) {
	cols := ExtractDBColumns[product.Product]()

	expectedCols := []string{
		"id", "code", "name", "created_at", "updated_at", "unit", "supplier_id",
	}
	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
	assert.Len(t, cols, len(expectedCols))
}

func TestStructToMap_FlattensEmbedded(t *testing.T) {
	p := product.NewProduct("FL-01", "Harina 25kg", "kg")

	m := StructToMap(p)

	assert.Equal(t, p.ID, m["id"])
	assert.Equal(t, "FL-01", m["code"])
	assert.Equal(t, "Harina 25kg", m["name"])
	assert.Equal(t, "kg", m["unit"])
	assert.Equal(t, p.CreatedAt, m["created_at"])

	// nil pointers are carried through, not dropped
	assert.Contains(t, m, "supplier_id")
}

func TestStructToMap_SkipsUntaggedFields(t *testing.T) {
	type row struct {
		entity.Catalog
		Internal string
		Ignored  string `db:"-"`
		Kept     string `db:"kept"`
	}

	m := StructToMap(row{Kept: "x", Internal: "y", Ignored: "z"})

	assert.Equal(t, "x", m["kept"])
	assert.NotContains(t, m, "Internal")
	assert.NotContains(t, m, "-")
}

func TestStructToMap_PointerInput(t *testing.T) {
	s := supplier.NewSupplier("SUP-01", "Molinos SA")
	email := "compras@molinos.example"
	s.ContactEmail = &email

	m := StructToMap(s)

	assert.Equal(t, "SUP-01", m["code"])
	assert.Equal(t, &email, m["contact_email"])
}
