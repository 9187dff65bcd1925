package datastore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/product-analytics/internal/errs"
	"github.com/fairyhunter13/product-analytics/internal/model"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadProducts(t *testing.T) {
	p := writeFile(t, t.TempDir(), "products.json",
		`{"products":[{"name":"Laptop","price":999.99,"quantity":50,"category":"Electronics","stock":45},{"name":"Cable"}]}`)
	ps, err := LoadProducts(p)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "Laptop", ps[0].GetName())
	assert.Equal(t, int64(45), ps[0].GetStock())
	assert.Equal(t, model.UnknownCategory, ps[1].GetCategory())
}

func TestLoadProductsFailuresDegradeToEmpty(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"missing":     filepath.Join(dir, "absent.json"),
		"bad json":    writeFile(t, dir, "bad.json", `{"products": [`),
		"no products": writeFile(t, dir, "nokey.json", `{"items": []}`),
		"wrong shape": writeFile(t, dir, "shape.json", `{"products": {"name": "x"}}`),
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			ps, err := LoadProducts(path)
			require.Error(t, err)
			assert.True(t, errs.IsMalformed(err))
			assert.NotNil(t, ps)
			assert.Empty(t, ps)
		})
	}
}

func TestLoadProductsEmptyList(t *testing.T) {
	p := writeFile(t, t.TempDir(), "empty.json", `{"products": null}`)
	ps, err := LoadProducts(p)
	require.NoError(t, err)
	assert.Empty(t, ps)
}

func TestLoadProductsGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b/two.json", `{"products":[{"name":"B"}]}`)
	writeFile(t, dir, "a/one.json", `{"products":[{"name":"A"}]}`)
	writeFile(t, dir, "a/notes.txt", `ignored`)

	ps, files, err := LoadProductsGlob(filepath.Join(dir, "**", "*.json"))
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Len(t, ps, 2)
	assert.Equal(t, "A", ps[0].GetName())
	assert.Equal(t, "B", ps[1].GetName())

	_, _, err = LoadProductsGlob(filepath.Join(dir, "**", "*.csv"))
	assert.True(t, errs.IsMalformed(err))

	writeFile(t, dir, "c/bad.json", `nope`)
	ps, _, err = LoadProductsGlob(filepath.Join(dir, "**", "*.json"))
	assert.True(t, errs.IsMalformed(err))
	assert.Empty(t, ps)
}

func TestSaveProductsRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out", "products.json")
	in := []model.Product{model.NewProduct("Mouse", 29.99, 200, "Electronics", 150)}
	require.NoError(t, SaveProducts(p, in))
	out, err := LoadProducts(p)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 29.99, out[0].GetPrice())
	assert.Equal(t, int64(200), out[0].GetQuantity())
}

func TestLoadSales(t *testing.T) {
	dir := t.TempDir()
	jsonList := writeFile(t, dir, "sales.json", `[{"date":"2024-01-01","amount":10},{"date":"2024-01-02","amount":20}]`)
	jsonWrapped := writeFile(t, dir, "wrapped.json", `{"sales":[{"date":"2024-01-01","amount":5}]}`)
	yamlList := writeFile(t, dir, "sales.yaml", "- date: \"2024-01-01\"\n  amount: 10\n- date: \"2024-01-03\"\n  amount: 2.5\n")
	yamlWrapped := writeFile(t, dir, "sales.yml", "sales:\n  - date: \"2024-02-01\"\n    amount: 7\n")

	ev, err := LoadSales(jsonList)
	require.NoError(t, err)
	assert.Equal(t, []model.SaleEvent{{Date: "2024-01-01", Amount: 10}, {Date: "2024-01-02", Amount: 20}}, ev)

	ev, err = LoadSales(jsonWrapped)
	require.NoError(t, err)
	assert.Len(t, ev, 1)

	ev, err = LoadSales(yamlList)
	require.NoError(t, err)
	assert.Equal(t, []model.SaleEvent{{Date: "2024-01-01", Amount: 10}, {Date: "2024-01-03", Amount: 2.5}}, ev)

	ev, err = LoadSales(yamlWrapped)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", ev[0].Date)

	ev, err = LoadSales(filepath.Join(dir, "missing.json"))
	assert.True(t, errs.IsMalformed(err))
	assert.Empty(t, ev)
}

func TestIsGlob(t *testing.T) {
	assert.True(t, IsGlob("data/**/*.json"))
	assert.False(t, IsGlob("products.json"))
}

func TestLoadProductsSkipsNegativePriceOrQuantity(t *testing.T) {
	p := writeFile(t, t.TempDir(), "products.json", `{"products":[
		{"name":"Good","price":10,"quantity":2},
		{"name":"Refund","price":-5,"quantity":1},
		{"name":"Returned","price":5,"quantity":-3},
		{"name":"Bare"}
	]}`)
	ps, err := LoadProducts(p)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "Good", ps[0].GetName())
	assert.Equal(t, "Bare", ps[1].GetName())
	for _, prod := range ps {
		assert.GreaterOrEqual(t, prod.Revenue(), 0.0)
	}
}
