package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/eadrium-canteen/internal/domain/menu"
	"github.com/xenking/eadrium-canteen/internal/domain/user"
)

const sampleSeed = `{
	"menu": [
		{"id": "i1", "name": "Toastie", "description": "cheese", "price": "6.00", "type": "food", "amountAvailable": 25},
		{"id": "i2", "name": "Anzac", "description": "biscuit", "price": "2.00", "type": "snack"}
	],
	"users": [
		{"id": "u1", "name": "Alice", "yearLevel": "7"}
	]
}`

func writeSeedFile(t *testing.T, name, content string, gzipped bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	if gzipped {
		gz := pgzip.NewWriter(f)
		_, err = gz.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, gz.Close())
		return path
	}
	_, err = f.WriteString(content)
	require.NoError(t, err)
	return path
}

func TestLoad(t *testing.T) {
	data, err := Load(strings.NewReader(sampleSeed))
	require.NoError(t, err)

	require.Len(t, data.Menu, 2)
	assert.Equal(t, "i1", data.Menu[0].ID)
	assert.True(t, decimal.RequireFromString("6.00").Equal(data.Menu[0].Price))
	assert.Equal(t, 25, data.Menu[0].AmountAvailable)
	assert.Equal(t, 1, data.Menu[1].AmountAvailable, "amountAvailable defaults to 1")

	require.Len(t, data.Users, 1)
	assert.Equal(t, "Alice", data.Users[0].Name)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", "menu: toastie"},
		{"bad price", `{"menu": [{"id": "i1", "price": "six"}]}`},
		{"negative price", `{"menu": [{"id": "i1", "price": "-1"}]}`},
		{"negative stock", `{"menu": [{"id": "i1", "price": "1", "amountAvailable": -2}]}`},
		{"item missing id", `{"menu": [{"name": "Toastie", "price": "1"}]}`},
		{"incomplete user", `{"users": [{"id": "u1", "name": "Alice"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestLoadFiles_MergesInFileOrder(t *testing.T) {
	first := writeSeedFile(t, "first.json", `{"menu": [{"id": "a", "price": "1.00"}]}`, false)
	second := writeSeedFile(t, "second.json.gz", `{"menu": [{"id": "b", "price": "2.00"}], "users": [{"id": "u1", "name": "Alice", "yearLevel": "7"}]}`, true)

	data, err := LoadFiles(context.Background(), []string{first, second})
	require.NoError(t, err)

	require.Len(t, data.Menu, 2)
	assert.Equal(t, "a", data.Menu[0].ID)
	assert.Equal(t, "b", data.Menu[1].ID)
	require.Len(t, data.Users, 1)
}

func TestLoadFiles_MissingFile(t *testing.T) {
	_, err := LoadFiles(context.Background(), []string{"/does/not/exist.json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exist.json")
}

func TestApply(t *testing.T) {
	data, err := Load(strings.NewReader(sampleSeed))
	require.NoError(t, err)

	catalog := menu.NewCatalog()
	users := user.NewStore()
	require.NoError(t, data.Apply(catalog, users))

	item, err := catalog.Find("i1")
	require.NoError(t, err)
	assert.Equal(t, 25, item.AmountAvailable)

	u, err := users.Find("u1")
	require.NoError(t, err)
	assert.True(t, user.StartingBalance.Equal(u.Balance), "seeded users get the starting balance")
}

func TestApply_DuplicateUser(t *testing.T) {
	data, err := Load(strings.NewReader(sampleSeed))
	require.NoError(t, err)

	catalog := menu.NewCatalog()
	users := user.NewStore()
	_, err = users.Create("u1", "Existing", "9")
	require.NoError(t, err)

	err = data.Apply(catalog, users)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `seed user "u1"`)
}
