// ABOUTME: Tests for the file-backed registry store and its codecs.
// ABOUTME: Covers save/load roundtrip, missing and corrupt documents, and legacy JSON.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/partnerdesk/internal/models"
)

func sampleStore() *models.Store {
	s := models.NewStore()
	s.LastSync = "01.02.2024 08:30"
	s.Partners["B2"] = models.Partner{ID: "B2", Name: "Beta", UpdatedAt: "01.02.2024 08:30"}
	s.Partners["A1"] = models.Partner{ID: "A1", Name: "Acme", Folder: "AcmeFolder", UpdatedAt: "31.01.2024 17:00"}
	return s
}

func TestRegistryRoundtrip(t *testing.T) {
	for _, name := range []string{"partners.yaml", "partners.json"} {
		t.Run(name, func(t *testing.T) {
			reg, err := NewFileRegistry(filepath.Join(t.TempDir(), "nested", name))
			require.NoError(t, err)
			defer func() { _ = reg.Close() }()

			want := sampleStore()
			require.NoError(t, reg.Save(want))

			got, err := reg.Load()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestRegistryMissingDocument(t *testing.T) {
	reg, err := NewFileRegistry(filepath.Join(t.TempDir(), "partners.yaml"))
	require.NoError(t, err)

	store, err := reg.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	require.NotNil(t, store)
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.LastSync)
}

func TestRegistryCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partners.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	reg, err := NewFileRegistry(path)
	require.NoError(t, err)

	store, err := reg.Load()
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	require.NotNil(t, store)
	assert.Equal(t, 0, store.Len())
}

func TestRegistryDocumentIsSortedAndWholeReplaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partners.yaml")
	reg, err := NewFileRegistry(path)
	require.NoError(t, err)

	require.NoError(t, reg.Save(sampleStore()))

	small := models.NewStore()
	small.Partners["Z9"] = models.Partner{ID: "Z9", Name: "Zulu"}
	require.NoError(t, reg.Save(small))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.NotContains(t, text, "Acme")
	assert.NotContains(t, text, "last_sync")
	assert.Contains(t, text, "Zulu")

	require.NoError(t, reg.Save(sampleStore()))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	text = string(data)
	assert.Less(t, strings.Index(text, "A1"), strings.Index(text, "B2"))
}

func TestDecodeDropsEmptyAndDuplicateIDs(t *testing.T) {
	doc := `last_sync: "01.02.2024 08:30"
partners:
  - id: A1
    name: First
  - id: ""
    name: Nobody
  - id: A1
    name: Second
`
	store, err := YAMLCodec{}.Decode([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "Second", store.Partners["A1"].Name)
}

func TestDecodeLegacyJSON(t *testing.T) {
	doc := `{
  "posledni_sync": "10.05.2023 14:00",
  "partneri": [
    {"id": "P1", "nazev": "Pekárna", "slozka": "pekarna", "aktualizovano": "09.05.2023 10:00"}
  ]
}`
	store, err := JSONCodec{}.Decode([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "10.05.2023 14:00", store.LastSync)
	assert.Equal(t, models.Partner{
		ID:        "P1",
		Name:      "Pekárna",
		Folder:    "pekarna",
		UpdatedAt: "09.05.2023 10:00",
	}, store.Partners["P1"])
}

func TestCodecFor(t *testing.T) {
	assert.IsType(t, JSONCodec{}, CodecFor("/x/partners.JSON"))
	assert.IsType(t, YAMLCodec{}, CodecFor("/x/partners.yaml"))
	assert.IsType(t, YAMLCodec{}, CodecFor("/x/partners"))
}

func TestNewFileRegistryRequiresPath(t *testing.T) {
	_, err := NewFileRegistry("")
	assert.Error(t, err)
}
