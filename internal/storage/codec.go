// ABOUTME: Registry document codecs for YAML and JSON files.
// ABOUTME: Converts between the on-disk document and the keyed in-memory store.
package storage

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/2389-research/partnerdesk/internal/models"
)

// Codec serializes a registry store to and from a textual document.
type Codec interface {
	Encode(store *models.Store) ([]byte, error)
	Decode(data []byte) (*models.Store, error)
}

// CodecFor picks a codec from the file extension. Anything other than .json is YAML.
func CodecFor(path string) Codec {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSONCodec{}
	}
	return YAMLCodec{}
}

// partnerRecord is one entry of the registry document.
type partnerRecord struct {
	ID        string `yaml:"id" json:"id"`
	Name      string `yaml:"name" json:"name"`
	Folder    string `yaml:"folder" json:"folder"`
	UpdatedAt string `yaml:"updated_at" json:"updated_at"`
}

// registryDocument is the on-disk registry layout.
type registryDocument struct {
	LastSync string          `yaml:"last_sync,omitempty" json:"last_sync,omitempty"`
	Partners []partnerRecord `yaml:"partners" json:"partners"`
}

// legacyDocument holds the field names used by registries written before the
// document keys were normalized. Only JSON registries ever used them.
type legacyDocument struct {
	LastSync string `json:"posledni_sync"`
	Partners []struct {
		ID        string `json:"id"`
		Name      string `json:"nazev"`
		Folder    string `json:"slozka"`
		UpdatedAt string `json:"aktualizovano"`
	} `json:"partneri"`
}

func toDocument(store *models.Store) registryDocument {
	doc := registryDocument{
		LastSync: store.LastSync,
		Partners: make([]partnerRecord, 0, len(store.Partners)),
	}
	for _, p := range store.Partners {
		doc.Partners = append(doc.Partners, partnerRecord(p))
	}
	sort.Slice(doc.Partners, func(i, j int) bool {
		return doc.Partners[i].ID < doc.Partners[j].ID
	})
	return doc
}

// fromDocument builds a keyed store. Empty IDs are dropped and a repeated ID
// keeps its last occurrence.
func fromDocument(doc registryDocument) *models.Store {
	store := models.NewStore()
	store.LastSync = doc.LastSync
	for _, rec := range doc.Partners {
		if rec.ID == "" {
			continue
		}
		store.Partners[rec.ID] = models.Partner(rec)
	}
	return store
}

// YAMLCodec reads and writes YAML registry documents.
type YAMLCodec struct{}

// Encode implements Codec.
func (YAMLCodec) Encode(store *models.Store) ([]byte, error) {
	return yaml.Marshal(toDocument(store))
}

// Decode implements Codec.
func (YAMLCodec) Decode(data []byte) (*models.Store, error) {
	var doc registryDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return fromDocument(doc), nil
}

// JSONCodec reads and writes JSON registry documents, including the legacy layout.
type JSONCodec struct{}

// Encode implements Codec.
func (JSONCodec) Encode(store *models.Store) ([]byte, error) {
	return json.MarshalIndent(toDocument(store), "", "  ")
}

// Decode implements Codec.
func (JSONCodec) Decode(data []byte) (*models.Store, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if _, legacy := raw["partneri"]; legacy {
		var old legacyDocument
		if err := json.Unmarshal(data, &old); err != nil {
			return nil, err
		}
		doc := registryDocument{LastSync: old.LastSync}
		for _, p := range old.Partners {
			doc.Partners = append(doc.Partners, partnerRecord{
				ID:        p.ID,
				Name:      p.Name,
				Folder:    p.Folder,
				UpdatedAt: p.UpdatedAt,
			})
		}
		return fromDocument(doc), nil
	}

	var doc registryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return fromDocument(doc), nil
}
