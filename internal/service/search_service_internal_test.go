package service

import (
	"encoding/json"
	"testing"

	"github.com/meilisearch/meilisearch-go"
	"github.com/stretchr/testify/assert"
)

func TestDecodeMedecinHits(t *testing.T) {
	hits := meilisearch.Hits{
		{
			"id":         json.RawMessage(`7`),
			"nom":        json.RawMessage(`"Durand"`),
			"prenom":     json.RawMessage(`"Paul"`),
			"specialite": json.RawMessage(`"Cardiologie"`),
		},
		{
			"id":  json.RawMessage(`12`),
			"nom": json.RawMessage(`"Martin"`),
		},
	}

	docs := decodeMedecinHits(hits)

	assert.Len(t, docs, 2)
	assert.Equal(t, MedecinDocument{ID: 7, Nom: "Durand", Prenom: "Paul", Specialite: "Cardiologie"}, docs[0])
	assert.Equal(t, uint(12), docs[1].ID)
	assert.Equal(t, "Martin", docs[1].Nom)
	assert.Empty(t, docs[1].Specialite)
}

func TestDecodeMedecinHitsSkipsMalformed(t *testing.T) {
	hits := meilisearch.Hits{
		{"id": json.RawMessage(`"pas-un-nombre"`)},
		{"id": json.RawMessage(`3`), "nom": json.RawMessage(`"Petit"`)},
	}

	docs := decodeMedecinHits(hits)

	assert.Len(t, docs, 1)
	assert.Equal(t, uint(3), docs[0].ID)
}

func TestDecodeMedecinHitsEmpty(t *testing.T) {
	assert.Empty(t, decodeMedecinHits(nil))
}
