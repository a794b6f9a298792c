package service

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/meilisearch/meilisearch-go"

	"cabinet-service/internal/model"
)

const medecinIndex = "medecins"

// SearchService maintains the doctor directory index. Indexing is
// best-effort: a search outage must never block account management.
type SearchService interface {
	IndexMedecin(user *model.User, specialite string)
	RemoveMedecin(userID uint)
	SearchMedecins(query string) ([]MedecinDocument, error)
}

type MedecinDocument struct {
	ID         uint   `json:"id"`
	Nom        string `json:"nom"`
	Prenom     string `json:"prenom"`
	Specialite string `json:"specialite"`
}

type searchService struct {
	client meilisearch.ServiceManager
}

func strPtr(s string) *string { return &s }

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{client: client}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	if s.client == nil {
		return
	}
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        medecinIndex,
		PrimaryKey: "id",
	})
	if err != nil {
		log.Printf("meilisearch: create index %s: %v", medecinIndex, err)
	}
	_, err = s.client.Index(medecinIndex).UpdateSearchableAttributes(&[]string{"nom", "prenom", "specialite"})
	if err != nil {
		log.Printf("meilisearch: update searchable attributes: %v", err)
	}
}

func (s *searchService) IndexMedecin(user *model.User, specialite string) {
	if s.client == nil || user == nil {
		return
	}
	doc := MedecinDocument{
		ID:         user.ID,
		Nom:        user.Nom,
		Prenom:     user.Prenom,
		Specialite: specialite,
	}
	if _, err := s.client.Index(medecinIndex).AddDocuments([]MedecinDocument{doc}, strPtr("id")); err != nil {
		log.Printf("meilisearch: index medecin %d: %v", user.ID, err)
	}
}

func (s *searchService) RemoveMedecin(userID uint) {
	if s.client == nil {
		return
	}
	if _, err := s.client.Index(medecinIndex).DeleteDocument(fmt.Sprintf("%d", userID)); err != nil {
		log.Printf("meilisearch: remove medecin %d: %v", userID, err)
	}
}

func (s *searchService) SearchMedecins(query string) ([]MedecinDocument, error) {
	if s.client == nil {
		return nil, nil
	}

	res, err := s.client.Index(medecinIndex).Search(query, &meilisearch.SearchRequest{Limit: 20})
	if err != nil {
		return nil, err
	}

	return decodeMedecinHits(res.Hits), nil
}

// decodeMedecinHits converts raw search hits into documents. A hit is a
// map of raw JSON fields, so each one is round-tripped through the
// encoder; malformed hits are skipped.
func decodeMedecinHits(hits meilisearch.Hits) []MedecinDocument {
	docs := make([]MedecinDocument, 0, len(hits))
	for _, hit := range hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var doc MedecinDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}
