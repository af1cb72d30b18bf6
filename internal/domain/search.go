package domain

import (
	"math"
	"strconv"
)

// Score is a cosine similarity in [0,1] that marshals with exactly three
// decimal places, truncated (0.8421 -> 0.842).
type Score float64

// Truncate3 truncates a similarity to three decimal places.
func Truncate3(v float64) Score {
	return Score(math.Trunc(v*1000) / 1000)
}

// MarshalJSON renders the score as a number literal with three decimals.
func (s Score) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(s), 'f', 3, 64), nil
}

// UnmarshalJSON parses a plain number literal.
func (s *Score) UnmarshalJSON(data []byte) error {
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*s = Score(f)
	return nil
}

// DeveloperResult is a ranked people-search hit.
type DeveloperResult struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Similarity  Score    `json:"similarity"`
}

// ProjectResult is a ranked project-search hit. The stored embedding is
// never selected into this struct.
type ProjectResult struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	TechStack     []string `json:"tech_stack,omitempty"`
	OwnerUsername string   `json:"owner_username,omitempty"`
	Similarity    float64  `json:"similarity"`
}

// KeywordSearchRequest is a keyword (non-semantic) search request.
type KeywordSearchRequest struct {
	Query  string `form:"q" binding:"required,min=1"`
	Offset int    `form:"offset"`
	Limit  int    `form:"limit"`
}

// DeveloperDoc is a developer document in the keyword search index.
type DeveloperDoc struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	Skills      []string `json:"skills,omitempty"`
}

// ProjectDoc is a project document in the keyword search index.
type ProjectDoc struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	TechStack     []string `json:"tech_stack,omitempty"`
	OwnerUsername string   `json:"owner_username,omitempty"`
}

// KeywordSearchResponse bundles keyword hits from both indexes.
type KeywordSearchResponse struct {
	Developers []DeveloperDoc `json:"developers"`
	Projects   []ProjectDoc   `json:"projects"`
	Total      int            `json:"total"`
}
