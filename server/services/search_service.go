package services

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"

	"tripserver/database"
	apperrors "tripserver/server/errors"
)

// SearchService локальный поиск по сохраненным местам со стеммингом.
// "restaurants" находит "restaurant", "hiking" находит "hike" и т.д.
type SearchService struct {
	db *database.DB
}

// NewSearchService создает новый сервис локального поиска
func NewSearchService(db *database.DB) *SearchService {
	return &SearchService{db: db}
}

// SearchResult результат локального поиска
type SearchResult struct {
	Query   string           `json:"query"`
	Total   int              `json:"total"`
	Results []database.Place `json:"results"`
}

// Search ищет места, в имени или описании которых встречаются все
// термы запроса (после стемминга).
func (s *SearchService) Search(query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("параметр q обязателен", nil)
	}

	queryStems := stemTerms(query)
	if len(queryStems) == 0 {
		return nil, apperrors.NewValidationError("запрос не содержит слов", nil)
	}

	places, err := s.db.GetAllPlaces()
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось получить места", err)
	}

	results := make([]database.Place, 0)
	for _, place := range places {
		haystack := stemSet(place.Name + " " + place.Description + " " + place.CategoryName)
		if containsAll(haystack, queryStems) {
			results = append(results, place)
		}
	}

	return &SearchResult{
		Query:   query,
		Total:   len(results),
		Results: results,
	}, nil
}

// stemTerms разбивает текст на слова и стеммирует каждое.
// Слова, которые стеммер не осилил, остаются как есть в нижнем регистре.
func stemTerms(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	stems := make([]string, 0, len(words))
	for _, word := range words {
		stem, err := snowball.Stem(word, "english", true)
		if err != nil || stem == "" {
			stem = word
		}
		stems = append(stems, stem)
	}
	return stems
}

// stemSet строит множество стеммов текста
func stemSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, stem := range stemTerms(text) {
		set[stem] = struct{}{}
	}
	return set
}

// containsAll проверяет, что все термы присутствуют в множестве
func containsAll(set map[string]struct{}, terms []string) bool {
	for _, term := range terms {
		if _, ok := set[term]; !ok {
			return false
		}
	}
	return true
}
