package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"tripserver/database"
	"tripserver/geo/enrichment"
	"tripserver/geo/types"
	"tripserver/internal/config"
	apperrors "tripserver/server/errors"
)

// DiscoveryService агрегатор поиска мест по внешним геопровайдерам.
// Первичный провайдер ищет по свободной фразе, вторичный подключается
// только при недоборе результатов (меньше порога FallbackMinResults).
type DiscoveryService struct {
	db      *database.DB
	keyword types.KeywordSearcher
	bbox    types.BBoxSearcher
	cfg     *config.DiscoveryConfig
}

// NewDiscoveryService создает новый сервис агрегации мест
func NewDiscoveryService(db *database.DB, keyword types.KeywordSearcher, bbox types.BBoxSearcher, cfg *config.DiscoveryConfig) *DiscoveryService {
	return &DiscoveryService{
		db:      db,
		keyword: keyword,
		bbox:    bbox,
		cfg:     cfg,
	}
}

// ResolveCategory находит категорию по токену: числовой токен трактуется
// как ID, любой другой — как slug без учета регистра.
func (s *DiscoveryService) ResolveCategory(token string) (*database.Category, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.NewValidationError("категория не указана", nil)
	}

	var category *database.Category
	var err error
	if id, convErr := strconv.Atoi(token); convErr == nil {
		category, err = s.db.GetCategoryByID(id)
	} else {
		category, err = s.db.GetCategoryBySlug(strings.ToLower(token))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось найти категорию", err)
	}
	if category == nil {
		return nil, apperrors.NewNotFoundError("Категория не найдена", nil)
	}
	return category, nil
}

// resolveEntry приводит токен категории к каноническому slug реестра.
// Токен трактуется как в ResolveCategory: числовой токен — это ID,
// любой другой — slug без учета регистра. Категория, известная базе,
// но отсутствующая в реестре, поиском не поддерживается.
func (s *DiscoveryService) resolveEntry(token string) (string, CategoryEntry, error) {
	slug := strings.ToLower(strings.TrimSpace(token))
	if slug == "" {
		return "", CategoryEntry{}, apperrors.NewValidationError("категория не указана", nil)
	}

	if entry, ok := CategoryEntryFor(slug); ok {
		return slug, entry, nil
	}

	category, err := s.ResolveCategory(slug)
	if err != nil {
		return "", CategoryEntry{}, err
	}
	entry, ok := CategoryEntryFor(category.Slug)
	if !ok {
		return "", CategoryEntry{}, apperrors.NewNotFoundError("Категория не найдена", nil)
	}
	return category.Slug, entry, nil
}

// DiscoverByCity ищет места категории в городе. Сначала опрашивается
// первичный провайдер; при недоборе город геокодируется и недостающие
// записи добираются из вторичного провайдера по квадрату вокруг центра.
// Отказ любого провайдера не фатален: возвращается то, что удалось собрать.
func (s *DiscoveryService) DiscoverByCity(ctx context.Context, city, token string, radiusKm float64) ([]types.PlaceRecord, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, apperrors.NewValidationError("параметр city обязателен", nil)
	}

	slug, entry, err := s.resolveEntry(token)
	if err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		radiusKm = s.cfg.CityRadiusKm
	}

	records, err := s.keyword.Search(ctx, entry.Config.Query, city, entry.Config.Label, entry.ImageURL)
	if err != nil {
		slog.Warn("первичный провайдер недоступен",
			"provider", s.keyword.GetName(),
			"city", city,
			"category", slug,
			"error", err,
		)
		records = nil
	}

	if len(records) >= s.cfg.FallbackMinResults {
		return s.finalize(records, slug), nil
	}

	center, err := s.keyword.Geocode(ctx, city)
	if err != nil {
		slog.Warn("геокодирование города не удалось, вторичный поиск пропущен",
			"city", city,
			"error", err,
		)
		return s.finalize(records, slug), nil
	}

	secondary, err := s.bbox.SearchBBox(ctx, *center, radiusKm, entry.Config.Filter, entry.Config.Label, entry.ImageURL)
	if err != nil {
		slog.Warn("вторичный провайдер недоступен",
			"provider", s.bbox.GetName(),
			"city", city,
			"category", slug,
			"error", err,
		)
		return s.finalize(records, slug), nil
	}

	records = mergeByName(records, secondary)
	return s.finalize(records, slug), nil
}

// DiscoverNearby ищет места категории вокруг координаты.
// Используется только вторичный (bbox) провайдер.
func (s *DiscoveryService) DiscoverNearby(ctx context.Context, lat, lon float64, token string, radiusKm float64) ([]types.PlaceRecord, error) {
	if lat < -90 || lat > 90 {
		return nil, apperrors.NewValidationError("широта должна быть в диапазоне [-90, 90]", nil)
	}
	if lon < -180 || lon > 180 {
		return nil, apperrors.NewValidationError("долгота должна быть в диапазоне [-180, 180]", nil)
	}

	slug, entry, err := s.resolveEntry(token)
	if err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		radiusKm = s.cfg.NearbyRadiusKm
	}

	records, err := s.bbox.SearchBBox(ctx, types.GeoPoint{Lat: lat, Lon: lon}, radiusKm, entry.Config.Filter, entry.Config.Label, entry.ImageURL)
	if err != nil {
		slog.Warn("провайдер недоступен при поиске рядом",
			"provider", s.bbox.GetName(),
			"category", slug,
			"error", err,
		)
		records = nil
	}

	return s.finalize(records, slug), nil
}

// PlaceDetail возвращает одно место по идентификатору. Числовой ID ищется
// в локальной базе, префиксы "osm_" и "ovp_" направляются к провайдерам.
func (s *DiscoveryService) PlaceDetail(ctx context.Context, id string) (*types.PlaceRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.NewValidationError("идентификатор места не указан", nil)
	}

	if numericID, err := strconv.Atoi(id); err == nil {
		return s.localPlaceDetail(numericID)
	}

	prefix, kind, elementID, err := parseProviderID(id)
	if err != nil {
		return nil, err
	}

	var record *types.PlaceRecord
	var lookupErr error
	switch prefix {
	case "osm":
		record, lookupErr = s.keyword.Lookup(ctx, kind, elementID)
	case "ovp":
		record, lookupErr = s.bbox.Lookup(ctx, kind, elementID)
	}
	if lookupErr != nil {
		// Открытый circuit breaker — временное состояние, а не плохой ответ
		if errors.Is(lookupErr, gobreaker.ErrOpenState) || errors.Is(lookupErr, gobreaker.ErrTooManyRequests) {
			return nil, apperrors.NewServiceUnavailableError("внешний провайдер временно отключен", lookupErr)
		}
		return nil, apperrors.NewBadGatewayError("внешний провайдер недоступен", lookupErr)
	}
	if record == nil {
		return nil, apperrors.NewNotFoundError("Место не найдено", nil)
	}

	if record.CategoryName == categoryRegistry[slugBusTimings].Config.Label {
		record.RealTime = enrichment.RealTimeFor(record.ID)
	}
	return record, nil
}

// FetchResult итог пакетной загрузки мест из внешних провайдеров
type FetchResult struct {
	City     string         `json:"city"`
	Inserted int            `json:"inserted"`
	Skipped  int            `json:"skipped"`
	BySlug   map[string]int `json:"by_category"`
}

// FetchAndStore опрашивает провайдеров по всем категориям города и
// сохраняет новые места в локальную базу. Существующие (по имени в
// пределах категории) не дублируются.
func (s *DiscoveryService) FetchAndStore(ctx context.Context, city string) (*FetchResult, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, apperrors.NewValidationError("параметр city обязателен", nil)
	}

	result := &FetchResult{City: city, BySlug: make(map[string]int)}
	for _, slug := range SupportedSlugs() {
		category, err := s.db.GetCategoryBySlug(slug)
		if err != nil {
			return nil, apperrors.NewInternalError("не удалось получить категорию", err)
		}
		if category == nil {
			continue
		}

		records, err := s.DiscoverByCity(ctx, city, category.Slug, 0)
		if err != nil {
			slog.Warn("категория пропущена при пакетной загрузке",
				"category", category.Slug,
				"error", err,
			)
			continue
		}

		for _, record := range records {
			exists, err := s.db.PlaceExists(record.Name, category.ID)
			if err != nil {
				return nil, apperrors.NewInternalError("не удалось проверить дубликат", err)
			}
			if exists {
				result.Skipped++
				continue
			}

			if _, err := s.db.InsertPlace(database.Place{
				CategoryID:   category.ID,
				Name:         record.Name,
				Description:  record.Description,
				PriceFee:     record.PriceFee,
				Location:     record.Location,
				Phone:        record.Phone,
				MapLink:      record.MapLink,
				OpeningHours: record.OpeningHours,
				ImageURL:     record.ImageURL,
				Latitude:     record.Latitude,
				Longitude:    record.Longitude,
			}); err != nil {
				return nil, apperrors.NewInternalError("не удалось сохранить место", err)
			}
			result.Inserted++
			result.BySlug[category.Slug]++
		}
	}

	return result, nil
}

// LocalPlaces возвращает сохраненные места категории как унифицированные
// записи с детерминированным рейтингом и real_time для автобусов.
func (s *DiscoveryService) LocalPlaces(category *database.Category) ([]types.PlaceRecord, error) {
	places, err := s.db.GetPlacesByCategory(category.ID)
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось получить места", err)
	}

	records := make([]types.PlaceRecord, 0, len(places))
	for _, place := range places {
		records = append(records, localRecord(place, category.Slug))
	}
	return records, nil
}

// localPlaceDetail возвращает место из локальной базы
func (s *DiscoveryService) localPlaceDetail(id int) (*types.PlaceRecord, error) {
	place, err := s.db.GetPlaceByID(id)
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось получить место", err)
	}
	if place == nil {
		return nil, apperrors.NewNotFoundError("Место не найдено", nil)
	}

	category, err := s.db.GetCategoryByID(place.CategoryID)
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось получить категорию места", err)
	}

	slug := ""
	if category != nil {
		slug = category.Slug
	}
	record := localRecord(*place, slug)
	return &record, nil
}

// localRecord преобразует место из базы в унифицированную запись
func localRecord(place database.Place, slug string) types.PlaceRecord {
	seedID := fmt.Sprintf("local_place_%d", place.ID)
	record := types.PlaceRecord{
		ID:           strconv.Itoa(place.ID),
		Name:         place.Name,
		Description:  place.Description,
		Location:     place.Location,
		Phone:        place.Phone,
		OpeningHours: place.OpeningHours,
		PriceFee:     place.PriceFee,
		Latitude:     place.Latitude,
		Longitude:    place.Longitude,
		Rating:       enrichment.Rating(seedID),
		CategoryName: place.CategoryName,
		MapLink:      place.MapLink,
		ImageURL:     place.ImageURL,
		FromOSM:      false,
	}
	if slug == slugBusTimings {
		record.RealTime = enrichment.RealTimeFor(seedID)
	}
	return record
}

// finalize навешивает симулированный real_time блок на автобусные записи
func (s *DiscoveryService) finalize(records []types.PlaceRecord, slug string) []types.PlaceRecord {
	if records == nil {
		records = make([]types.PlaceRecord, 0)
	}
	if slug != slugBusTimings {
		return records
	}
	for i := range records {
		records[i].RealTime = enrichment.RealTimeFor(records[i].ID)
	}
	return records
}

// mergeByName добавляет к primary записи secondary, имена которых еще
// не встречались (без учета регистра). Порядок primary сохраняется.
func mergeByName(primary, secondary []types.PlaceRecord) []types.PlaceRecord {
	seen := make(map[string]struct{}, len(primary))
	for _, record := range primary {
		seen[strings.ToLower(record.Name)] = struct{}{}
	}

	merged := primary
	for _, record := range secondary {
		key := strings.ToLower(record.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, record)
	}
	return merged
}

// parseProviderID разбирает идентификатор вида "osm_node_123456"
func parseProviderID(id string) (prefix, kind string, elementID int64, err error) {
	parts := strings.SplitN(id, "_", 3)
	if len(parts) != 3 {
		return "", "", 0, apperrors.NewValidationError("некорректный идентификатор места", nil)
	}

	prefix = parts[0]
	if prefix != "osm" && prefix != "ovp" {
		return "", "", 0, apperrors.NewValidationError("неизвестный префикс идентификатора", nil)
	}

	kind = parts[1]
	switch kind {
	case "node", "way", "relation":
	default:
		return "", "", 0, apperrors.NewValidationError("неизвестный вид элемента", nil)
	}

	elementID, convErr := strconv.ParseInt(parts[2], 10, 64)
	if convErr != nil || elementID <= 0 {
		return "", "", 0, apperrors.NewValidationError("некорректный номер элемента", convErr)
	}
	return prefix, kind, elementID, nil
}
