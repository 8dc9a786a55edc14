package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"tripserver/geo/enrichment"
	"tripserver/geo/types"
)

// Литералы-заполнители для полей, которых нет в тегах источника.
// Не пустые строки, чтобы клиент не рендерил "дырки" в карточке места.
const (
	FallbackPhone   = "Contact details at location"
	FallbackHours   = "Open daily"
	FallbackPrice   = "See website"
	FallbackAddress = "City center area"
)

// NominatimProvider клиент свободнотекстового геокодера Nominatim.
// Выполняет поиск "<query> in <city>", геокодирование города и lookup
// по внешнему идентификатору элемента OSM.
type NominatimProvider struct {
	baseURL    string
	userAgent  string
	limit      int
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	available  bool
}

// NewNominatimProvider создает новый клиент Nominatim.
// rateLimit определяет минимальный интервал между запросами: политика
// использования Nominatim требует не более одного запроса в секунду.
func NewNominatimProvider(baseURL, userAgent string, timeout, rateLimit time.Duration, limit int) *NominatimProvider {
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	if limit <= 0 {
		limit = 40
	}

	return &NominatimProvider{
		baseURL:   baseURL,
		userAgent: userAgent,
		limit:     limit,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Every(rateLimit), 1),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "nominatim",
			Timeout: 60 * time.Second,
		}),
		available: true,
	}
}

// GetName возвращает имя провайдера.
func (p *NominatimProvider) GetName() string {
	return "nominatim"
}

// IsAvailable проверяет доступность провайдера.
func (p *NominatimProvider) IsAvailable() bool {
	return p.available
}

// nominatimItem сырой объект ответа Nominatim.
type nominatimItem struct {
	PlaceID     int64             `json:"place_id"`
	OSMType     string            `json:"osm_type"`
	OSMID       int64             `json:"osm_id"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Class       string            `json:"class"`
	Type        string            `json:"type"`
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	Address     nominatimAddress  `json:"address"`
	ExtraTags   map[string]string `json:"extratags"`
	NameDetails map[string]string `json:"namedetails"`
}

// nominatimAddress структурированные компоненты адреса в ответе Nominatim.
type nominatimAddress struct {
	HouseNumber   string `json:"house_number"`
	Road          string `json:"road"`
	Suburb        string `json:"suburb"`
	Neighbourhood string `json:"neighbourhood"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	StateDistrict string `json:"state_district"`
}

// Search выполняет свободнотекстовый поиск мест по фразе "<query> in <city>"
// и возвращает нормализованные записи. city используется как запасная
// подпись адреса, label и imageURL — отображаемые метаданные категории.
func (p *NominatimProvider) Search(ctx context.Context, query, city, label, imageURL string) ([]types.PlaceRecord, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("%s in %s", query, city))
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(p.limit))
	params.Set("addressdetails", "1")
	params.Set("extratags", "1")
	params.Set("namedetails", "1")

	items, err := p.doRequest(ctx, "/search", params)
	if err != nil {
		return nil, err
	}

	return p.transformItems(items, city, label, imageURL, true), nil
}

// Geocode возвращает координату центра города или ошибку, если город
// не найден.
func (p *NominatimProvider) Geocode(ctx context.Context, city string) (*types.GeoPoint, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("format", "json")
	params.Set("limit", "1")

	items, err := p.doRequest(ctx, "/search", params)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("city not found: %s", city)
	}

	lat, _ := strconv.ParseFloat(items[0].Lat, 64)
	lon, _ := strconv.ParseFloat(items[0].Lon, 64)
	if lat == 0 && lon == 0 {
		return nil, fmt.Errorf("city %s resolved to empty coordinates", city)
	}

	return &types.GeoPoint{Lat: lat, Lon: lon}, nil
}

// Lookup возвращает одну запись по виду и идентификатору элемента OSM
// (node/way/relation). Используется для карточки места с внешним ID.
func (p *NominatimProvider) Lookup(ctx context.Context, elementKind string, elementID int64) (*types.PlaceRecord, error) {
	prefix, ok := map[string]string{"node": "N", "way": "W", "relation": "R"}[elementKind]
	if !ok {
		return nil, fmt.Errorf("unknown element kind: %s", elementKind)
	}

	params := url.Values{}
	params.Set("osm_ids", fmt.Sprintf("%s%d", prefix, elementID))
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("extratags", "1")
	params.Set("namedetails", "1")

	items, err := p.doRequest(ctx, "/lookup", params)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("element %s/%d not found", elementKind, elementID)
	}

	// Для карточки класс-фильтр не применяется: элемент запросили явно.
	records := p.transformItems(items[:1], "", "", "", false)
	if len(records) == 0 {
		if resolveName(items[0].Name, items[0].NameDetails) == "" {
			return nil, fmt.Errorf("element %s/%d has no resolvable name", elementKind, elementID)
		}
		return nil, fmt.Errorf("element %s/%d has no usable coordinates", elementKind, elementID)
	}
	return &records[0], nil
}

// doRequest выполняет GET к Nominatim с rate limit, circuit breaker и
// таймаутом HTTP клиента.
func (p *NominatimProvider) doRequest(ctx context.Context, path string, params url.Values) ([]nominatimItem, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	fullURL := fmt.Sprintf("%s%s?%s", p.baseURL, path, params.Encode())

	result, err := p.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", p.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := p.httpClient.Do(req)
		if err != nil {
			p.available = false
			return nil, fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			p.available = false
			return nil, fmt.Errorf("rate limit exceeded: too many requests")
		}
		if resp.StatusCode != http.StatusOK {
			p.available = false
			return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, resp.Status)
		}

		var items []nominatimItem
		if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		p.available = true
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]nominatimItem), nil
}

// transformItems преобразует сырые объекты Nominatim в унифицированные
// записи: извлечение имени, фильтрация нерелевантных классов, сборка
// адреса, заполнители полей и детерминированный рейтинг.
// Дубликаты по имени внутри пачки отбрасываются, первый выигрывает.
func (p *NominatimProvider) transformItems(items []nominatimItem, city, label, imageURL string, filterClasses bool) []types.PlaceRecord {
	records := make([]types.PlaceRecord, 0, len(items))
	seen := make(map[string]bool)

	for _, item := range items {
		// Границы, дороги и административные единицы не являются местами,
		// которые посещает путешественник.
		if filterClasses && (item.Class == "boundary" || item.Class == "highway" || item.Class == "place") {
			continue
		}

		name := resolveName(item.Name, item.NameDetails)
		if name == "" {
			continue
		}
		if seen[name] {
			continue
		}

		lat, _ := strconv.ParseFloat(item.Lat, 64)
		lon, _ := strconv.ParseFloat(item.Lon, 64)
		if lat == 0 && lon == 0 {
			continue
		}

		seen[name] = true

		id := fmt.Sprintf("osm_%s_%d", item.OSMType, item.OSMID)
		records = append(records, types.PlaceRecord{
			ID:           id,
			Name:         name,
			Description:  fmt.Sprintf("Type: %s. %s", item.Type, item.DisplayName),
			Location:     assembleAddress(item.Address, item.DisplayName, city),
			Phone:        tagOrFallback(item.ExtraTags, FallbackPhone, "phone", "contact:phone"),
			OpeningHours: tagOrFallback(item.ExtraTags, FallbackHours, "opening_hours"),
			PriceFee:     priceFromTags(item.ExtraTags),
			Latitude:     lat,
			Longitude:    lon,
			Rating:       enrichment.Rating(id),
			CategoryName: label,
			MapLink:      fmt.Sprintf("https://www.openstreetmap.org/?mlat=%s&mlon=%s", item.Lat, item.Lon),
			ImageURL:     imageURL,
			FromOSM:      true,
		})
	}

	return records
}

// resolveName извлекает отображаемое имя с порядком предпочтения:
// локализованное имя → английское имя → бренд → имя верхнего уровня.
// Пустой результат означает, что запись нужно отбросить.
func resolveName(topLevel string, details map[string]string) string {
	for _, key := range []string{"name", "name:en", "brand"} {
		if v := strings.TrimSpace(details[key]); v != "" {
			return v
		}
	}
	return strings.TrimSpace(topLevel)
}

// assembleAddress собирает адрес из структурированных компонентов в порядке
// дом → улица → район → город. Если компонентов нет, берется первая часть
// display_name, затем подпись города по умолчанию.
func assembleAddress(addr nominatimAddress, displayName, defaultCity string) string {
	parts := make([]string, 0, 4)
	if addr.HouseNumber != "" {
		parts = append(parts, addr.HouseNumber)
	}
	if addr.Road != "" {
		parts = append(parts, addr.Road)
	}
	if addr.Suburb != "" {
		parts = append(parts, addr.Suburb)
	} else if addr.Neighbourhood != "" {
		parts = append(parts, addr.Neighbourhood)
	}
	city := addr.City
	if city == "" {
		city = addr.Town
	}
	if city == "" {
		city = addr.Village
	}
	if city == "" {
		city = addr.StateDistrict
	}
	if city != "" {
		parts = append(parts, city)
	}

	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	if displayName != "" {
		return strings.SplitN(displayName, ",", 2)[0]
	}
	return defaultCity
}

// tagOrFallback возвращает первый непустой тег из keys или заполнитель.
func tagOrFallback(tags map[string]string, fallback string, keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(tags[key]); v != "" {
			return v
		}
	}
	return fallback
}

// priceFromTags выводит строку стоимости из тегов fee/charge.
func priceFromTags(tags map[string]string) string {
	switch tags["fee"] {
	case "yes":
		if charge := strings.TrimSpace(tags["charge"]); charge != "" {
			return charge
		}
		return "Paid entry"
	case "no":
		return "Free entry"
	}
	if charge := strings.TrimSpace(tags["charge"]); charge != "" {
		return charge
	}
	return FallbackPrice
}
