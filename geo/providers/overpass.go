package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"tripserver/geo/enrichment"
	"tripserver/geo/types"
)

// Приблизительное число километров в одном градусе широты.
const kmPerDegree = 111.0

// OverpassProvider клиент Overpass API: поиск объектов по тег-фильтру
// внутри ограничивающего прямоугольника вокруг заданного центра.
type OverpassProvider struct {
	baseURL    string
	userAgent  string
	cap        int
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	available  bool
}

// NewOverpassProvider создает новый клиент Overpass.
func NewOverpassProvider(baseURL, userAgent string, timeout, rateLimit time.Duration, cap int) *OverpassProvider {
	if baseURL == "" {
		baseURL = "https://overpass-api.de/api/interpreter"
	}
	if cap <= 0 {
		cap = 40
	}

	return &OverpassProvider{
		baseURL:   baseURL,
		userAgent: userAgent,
		cap:       cap,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Every(rateLimit), 1),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "overpass",
			Timeout: 60 * time.Second,
		}),
		available: true,
	}
}

// GetName возвращает имя провайдера.
func (p *OverpassProvider) GetName() string {
	return "overpass"
}

// IsAvailable проверяет доступность провайдера.
func (p *OverpassProvider) IsAvailable() bool {
	return p.available
}

// overpassResponse ответ Overpass API.
type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// overpassElement точечный или площадной элемент ответа Overpass.
// У way/relation координаты приходят в Center (out center).
type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *overpassCenter   `json:"center,omitempty"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SearchBBox ищет объекты, подходящие под filter, в квадрате вокруг center.
// Радиус в километрах переводится в градусную дельту (~км/111).
func (p *OverpassProvider) SearchBBox(ctx context.Context, center types.GeoPoint, radiusKm float64, filter, label, imageURL string) ([]types.PlaceRecord, error) {
	delta := radiusKm / kmPerDegree
	bbox := fmt.Sprintf("%f,%f,%f,%f", center.Lat-delta, center.Lon-delta, center.Lat+delta, center.Lon+delta)

	query := fmt.Sprintf(`[out:json][timeout:25];
(
  node%s(%s);
  way%s(%s);
);
out center %d;`, filter, bbox, filter, bbox, p.cap)

	resp, err := p.doRequest(ctx, query)
	if err != nil {
		return nil, err
	}

	return p.transformElements(resp.Elements, label, imageURL), nil
}

// Lookup возвращает одну запись по виду и идентификатору элемента.
func (p *OverpassProvider) Lookup(ctx context.Context, elementKind string, elementID int64) (*types.PlaceRecord, error) {
	switch elementKind {
	case "node", "way", "relation":
	default:
		return nil, fmt.Errorf("unknown element kind: %s", elementKind)
	}

	query := fmt.Sprintf(`[out:json];%s(%d);out center;`, elementKind, elementID)

	resp, err := p.doRequest(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(resp.Elements) == 0 {
		return nil, fmt.Errorf("element %s/%d not found", elementKind, elementID)
	}

	records := p.transformElements(resp.Elements[:1], "", "")
	if len(records) == 0 {
		if resolveName("", resp.Elements[0].Tags) == "" {
			return nil, fmt.Errorf("element %s/%d has no resolvable name", elementKind, elementID)
		}
		return nil, fmt.Errorf("element %s/%d has no usable coordinates", elementKind, elementID)
	}
	return &records[0], nil
}

// doRequest отправляет Overpass QL запрос с rate limit и circuit breaker.
func (p *OverpassProvider) doRequest(ctx context.Context, query string) (*overpassResponse, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	form := url.Values{}
	form.Set("data", query)

	result, err := p.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", p.userAgent)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

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

		var parsed overpassResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		p.available = true
		return &parsed, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*overpassResponse), nil
}

// transformElements преобразует элементы Overpass в унифицированные записи.
// Класс-фильтр не нужен: выборка уже ограничена тег-фильтром запроса.
// Дубликаты по имени внутри пачки отбрасываются, первый выигрывает.
func (p *OverpassProvider) transformElements(elements []overpassElement, label, imageURL string) []types.PlaceRecord {
	records := make([]types.PlaceRecord, 0, len(elements))
	seen := make(map[string]bool)

	for _, el := range elements {
		name := resolveName("", el.Tags)
		if name == "" {
			continue
		}
		if seen[name] {
			continue
		}

		lat, lon := el.Lat, el.Lon
		if el.Center != nil {
			lat, lon = el.Center.Lat, el.Center.Lon
		}
		if lat == 0 && lon == 0 {
			continue
		}

		seen[name] = true

		id := fmt.Sprintf("ovp_%s_%d", el.Type, el.ID)
		records = append(records, types.PlaceRecord{
			ID:           id,
			Name:         name,
			Description:  describeElement(el.Tags, label),
			Location:     assembleOverpassAddress(el.Tags),
			Phone:        tagOrFallback(el.Tags, FallbackPhone, "phone", "contact:phone"),
			OpeningHours: tagOrFallback(el.Tags, FallbackHours, "opening_hours"),
			PriceFee:     priceFromTags(el.Tags),
			Latitude:     lat,
			Longitude:    lon,
			Rating:       enrichment.Rating(id),
			CategoryName: label,
			MapLink:      fmt.Sprintf("https://www.openstreetmap.org/?mlat=%f&mlon=%f", lat, lon),
			ImageURL:     imageURL,
			FromOSM:      true,
		})
	}

	return records
}

// describeElement собирает описание из тегов description/cuisine либо
// подписи категории.
func describeElement(tags map[string]string, label string) string {
	if desc := strings.TrimSpace(tags["description"]); desc != "" {
		return desc
	}
	if cuisine := strings.TrimSpace(tags["cuisine"]); cuisine != "" {
		return fmt.Sprintf("Cuisine: %s", strings.ReplaceAll(cuisine, ";", ", "))
	}
	if label != "" {
		return label
	}
	return "Point of interest"
}

// assembleOverpassAddress собирает адрес из addr:* тегов в порядке
// дом → улица → район → город.
func assembleOverpassAddress(tags map[string]string) string {
	parts := make([]string, 0, 4)
	for _, key := range []string{"addr:housenumber", "addr:street", "addr:suburb", "addr:city"} {
		if v := strings.TrimSpace(tags[key]); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	return FallbackAddress
}
