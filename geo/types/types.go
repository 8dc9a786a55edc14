package types

import (
	"context"
	"time"
)

// PlaceRecord унифицированная запись о месте, возвращаемая агрегатором.
// Поле ID имеет вид "<префикс провайдера>_<вид элемента>_<внешний id>"
// (например "osm_node_123456") и уникально только в пределах провайдера.
type PlaceRecord struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Location     string        `json:"location"`
	Phone        string        `json:"phone"`
	OpeningHours string        `json:"opening_hours"`
	PriceFee     string        `json:"price_fee"`
	Latitude     float64       `json:"latitude"`
	Longitude    float64       `json:"longitude"`
	Rating       float64       `json:"rating"`
	CategoryName string        `json:"category_name"`
	MapLink      string        `json:"map_link"`
	ImageURL     string        `json:"image_url"`
	FromOSM      bool          `json:"from_osm"`
	RealTime     *RealTimeInfo `json:"real_time,omitempty"`
}

// RealTimeInfo симулированный блок "реального времени" для транспортных
// категорий. Данные генерируются детерминированно по ID записи и никогда
// не являются телеметрией реальной транспортной системы, поэтому блок
// всегда помечен Simulated=true.
type RealTimeInfo struct {
	NextBusM  int    `json:"next_bus_m"`
	Operator  string `json:"operator"`
	SeatsLeft int    `json:"seats_left"`
	BusType   string `json:"bus_type"`
	OnTime    bool   `json:"on_time"`
	Simulated bool   `json:"simulated"`
}

// CategoryConfig статическая конфигурация категории: поисковая фраза для
// Nominatim, фильтр-выражение для Overpass и отображаемое название.
type CategoryConfig struct {
	Query  string // фраза свободного поиска ("restaurant", "car rental", ...)
	Filter string // тег-фильтр Overpass QL (`["amenity"="restaurant"]`, ...)
	Label  string // отображаемое название категории
}

// GeoPoint координата центра поиска (WGS84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// KeywordSearcher провайдер свободнотекстового поиска мест по городу.
type KeywordSearcher interface {
	// Search ищет места по фразе "<query> in <city>" и возвращает
	// нормализованные записи. Ошибка транспорта не фатальна для агрегации.
	Search(ctx context.Context, query, city, label, imageURL string) ([]PlaceRecord, error)

	// Geocode возвращает координату центра города.
	Geocode(ctx context.Context, city string) (*GeoPoint, error)

	// Lookup возвращает одну запись по внешнему идентификатору элемента.
	Lookup(ctx context.Context, elementKind string, elementID int64) (*PlaceRecord, error)

	// GetName возвращает имя провайдера.
	GetName() string
}

// BBoxSearcher провайдер поиска объектов внутри ограничивающего прямоугольника.
type BBoxSearcher interface {
	// SearchBBox ищет объекты, подходящие под фильтр, в квадрате вокруг центра.
	SearchBBox(ctx context.Context, center GeoPoint, radiusKm float64, filter, label, imageURL string) ([]PlaceRecord, error)

	// Lookup возвращает одну запись по внешнему идентификатору элемента.
	Lookup(ctx context.Context, elementKind string, elementID int64) (*PlaceRecord, error)

	// GetName возвращает имя провайдера.
	GetName() string
}

// ProviderStatus состояние провайдера для мониторинга.
type ProviderStatus struct {
	Name        string    `json:"name"`
	Available   bool      `json:"available"`
	LastRequest time.Time `json:"last_request,omitempty"`
}
