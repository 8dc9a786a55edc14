package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newTestNominatim создает клиент с миллисекундным rate limit для тестов
func newTestNominatim(baseURL string) *NominatimProvider {
	return NewNominatimProvider(baseURL, "test-agent/1.0", 5*time.Second, time.Millisecond, 40)
}

func TestNominatimSearchTransforms(t *testing.T) {
	response := `[
		{
			"osm_type": "node", "osm_id": 111,
			"lat": "48.8566", "lon": "2.3522",
			"class": "amenity", "type": "restaurant",
			"name": "Chez Test",
			"display_name": "Chez Test, Rue de Test, Paris, France",
			"address": {"house_number": "5", "road": "Rue de Test", "city": "Paris"},
			"extratags": {"phone": "+33 1 23 45 67 89", "opening_hours": "Mo-Su 10:00-22:00", "fee": "no"},
			"namedetails": {"name": "Chez Test"}
		},
		{
			"osm_type": "relation", "osm_id": 222,
			"lat": "48.85", "lon": "2.35",
			"class": "boundary", "type": "administrative",
			"name": "Paris",
			"display_name": "Paris, France",
			"namedetails": {"name": "Paris"}
		},
		{
			"osm_type": "node", "osm_id": 333,
			"lat": "48.86", "lon": "2.36",
			"class": "amenity", "type": "restaurant",
			"name": "Chez Test",
			"display_name": "Chez Test (duplicate)",
			"namedetails": {"name": "Chez Test"}
		},
		{
			"osm_type": "node", "osm_id": 444,
			"lat": "0", "lon": "0",
			"class": "amenity", "type": "restaurant",
			"name": "Null Island Cafe",
			"display_name": "Null Island Cafe",
			"namedetails": {"name": "Null Island Cafe"}
		},
		{
			"osm_type": "node", "osm_id": 555,
			"lat": "48.87", "lon": "2.37",
			"class": "amenity", "type": "restaurant",
			"name": "",
			"display_name": "Unnamed place",
			"namedetails": {}
		}
	]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("ожидается путь /search, получен %s", r.URL.Path)
		}
		if r.Header.Get("User-Agent") != "test-agent/1.0" {
			t.Errorf("User-Agent не проброшен: %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(response))
	}))
	defer srv.Close()

	p := newTestNominatim(srv.URL)
	records, err := p.Search(context.Background(), "restaurant", "Paris", "Restaurants", "https://img.example/restaurant.jpg")
	if err != nil {
		t.Fatalf("Search вернул ошибку: %v", err)
	}

	// Граница, дубликат, нулевые координаты и безымянная запись отброшены
	if len(records) != 1 {
		t.Fatalf("ожидается 1 запись, получено %d", len(records))
	}

	rec := records[0]
	if rec.ID != "osm_node_111" {
		t.Errorf("ID = %q, ожидается osm_node_111", rec.ID)
	}
	if rec.Name != "Chez Test" {
		t.Errorf("Name = %q", rec.Name)
	}
	if rec.Location != "5, Rue de Test, Paris" {
		t.Errorf("Location = %q", rec.Location)
	}
	if rec.Phone != "+33 1 23 45 67 89" {
		t.Errorf("Phone = %q", rec.Phone)
	}
	if rec.OpeningHours != "Mo-Su 10:00-22:00" {
		t.Errorf("OpeningHours = %q", rec.OpeningHours)
	}
	if rec.PriceFee != "Free entry" {
		t.Errorf("PriceFee = %q, ожидается Free entry", rec.PriceFee)
	}
	if rec.Rating < 3.5 || rec.Rating > 4.9 {
		t.Errorf("Rating = %v вне диапазона", rec.Rating)
	}
	if rec.CategoryName != "Restaurants" {
		t.Errorf("CategoryName = %q", rec.CategoryName)
	}
	if !rec.FromOSM {
		t.Error("FromOSM должен быть true")
	}
	if rec.RealTime != nil {
		t.Error("провайдер не должен навешивать real_time")
	}
}

func TestNominatimSearchFallbacks(t *testing.T) {
	response := `[
		{
			"osm_type": "way", "osm_id": 777,
			"lat": "51.5", "lon": "-0.12",
			"class": "tourism", "type": "hotel",
			"name": "Plain Hotel",
			"display_name": "Plain Hotel, Somewhere, London",
			"address": {},
			"extratags": {},
			"namedetails": {"name": "Plain Hotel"}
		}
	]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(response))
	}))
	defer srv.Close()

	p := newTestNominatim(srv.URL)
	records, err := p.Search(context.Background(), "hotel", "London", "Hotels", "")
	if err != nil {
		t.Fatalf("Search вернул ошибку: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("ожидается 1 запись, получено %d", len(records))
	}

	rec := records[0]
	if rec.Phone != FallbackPhone {
		t.Errorf("Phone = %q, ожидается заполнитель %q", rec.Phone, FallbackPhone)
	}
	if rec.OpeningHours != FallbackHours {
		t.Errorf("OpeningHours = %q, ожидается заполнитель %q", rec.OpeningHours, FallbackHours)
	}
	if rec.PriceFee != FallbackPrice {
		t.Errorf("PriceFee = %q, ожидается заполнитель %q", rec.PriceFee, FallbackPrice)
	}
	// Компонентов адреса нет — берется первая часть display_name
	if rec.Location != "Plain Hotel" {
		t.Errorf("Location = %q, ожидается Plain Hotel", rec.Location)
	}
}

func TestNominatimGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "Paris" {
			w.Write([]byte(`[{"osm_type": "relation", "osm_id": 1, "lat": "48.8566", "lon": "2.3522", "display_name": "Paris"}]`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	p := newTestNominatim(srv.URL)

	point, err := p.Geocode(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("Geocode вернул ошибку: %v", err)
	}
	if point.Lat != 48.8566 || point.Lon != 2.3522 {
		t.Errorf("центр = %+v, ожидается 48.8566/2.3522", point)
	}

	if _, err := p.Geocode(context.Background(), "Nowhereville"); err == nil {
		t.Error("ожидается ошибка для неизвестного города")
	}
}

func TestNominatimLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lookup" {
			t.Errorf("ожидается путь /lookup, получен %s", r.URL.Path)
		}
		if r.URL.Query().Get("osm_ids") != "N123" {
			t.Errorf("osm_ids = %q, ожидается N123", r.URL.Query().Get("osm_ids"))
		}
		w.Write([]byte(`[{
			"osm_type": "node", "osm_id": 123,
			"lat": "40.1", "lon": "-3.7",
			"class": "amenity", "type": "restaurant",
			"name": "Lookup Cafe",
			"display_name": "Lookup Cafe, Madrid",
			"namedetails": {"name": "Lookup Cafe"}
		}]`))
	}))
	defer srv.Close()

	p := newTestNominatim(srv.URL)
	rec, err := p.Lookup(context.Background(), "node", 123)
	if err != nil {
		t.Fatalf("Lookup вернул ошибку: %v", err)
	}
	if rec.ID != "osm_node_123" {
		t.Errorf("ID = %q", rec.ID)
	}
	if rec.Name != "Lookup Cafe" {
		t.Errorf("Name = %q", rec.Name)
	}

	if _, err := p.Lookup(context.Background(), "galaxy", 1); err == nil {
		t.Error("ожидается ошибка для неизвестного вида элемента")
	}
}

func TestNominatimLookupDropReasons(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("osm_ids") {
		case "N1":
			// Имя есть, координаты нулевые
			w.Write([]byte(`[{
				"osm_type": "node", "osm_id": 1, "lat": "0", "lon": "0",
				"name": "Ghost Cafe", "display_name": "Ghost Cafe",
				"namedetails": {"name": "Ghost Cafe"}
			}]`))
		default:
			// Координаты есть, имени нет
			w.Write([]byte(`[{
				"osm_type": "node", "osm_id": 2, "lat": "10.0", "lon": "20.0",
				"name": "", "display_name": "Unnamed place",
				"namedetails": {}
			}]`))
		}
	}))
	defer srv.Close()

	p := newTestNominatim(srv.URL)

	_, err := p.Lookup(context.Background(), "node", 1)
	if err == nil || !strings.Contains(err.Error(), "coordinates") {
		t.Errorf("нулевые координаты: err = %v, ожидается причина про координаты", err)
	}

	_, err = p.Lookup(context.Background(), "node", 2)
	if err == nil || !strings.Contains(err.Error(), "name") {
		t.Errorf("безымянный элемент: err = %v, ожидается причина про имя", err)
	}
}

func TestNominatimServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := newTestNominatim(srv.URL)
	if _, err := p.Search(context.Background(), "restaurant", "Paris", "Restaurants", ""); err == nil {
		t.Error("ожидается ошибка при статусе 500")
	}
	if p.IsAvailable() {
		t.Error("провайдер должен быть помечен недоступным после 500")
	}
}
