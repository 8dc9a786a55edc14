package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	apperrors "tripserver/server/errors"
)

// CityInfo краткая справка о городе
type CityInfo struct {
	City      string `json:"city"`
	Summary   string `json:"summary"`
	SourceURL string `json:"source_url"`
}

// CityInfoService достает первый содержательный абзац статьи Википедии
// о городе. Запросы ограничены по частоте, как и к геопровайдерам.
type CityInfoService struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	titleCaser cases.Caser
}

// NewCityInfoService создает новый сервис справок о городах
func NewCityInfoService(baseURL, userAgent string, timeout time.Duration) *CityInfoService {
	return &CityInfoService{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		titleCaser: cases.Title(language.English),
	}
}

// Fetch возвращает справку о городе или NotFound, если статьи нет
func (s *CityInfoService) Fetch(ctx context.Context, city string) (*CityInfo, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, apperrors.NewValidationError("параметр city обязателен", nil)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, apperrors.NewInternalError("превышен лимит запросов", err)
	}

	title := strings.ReplaceAll(s.titleCaser.String(strings.ToLower(city)), " ", "_")
	pageURL := fmt.Sprintf("%s/wiki/%s", s.baseURL, url.PathEscape(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось создать запрос", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewBadGatewayError("источник справки недоступен", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.NewNotFoundError("Статья о городе не найдена", nil)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewBadGatewayError(
			fmt.Sprintf("источник справки вернул статус %d", resp.StatusCode), nil)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, apperrors.NewBadGatewayError("не удалось разобрать страницу", err)
	}

	summary := firstParagraph(doc)
	if summary == "" {
		return nil, apperrors.NewNotFoundError("Статья о городе не содержит описания", nil)
	}

	return &CityInfo{
		City:      title,
		Summary:   summary,
		SourceURL: pageURL,
	}, nil
}

// firstParagraph возвращает первый содержательный абзац статьи.
// Сноски ([1], [2], ...) и служебные span вырезаются до извлечения текста.
func firstParagraph(doc *goquery.Document) string {
	var summary string
	doc.Find("#mw-content-text .mw-parser-output > p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		sel.Find("sup").Remove()
		sel.Find("span.mw-ref").Remove()

		text := strings.TrimSpace(sel.Text())
		// Короткие абзацы — координаты, пометки "о других значениях" и т.п.
		if len(text) < 60 {
			return true
		}
		summary = text
		return false
	})
	return summary
}
