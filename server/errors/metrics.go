package errors

import (
	"sync"
	"time"
)

// ErrorMetricsCollector потокобезопасный счетчик ошибок API.
// Используется обработчиком health для диагностики без внешних систем.
type ErrorMetricsCollector struct {
	mu           sync.RWMutex
	totalErrors  int64
	byStatusCode map[int]int64
	byEndpoint   map[string]int64
	lastError    time.Time
	lastMessage  string
}

// NewErrorMetricsCollector создает новый сборщик метрик ошибок
func NewErrorMetricsCollector() *ErrorMetricsCollector {
	return &ErrorMetricsCollector{
		byStatusCode: make(map[int]int64),
		byEndpoint:   make(map[string]int64),
	}
}

// RecordError записывает ошибку в метрики
func (m *ErrorMetricsCollector) RecordError(appErr *AppError, endpoint string) {
	if appErr == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalErrors++
	m.byStatusCode[appErr.Code]++
	m.byEndpoint[endpoint]++
	m.lastError = time.Now()
	m.lastMessage = appErr.Message
}

// TotalErrors возвращает общее количество записанных ошибок
func (m *ErrorMetricsCollector) TotalErrors() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalErrors
}

// Summary возвращает сводку по ошибкам для мониторинга
func (m *ErrorMetricsCollector) Summary() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byCode := make(map[int]int64, len(m.byStatusCode))
	for code, count := range m.byStatusCode {
		byCode[code] = count
	}
	byEndpoint := make(map[string]int64, len(m.byEndpoint))
	for endpoint, count := range m.byEndpoint {
		byEndpoint[endpoint] = count
	}

	summary := map[string]interface{}{
		"total_errors":   m.totalErrors,
		"by_status_code": byCode,
		"by_endpoint":    byEndpoint,
	}
	if !m.lastError.IsZero() {
		summary["last_error_at"] = m.lastError.Format(time.RFC3339)
		summary["last_error_message"] = m.lastMessage
	}
	return summary
}
