// Пакет report - приёмник причин отклонения сообщений киоска.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/Gunvolt24/lmnh_kiosk/internal/ports"
)

// Проверка, что Reporter удовлетворяет интерфейсу RejectionReporter.
var _ ports.RejectionReporter = (*Reporter)(nil)

// Reporter - пишет причину отказа в лог и, если задан путь, дописывает её в файл.
// Формат файла: "MESSAGE: <raw> \nMESSAGE ERROR: <reason>\n" на каждое сообщение.
type Reporter struct {
	log      ports.Logger
	filePath string

	mu   sync.Mutex
	file *os.File
}

// NewReporter - конструктор. Пустой filePath отключает запись в файл.
func NewReporter(log ports.Logger, filePath string) *Reporter {
	return &Reporter{log: log, filePath: filePath}
}

// Report - зафиксировать отказ. Ошибка возможна только при записи в файл.
func (r *Reporter) Report(ctx context.Context, raw []byte, reason string) error {
	r.log.Warnf(ctx, "MESSAGE ERROR: %s", reason)
	if r.filePath == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		// файл открывается один раз, при первом отказе
		f, err := os.OpenFile(r.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open error log: %w", err)
		}
		r.file = f
	}

	if _, err := fmt.Fprintf(r.file, "MESSAGE: %s \nMESSAGE ERROR: %s\n", singleLine(raw), reason); err != nil {
		return fmt.Errorf("write error log: %w", err)
	}
	return nil
}

// singleLine - payload в одну строку: JSON сжимается без потери порядка ключей,
// в остальном тексте переводы строк заменяются пробелами.
func singleLine(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err == nil {
		return buf.String()
	}
	return strings.Join(strings.Fields(string(raw)), " ")
}

// Close - закрыть файл журнала (если открывался). Повторный вызов безопасен.
func (r *Reporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
