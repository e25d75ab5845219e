package validate

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Gunvolt24/lmnh_kiosk/internal/ports"
)

// JSONLResult - статистика валидации потока JSONL.
type JSONLResult struct {
	ValidLinesCount   int
	InvalidLinesCount int
}

// ValidateJSONLStream - читает JSONL из reader’а, валидирует каждую строку, валидные пишет в ow
// в каноническом виде, причины отказа - в ew ("line N: причина"). ew может быть nil.
// Пустые строки пропускаются; не-JSON строка считается невалидной, поток не прерывается.
func ValidateJSONLStream(ctx context.Context, validator ports.InteractionValidator, ir io.Reader, ow, ew io.Writer) (JSONLResult, error) {
	var res JSONLResult

	scanner := bufio.NewScanner(ir)
	// запас на большие строки
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		lineBytes := scanner.Bytes()
		if len(strings.TrimSpace(string(lineBytes))) == 0 {
			continue
		}

		interaction, err := ValidateInteractionFromJSON(ctx, validator, lineBytes)
		if err != nil {
			res.InvalidLinesCount++
			if ew != nil {
				reason := ReasonOf(err)
				if reason == "" {
					reason = err.Error()
				}
				if _, wErr := fmt.Fprintf(ew, "line %d: %s\n", lineNo, reason); wErr != nil {
					return res, fmt.Errorf("write reason: %w", wErr)
				}
			}
			continue
		}

		if err := writeCanonical(ow, interaction); err != nil {
			return res, fmt.Errorf("write valid line: %w", err)
		}
		res.ValidLinesCount++
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}
