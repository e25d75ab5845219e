package validate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/lmnh_kiosk/internal/domain"
	"github.com/Gunvolt24/lmnh_kiosk/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// ErrRejectedLines - в JSONL-выгрузке есть отклонённые или нечитаемые строки.
var ErrRejectedLines = errors.New("jsonl contains invalid lines")

// canonicalInteraction - вид принятого события в выводе офлайн-проверки.
type canonicalInteraction struct {
	Kind string `json:"kind"`
	At   string `json:"at"`
	Site int    `json:"site"`
	Val  int    `json:"val"`
	Type *int   `json:"type,omitempty"`
}

func writeCanonical(w io.Writer, interaction domain.Interaction) error {
	out := canonicalInteraction{
		Kind: interaction.Kind.String(),
		At:   interaction.OccurredAt.Format(OccurredAtLayout),
		Site: interaction.ExhibitionID,
		Val:  interaction.Value,
	}
	if interaction.Kind == domain.KindHelp {
		typeID := interaction.AssistanceTypeID
		out.Type = &typeID
	}
	line, err := json.Marshal(out)
	if err != nil {
		return err
	}
	_, err = w.Write(append(line, '\n'))
	return err
}

// ValidateFile - валидирует файл как JSON или JSONL, валидные события пишет в ow,
// причины отказа - в ew. Любая отклонённая строка JSONL даёт ErrRejectedLines
// (после того как все строки проверены и валидные выведены).
func ValidateFile(ctx context.Context, validator ports.InteractionValidator, filePath string, format InputFormat, ow, ew io.Writer) (string, error) {
	resSummary := ""

	// auto по расширению
	if format == FormatAuto {
		switch strings.ToLower(filepath.Ext(filePath)) {
		case ".jsonl":
			format = FormatJSONL
		default:
			// по умолчанию считаем JSON
			format = FormatJSON
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return resSummary, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatJSON:
		raw, err := io.ReadAll(file)
		if err != nil {
			return resSummary, fmt.Errorf("read file: %w", err)
		}
		interaction, err := ValidateInteractionFromJSON(ctx, validator, raw)
		if err != nil {
			return "0 valid / 1 invalid", err
		}
		if err := writeCanonical(ow, interaction); err != nil {
			return resSummary, fmt.Errorf("write json: %w", err)
		}
		return "1 valid / 0 invalid", nil

	case FormatJSONL:
		result, err := ValidateJSONLStream(ctx, validator, file, ow, ew)
		if err != nil {
			return resSummary, err
		}
		summary := fmt.Sprintf("%d valid / %d invalid", result.ValidLinesCount, result.InvalidLinesCount)
		if result.InvalidLinesCount > 0 {
			return summary, fmt.Errorf("%w: %d", ErrRejectedLines, result.InvalidLinesCount)
		}
		return summary, nil

	default:
		return resSummary, fmt.Errorf("unsupported format: %s", format)
	}
}
