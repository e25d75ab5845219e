package domain

import "time"

// RawEvent - декодированное JSON-сообщение киоска. Форма не гарантируется источником:
// все поля необязательны и не проверены до валидации.
type RawEvent map[string]any

// InteractionKind - тип факта, в который превращается валидное сообщение.
type InteractionKind int

const (
	// KindRating - оценка экспозиции посетителем (val от 0 до 4).
	KindRating InteractionKind = iota + 1
	// KindHelp - вызов помощи (val == -1, тип помощи в поле type).
	KindHelp
)

// AssistanceRequested - значение val, означающее вызов помощи вместо оценки.
const AssistanceRequested = -1

func (k InteractionKind) String() string {
	switch k {
	case KindRating:
		return "rating"
	case KindHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Interaction - результат успешной валидации одного сообщения.
// Живёт только на время обработки сообщения и не сохраняется как есть.
type Interaction struct {
	Kind             InteractionKind
	ExhibitionID     int
	Value            int
	AssistanceTypeID int // значим только для KindHelp
	OccurredAt       time.Time
}

// Rating - строка таблицы exhibition_rating.
type Rating struct {
	ExhibitionID int
	Value        int
	RatedAt      time.Time
}

// Help - строка таблицы exhibition_help.
type Help struct {
	ExhibitionID int
	TypeID       int
	CalledAt     time.Time
}

// Rating - проекция взаимодействия на оценку.
func (i Interaction) Rating() Rating {
	return Rating{ExhibitionID: i.ExhibitionID, Value: i.Value, RatedAt: i.OccurredAt}
}

// Help - проекция взаимодействия на вызов помощи.
func (i Interaction) Help() Help {
	return Help{ExhibitionID: i.ExhibitionID, TypeID: i.AssistanceTypeID, CalledAt: i.OccurredAt}
}

// Outcome - итог обработки одного сообщения. Ровно один на сообщение.
type Outcome int

const (
	OutcomeRejected Outcome = iota + 1
	OutcomeRatingSaved
	OutcomeHelpSaved
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeRatingSaved:
		return "rating_saved"
	case OutcomeHelpSaved:
		return "help_saved"
	default:
		return "unknown"
	}
}
