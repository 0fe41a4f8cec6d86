package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind is the question type reported by the answer service
type Kind string

const (
	KindUnknown        Kind = "unknown"
	KindFillInBlank    Kind = "blank"
	KindMultipleChoice Kind = "choice"
	KindTrueFalse      Kind = "judge"
)

// Placeholder is shown in every field of the default record
const Placeholder = "暂无"

// AnswerSeparator is placed between answers, never after the last one
const AnswerSeparator = "，"

var kindLabels = map[Kind]string{
	KindUnknown:        "未知",
	KindMultipleChoice: "选择",
	KindFillInBlank:    "填空",
	KindTrueFalse:      "判断",
}

// Label returns the human readable name of the kind
func (k Kind) Label() string {
	if label, ok := kindLabels[k]; ok {
		return label
	}
	return kindLabels[KindUnknown]
}

// Valid reports whether k belongs to the closed set of kinds
func (k Kind) Valid() bool {
	_, ok := kindLabels[k]
	return ok
}

// AnswerRecord is a single answer returned by the lookup service
type AnswerRecord struct {
	Question string   `json:"question" validate:"required"`
	Answers  []string `json:"answers" validate:"min=1"`
	From     string   `json:"from"`
	Title    string   `json:"title"`
	Type     Kind     `json:"type" validate:"oneof=unknown blank choice judge"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultRecord returns the placeholder record used when no answer is available
func DefaultRecord() AnswerRecord {
	return AnswerRecord{
		Question: Placeholder,
		Answers:  []string{Placeholder},
		From:     Placeholder,
		Title:    "",
		Type:     KindUnknown,
	}
}

// Validate rejects partial records
func (r AnswerRecord) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid answer record: %w", err)
	}
	return nil
}

// IsDefault reports whether r is the placeholder record
func (r AnswerRecord) IsDefault() bool {
	return r.Equal(DefaultRecord())
}

// Equal compares two records field by field
func (r AnswerRecord) Equal(other AnswerRecord) bool {
	return r.Question == other.Question &&
		r.From == other.From &&
		r.Title == other.Title &&
		r.Type == other.Type &&
		slices.Equal(r.Answers, other.Answers)
}

// JoinedAnswers joins the answers with sep between elements
func (r AnswerRecord) JoinedAnswers(sep string) string {
	return strings.Join(r.Answers, sep)
}

// Clone returns a copy that does not share the answers slice
func (r AnswerRecord) Clone() AnswerRecord {
	r.Answers = slices.Clone(r.Answers)
	return r
}
