package plan

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the closed set of pipeline failure classes.
type Kind string

const (
	KindConfiguration   Kind = "ConfigurationError"
	KindGeneration      Kind = "GenerationError"
	KindMalformedOutput Kind = "MalformedOutputError"
	KindValidation      Kind = "ValidationError"
)

var (
	ErrConfiguration   = errors.New("plan: generation credential is not configured")
	ErrGeneration      = errors.New("plan: generation failed")
	ErrMalformedOutput = errors.New("plan: generation output was not parseable JSON")
	ErrValidation      = errors.New("plan: generation output does not satisfy the plan contract")
)

// Error is the terminal failure of one pipeline run. Fields is only set for
// KindValidation and is meant for diagnostics, never for the end user.
type Error struct {
	Kind   Kind
	Fields []string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(sentinelFor(e.Kind).Error())
	if len(e.Fields) > 0 {
		fmt.Fprintf(&b, " (fields: %s)", strings.Join(e.Fields, ", "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match the per-kind sentinels.
func (e *Error) Is(target error) bool {
	return target == sentinelFor(e.Kind)
}

func sentinelFor(k Kind) error {
	switch k {
	case KindConfiguration:
		return ErrConfiguration
	case KindMalformedOutput:
		return ErrMalformedOutput
	case KindValidation:
		return ErrValidation
	default:
		return ErrGeneration
	}
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Classify maps any error out of the pipeline to its Kind. Errors that did not
// originate in the pipeline are treated as generation failures.
func Classify(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	switch {
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, ErrMalformedOutput):
		return KindMalformedOutput
	case errors.Is(err, ErrValidation):
		return KindValidation
	}
	return KindGeneration
}

var userMessages = map[Language]map[Kind]string{
	LangEnglish: {
		KindConfiguration:   "The planner is not configured yet. Please contact the administrator.",
		KindGeneration:      "We could not generate a travel plan right now. Please try again in a moment.",
		KindMalformedOutput: "The travel plan came back in an unexpected format. Please try again.",
		KindValidation:      "The travel plan was incomplete. Please try again.",
	},
	LangJapanese: {
		KindConfiguration:   "APIキーが設定されていません。管理者に確認してください。",
		KindGeneration:      "旅行プランの生成中にエラーが発生しました。時間を置いて試してください。",
		KindMalformedOutput: "旅行プランの形式が正しくありませんでした。もう一度試してください。",
		KindValidation:      "旅行プランの内容が不完全でした。もう一度試してください。",
	},
}

// UserMessage returns the short caller-facing text for a failure kind.
func UserMessage(kind Kind, lang Language) string {
	msgs, ok := userMessages[lang]
	if !ok {
		msgs = userMessages[LangEnglish]
	}
	if m, ok := msgs[kind]; ok {
		return m
	}
	return msgs[KindGeneration]
}
