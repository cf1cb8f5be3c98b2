package domain

import (
	"errors"
	"strings"
)

var (
	ErrRunInProgress = errors.New("etl run already in progress")
	ErrInvalidOffer  = errors.New("invalid offer")
)

type ErrorKind string

const (
	KindFetch       ErrorKind = "fetch"
	KindParse       ErrorKind = "parse"
	KindPersistence ErrorKind = "persistence"
	KindSweep       ErrorKind = "sweep"
	KindRun         ErrorKind = "run"
)

// ErrorDetail is the structured failure record stored with a run log entry.
type ErrorDetail struct {
	Kind    ErrorKind         `json:"kind"`
	Message string            `json:"message"`
	Scope   string            `json:"scope,omitempty"`
	Context map[string]string `json:"context,omitempty"`
	Causes  []ErrorDetail     `json:"causes,omitempty"`
}

func (e *ErrorDetail) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Kind))
	if e.Scope != "" {
		sb.WriteString(" [")
		sb.WriteString(e.Scope)
		sb.WriteString("]")
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	return sb.String()
}

// NewErrorDetail builds a detail from err.
func NewErrorDetail(kind ErrorKind, scope string, err error) *ErrorDetail {
	return &ErrorDetail{Kind: kind, Scope: scope, Message: err.Error()}
}
