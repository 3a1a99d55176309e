package entity

import (
	"errors"
	"fmt"
)

// Виды отказов сравнения. Отказ никогда не выражается числом 0.
var (
	ErrEngineUnavailable   = errors.New("image engine unavailable")
	ErrLoadFailure         = errors.New("image load failure")
	ErrDimensionMismatch   = errors.New("image dimension mismatch")
	ErrWriteFailure        = errors.New("diff write failure")
	ErrNegativeCorrelation = errors.New("negative histogram correlation")
	ErrOutOfRange          = errors.New("similarity out of range")
)

// CompareError описывает отказ конкретной операции.
type CompareError struct {
	Op   string // load, align, histogram, write, engine
	Path string // файл, к которому относится отказ (может быть пустым)
	Kind error  // один из Err* выше
	Err  error  // первопричина
}

func (e *CompareError) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.Path != "" {
		msg += fmt.Sprintf(" (%s)", e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap позволяет errors.Is находить и вид отказа, и первопричину.
func (e *CompareError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewLoadError отказ чтения или декодирования файла.
func NewLoadError(path string, cause error) *CompareError {
	return &CompareError{Op: "load", Path: path, Kind: ErrLoadFailure, Err: cause}
}

// NewWriteError отказ записи diff-артефакта.
func NewWriteError(path string, cause error) *CompareError {
	return &CompareError{Op: "write", Path: path, Kind: ErrWriteFailure, Err: cause}
}

// ParseError неизвестное значение в конфигурации.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Field, e.Value)
}
