package scanner

import (
	"errors"
	"fmt"

	"codelines/internal/classifier"
	"codelines/internal/languages"
	"codelines/internal/model"
)

// TraversalError 表示目录无法列出。
type TraversalError struct {
	Path string
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("list directory %s: %v", e.Path, e.Err)
}

func (e *TraversalError) Unwrap() error {
	return e.Err
}

// toScanError 把内部错误映射为报告中的错误标记。
func toScanError(err error) *model.ScanError {
	var (
		readErr      *classifier.FileReadError
		traversalErr *TraversalError
	)

	kind := model.ErrorFileRead
	switch {
	case errors.Is(err, languages.ErrUnsupportedLanguage):
		kind = model.ErrorUnsupportedLanguage
	case errors.As(err, &traversalErr):
		kind = model.ErrorTraversal
	case errors.As(err, &readErr):
		kind = model.ErrorFileRead
	}

	return &model.ScanError{Kind: kind, Message: err.Error()}
}
