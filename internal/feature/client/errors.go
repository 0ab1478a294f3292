package client

import (
	"fmt"

	"salon-suite/internal/domain"
)

// ValidationError：调用方入参缺失，不重试
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// DuplicateError：业务冲突而非故障，携带命中的客户供调用方甄别。
// Kind 取 "phone" / "name"，电话命中优先。
type DuplicateError struct {
	Kind     string
	Existing domain.Client
}

func (e *DuplicateError) Error() string { return e.Message() }

func (e *DuplicateError) Message() string {
	if e.Kind == "phone" {
		return fmt.Sprintf("a client with this phone number already exists: %s", e.Existing.Name)
	}
	return fmt.Sprintf("a client with this name already exists: %s", e.Existing.Name)
}
