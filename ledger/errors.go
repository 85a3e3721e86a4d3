package ledger

import (
	"errors"
	"fmt"

	"bitbucket.org/alrahmateam/medaid_backend/models"
	"bitbucket.org/alrahmateam/medaid_backend/utils"
)

// Kind is the closed error taxonomy at the mutation boundary. Callers
// branch on the kind, never on message text.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindTransient
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindTransient:
		return "transient"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

type Error struct {
	Kind   Kind
	Op     string
	Entity models.EntityType
	ID     string
	Err    error
}

func (e *Error) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s id=%s: %v", e.Op, e.Entity, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func notFoundError(op string, entity models.EntityType, id string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Entity: entity, ID: id, Err: utils.ErrorRecordNotFound}
}

func transientError(op string, entity models.EntityType, err error) *Error {
	return &Error{Kind: KindTransient, Op: op, Entity: entity, Err: err}
}

func validationError(op string, entity models.EntityType, err error) *Error {
	return &Error{Kind: KindValidation, Op: op, Entity: entity, Err: err}
}

// KindOf classifies any error; non-ledger errors are internal.
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	if errors.Is(err, utils.ErrorRecordNotFound) {
		return KindNotFound
	}
	return KindInternal
}

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
