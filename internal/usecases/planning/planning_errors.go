package planning

import (
	"errors"
	"fmt"
)

// Erros específicos para a geração de planos de alocação
var (
	// Erros de validação
	ErrInvalidRequest = errors.New("invalid allocation plan request")
	ErrNotAuthorized  = errors.New("carrier is not authorized for product")
	ErrNoActiveCities = errors.New("account has no active cities")
	ErrNoActiveNodes  = errors.New("account has no active nodes")

	// Erros de banco de dados
	ErrDataSource         = errors.New("error loading planning data")
	ErrPersistenceFailure = errors.New("error persisting draft plan")
	ErrPlanNotFound       = errors.New("allocation plan not found")
)

// PlanError é um erro com contexto adicional para o planejamento
type PlanError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
	Cause   error  // Erro original do colaborador, quando houver
}

// Error implementa a interface error
func (e *PlanError) Error() string {
	msg := e.Err.Error()
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	return msg
}

// Unwrap expõe tanto o erro base quanto a causa para errors.Is/As
func (e *PlanError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// NewPlanError cria um novo PlanError
func NewPlanError(err error, code string, details string) *PlanError {
	return &PlanError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewPlanErrorWithCause cria um novo PlanError guardando o erro do colaborador
func NewPlanErrorWithCause(err error, code string, cause error, details string) *PlanError {
	return &PlanError{
		Err:     err,
		Code:    code,
		Details: details,
		Cause:   cause,
	}
}
