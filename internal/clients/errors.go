package clients

import "fmt"

// ExternalError — неуспешный ответ или нечитаемое тело от внешнего
// сервиса. Оркестраторы при такой ошибке прерываются без частичной
// записи; ретраев нет, каждый вызов выполняется ровно один раз.
type ExternalError struct {
	Service string
	Status  int
	Err     error
}

func (e *ExternalError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("внешний сервис %s: HTTP %d", e.Service, e.Status)
	}
	return fmt.Sprintf("внешний сервис %s: %v", e.Service, e.Err)
}

func (e *ExternalError) Unwrap() error { return e.Err }
