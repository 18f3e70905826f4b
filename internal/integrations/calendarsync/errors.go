package calendarsync

import "errors"

var (
	// ErrInternal ошибка формирования или отправки запроса
	ErrInternal = errors.New("calendarsync: internal error")

	// ErrInvalidResponse календарь ответил неожиданным статусом или телом
	ErrInvalidResponse = errors.New("calendarsync: invalid response")

	// ErrRejected календарь отклонил событие (4xx), повтор не поможет
	ErrRejected = errors.New("calendarsync: event rejected")

	// ErrCircuitOpen circuit breaker разомкнут, запрос не отправлялся
	ErrCircuitOpen = errors.New("calendarsync: circuit breaker is open")

	// ErrQueueFull очередь синхронизации переполнена, задача отброшена
	ErrQueueFull = errors.New("calendarsync: sync queue is full")

	// ErrDispatcherStopped диспетчер остановлен
	ErrDispatcherStopped = errors.New("calendarsync: dispatcher stopped")
)
