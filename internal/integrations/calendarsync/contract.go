package calendarsync

import "context"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// EventCreator отправляет событие во внешний календарь
type EventCreator interface {
	CreateEvent(ctx context.Context, event Event) (*EventResponse, error)
}

// Recorder учитывает результаты синхронизации в метриках
type Recorder interface {
	IncCalendarSync(result string)
}
