package assistant

import "go.uber.org/zap"

// Sender is anything that accepts forwarded intents.
type Sender interface {
	Send(text string)
}

// LogSink writes every forwarded intent to the logger.
type LogSink struct {
	logger  *zap.Logger
	session string
}

// NewLogSink logs intents for one session.
func NewLogSink(logger *zap.Logger, session string) *LogSink {
	return &LogSink{logger: logger, session: session}
}

func (s *LogSink) Send(text string) {
	s.logger.Info("intent forwarded", zap.String("session", s.session), zap.String("text", text))
}

// Fanout forwards each intent to every sender in order.
type Fanout []Sender

func (f Fanout) Send(text string) {
	for _, s := range f {
		if s != nil {
			s.Send(text)
		}
	}
}
