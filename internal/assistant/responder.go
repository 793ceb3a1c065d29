package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// ErrResponderStopped is returned for work submitted after Stop.
var ErrResponderStopped = errors.New("responder stopped")

// ResponderConfig tunes the LLM responder.
type ResponderConfig struct {
	SystemPrompt string
	Timeout      time.Duration
	QueueSize    int
	Workers      int
	// History is how many transcript entries are sent as context.
	History int
}

type job struct {
	text       string
	transcript *Transcript
	notify     func(Entry)
}

// Responder answers forwarded intents asynchronously with an LLM and appends
// the reply to the session transcript. Submissions never block; when the
// queue is full the intent is dropped.
type Responder struct {
	model   llms.Model
	cfg     ResponderConfig
	logger  *zap.Logger
	queue   chan job
	wg      sync.WaitGroup
	mu      sync.RWMutex
	stopped bool
	dropped atomic.Int64
	failed  atomic.Int64
}

// NewResponder creates a responder. Call Start before submitting work.
func NewResponder(model llms.Model, cfg ResponderConfig, logger *zap.Logger) *Responder {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 32
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Responder{
		model:  model,
		cfg:    cfg,
		logger: logger,
		queue:  make(chan job, cfg.QueueSize),
	}
}

// Start launches the workers. They exit when ctx is cancelled or Stop is called.
func (r *Responder) Start(ctx context.Context) {
	for i := 0; i < r.cfg.Workers; i++ {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-r.queue:
					if !ok {
						return
					}
					r.handle(ctx, j)
				}
			}
		}()
	}
}

// Stop closes the queue and waits for in-flight replies.
func (r *Responder) Stop() {
	r.mu.Lock()
	if !r.stopped {
		r.stopped = true
		close(r.queue)
	}
	r.mu.Unlock()
	r.wg.Wait()
}

// For returns a sink that answers intents into transcript. notify, when set,
// is called with each reply entry.
func (r *Responder) For(transcript *Transcript, notify func(Entry)) Sender {
	return senderFunc(func(text string) {
		if err := r.submit(job{text: text, transcript: transcript, notify: notify}); err != nil {
			r.logger.Warn("assistant reply skipped", zap.Error(err))
		}
	})
}

// Dropped returns how many intents were dropped because the queue was full.
func (r *Responder) Dropped() int64 { return r.dropped.Load() }

// Failed returns how many model calls failed.
func (r *Responder) Failed() int64 { return r.failed.Load() }

func (r *Responder) submit(j job) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.stopped {
		return ErrResponderStopped
	}
	select {
	case r.queue <- j:
		return nil
	default:
		r.dropped.Add(1)
		return fmt.Errorf("assistant queue full, dropping %q", j.text)
	}
}

func (r *Responder) handle(ctx context.Context, j job) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	reply, err := r.Reply(ctx, j.transcript, j.text)
	if err != nil {
		r.failed.Add(1)
		r.logger.Error("assistant reply failed", zap.Error(err))
		return
	}
	entry := j.transcript.Append(RoleAssistant, reply)
	if j.notify != nil {
		j.notify(entry)
	}
}

// Reply asks the model to answer text given the recent transcript.
func (r *Responder) Reply(ctx context.Context, transcript *Transcript, text string) (string, error) {
	messages := r.buildMessages(transcript, text)
	resp, err := r.model.GenerateContent(ctx, messages, llms.WithTemperature(0.3))
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("empty response from model")
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

func (r *Responder) buildMessages(transcript *Transcript, text string) []llms.MessageContent {
	var messages []llms.MessageContent
	if r.cfg.SystemPrompt != "" {
		messages = append(messages, llms.TextParts(schema.ChatMessageTypeSystem, r.cfg.SystemPrompt))
	}

	var history []Entry
	if transcript != nil {
		history = transcript.Entries()
	}
	if r.cfg.History > 0 && len(history) > r.cfg.History {
		history = history[len(history)-r.cfg.History:]
	}
	for _, e := range history {
		msgType := schema.ChatMessageTypeHuman
		if e.Role == RoleAssistant {
			msgType = schema.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(msgType, e.Text))
	}

	if n := len(history); n == 0 || history[n-1].Role != RoleShopper || history[n-1].Text != text {
		messages = append(messages, llms.TextParts(schema.ChatMessageTypeHuman, text))
	}
	return messages
}

type senderFunc func(string)

func (f senderFunc) Send(text string) { f(text) }
