package assistant

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeModel struct {
	mu      sync.Mutex
	calls   [][]llms.MessageContent
	reply   string
	err     error
	release chan struct{}
}

func (m *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if m.release != nil {
		select {
		case <-m.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	m.mu.Lock()
	m.calls = append(m.calls, messages)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "  " + m.reply + "\n"}}}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func (m *fakeModel) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func text(mc llms.MessageContent) string {
	if len(mc.Parts) == 0 {
		return ""
	}
	if tc, ok := mc.Parts[0].(llms.TextContent); ok {
		return tc.Text
	}
	return ""
}

func TestTranscript_Bounded(t *testing.T) {
	tr := NewTranscript(3)
	for _, s := range []string{"a", "b", "c", "d"} {
		tr.Send(s)
	}

	entries := tr.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "b", entries[0].Text)
	assert.Equal(t, RoleShopper, entries[2].Role)
}

func TestTranscript_Unbounded(t *testing.T) {
	tr := NewTranscript(0)
	for i := 0; i < 100; i++ {
		tr.Append(RoleAssistant, "x")
	}
	assert.Equal(t, 100, tr.Len())
}

func TestFanout(t *testing.T) {
	a, b := NewTranscript(0), NewTranscript(0)
	Fanout{a, nil, b}.Send("ดูสินค้า")

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, b.Len())
}

func TestLogSink(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	NewLogSink(zap.New(core), "s-1").Send("ติดตามออเดอร์ ORD-2024-001")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "intent forwarded", entry.Message)
	assert.Equal(t, "s-1", entry.ContextMap()["session"])
}

func TestResponder_Reply(t *testing.T) {
	model := &fakeModel{reply: "มะม่วงหวานมากค่ะ"}
	r := NewResponder(model, ResponderConfig{SystemPrompt: "be brief", History: 2}, nil)
	tr := NewTranscript(0)
	tr.Send("old question")
	tr.Append(RoleAssistant, "old answer")
	tr.Send("ขอดูรายละเอียดมะม่วงน้ำดอกไม้")

	reply, err := r.Reply(context.Background(), tr, "ขอดูรายละเอียดมะม่วงน้ำดอกไม้")

	require.NoError(t, err)
	assert.Equal(t, "มะม่วงหวานมากค่ะ", reply)
	require.Len(t, model.calls, 1)
	msgs := model.calls[0]
	require.Len(t, msgs, 3, "system prompt plus the last two entries")
	assert.Equal(t, schema.ChatMessageTypeSystem, msgs[0].Role)
	assert.Equal(t, schema.ChatMessageTypeAI, msgs[1].Role)
	assert.Equal(t, "ขอดูรายละเอียดมะม่วงน้ำดอกไม้", text(msgs[2]))
}

func TestResponder_ReplyAppendsQuestionMissingFromTranscript(t *testing.T) {
	model := &fakeModel{reply: "ok"}
	r := NewResponder(model, ResponderConfig{}, nil)

	_, err := r.Reply(context.Background(), nil, "hello")

	require.NoError(t, err)
	require.Len(t, model.calls[0], 1)
	assert.Equal(t, "hello", text(model.calls[0][0]))
}

func TestResponder_AnswersIntoTranscript(t *testing.T) {
	model := &fakeModel{reply: "จัดส่งพรุ่งนี้ค่ะ"}
	r := NewResponder(model, ResponderConfig{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	tr := NewTranscript(0)
	replies := make(chan Entry, 1)
	sink := Fanout{tr, r.For(tr, func(e Entry) { replies <- e })}
	sink.Send("ติดตามออเดอร์ ORD-2024-002")

	select {
	case e := <-replies:
		assert.Equal(t, RoleAssistant, e.Role)
		assert.Equal(t, "จัดส่งพรุ่งนี้ค่ะ", e.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("no reply")
	}
	r.Stop()

	entries := tr.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, RoleShopper, entries[0].Role)
	assert.Equal(t, RoleAssistant, entries[1].Role)
}

func TestResponder_DropsWhenQueueFull(t *testing.T) {
	model := &fakeModel{reply: "x", release: make(chan struct{})}
	r := NewResponder(model, ResponderConfig{QueueSize: 1}, nil)
	sink := r.For(NewTranscript(0), nil)

	sink.Send("one")
	sink.Send("two")
	sink.Send("three")

	assert.EqualValues(t, 2, r.Dropped())
}

func TestResponder_CountsFailures(t *testing.T) {
	model := &fakeModel{err: errors.New("rate limited")}
	r := NewResponder(model, ResponderConfig{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	tr := NewTranscript(0)
	r.For(tr, nil).Send("hi")
	r.Stop()

	assert.EqualValues(t, 1, r.Failed())
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, 1, model.callCount())
}

func TestResponder_SubmitAfterStop(t *testing.T) {
	r := NewResponder(&fakeModel{}, ResponderConfig{}, nil)
	r.Start(context.Background())
	r.Stop()

	assert.ErrorIs(t, r.submit(job{text: "late"}), ErrResponderStopped)
	r.For(NewTranscript(0), nil).Send("late")
}
