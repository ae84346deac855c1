package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"bizbot/internal/entities"
	"bizbot/internal/repository"
)

const testSafeReply = "dificultades técnicas, intenta de nuevo"

type fakeProvider struct {
	businesses map[string]*entities.BusinessConfig
	err        error
}

func (f *fakeProvider) Resolve(_ context.Context, id string) (*entities.BusinessConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	if b, ok := f.businesses[id]; ok {
		return b, nil
	}
	return nil, repository.ErrBusinessNotFound
}

type recordingSink struct {
	records []entities.Interaction
	err     error
}

func (s *recordingSink) Record(_ context.Context, rec entities.Interaction) error {
	s.records = append(s.records, rec)
	return s.err
}

func newTestRouter(t *testing.T, provider *fakeProvider, sink *recordingSink) *MessageRouter {
	t.Helper()
	logger := zaptest.NewLogger(t)
	classifier := NewIntentClassifier(logger)
	require.NoError(t, classifier.Train(testEngineConfig()))
	dispatcher := NewIndustryDispatcher(testBank(), nil, logger)

	if sink == nil {
		return NewMessageRouter(provider, classifier, dispatcher, nil, testSafeReply, logger)
	}
	return NewMessageRouter(provider, classifier, dispatcher, sink, testSafeReply, logger)
}

func inbound(businessID, text string) entities.InboundMessage {
	return entities.InboundMessage{
		BusinessID: businessID,
		CustomerID: "cust-1",
		Text:       text,
		Channel:    "web",
		ReceivedAt: time.Now(),
	}
}

func TestProcessMessageBusinessNotFound(t *testing.T) {
	router := newTestRouter(t, &fakeProvider{}, nil)

	for _, id := range []string{"missing", "", "99"} {
		reply := router.ProcessMessage(context.Background(), inbound(id, "hola"))
		assert.Equal(t, testSafeReply, reply)
	}
}

func TestProcessMessageStoreFailureIsSafe(t *testing.T) {
	router := newTestRouter(t, &fakeProvider{err: errors.New("connection refused")}, nil)

	reply := router.ProcessMessage(context.Background(), inbound("42", "hola"))
	assert.Equal(t, testSafeReply, reply)
}

func TestProcessMessageHappyPath(t *testing.T) {
	provider := &fakeProvider{businesses: map[string]*entities.BusinessConfig{
		"42": testBusiness(entities.IndustryEcommerce),
	}}
	sink := &recordingSink{}
	router := newTestRouter(t, provider, sink)

	reply := router.ProcessMessage(context.Background(), inbound("42", "hola"))
	assert.Equal(t, "hola desde Zapatería Luna", reply)

	require.Len(t, sink.records, 1)
	rec := sink.records[0]
	assert.Equal(t, "42", rec.BusinessID)
	assert.Equal(t, "greeting", rec.Intent)
	assert.Equal(t, "web", rec.Channel)
	assert.Equal(t, len(reply), rec.ReplyLen)
}

func TestProcessMessageUnknownIntentFallsThrough(t *testing.T) {
	provider := &fakeProvider{businesses: map[string]*entities.BusinessConfig{
		"42": testBusiness(entities.IndustryEcommerce),
	}}
	router := newTestRouter(t, provider, nil)

	for _, text := range []string{"", "xyzzy plugh", "!!!", "日本語のテキスト"} {
		reply := router.ProcessMessage(context.Background(), inbound("42", text))
		assert.NotEmpty(t, reply, "text %q", text)
		assert.NotEqual(t, testSafeReply, reply, "unknown intent is not an error")
	}
}

func TestProcessMessageSinkFailureDoesNotLeak(t *testing.T) {
	provider := &fakeProvider{businesses: map[string]*entities.BusinessConfig{
		"42": testBusiness(entities.IndustryEcommerce),
	}}
	sink := &recordingSink{err: errors.New("insert failed")}
	router := newTestRouter(t, provider, sink)

	reply := router.ProcessMessage(context.Background(), inbound("42", "hola"))
	assert.Equal(t, "hola desde Zapatería Luna", reply)
}

type panickingProvider struct{}

func (panickingProvider) Resolve(context.Context, string) (*entities.BusinessConfig, error) {
	panic("boom")
}

func TestProcessMessageRecoversFromPanic(t *testing.T) {
	logger := zaptest.NewLogger(t)
	classifier := NewIntentClassifier(logger)
	require.NoError(t, classifier.Train(testEngineConfig()))
	dispatcher := NewIndustryDispatcher(testBank(), nil, logger)
	router := NewMessageRouter(panickingProvider{}, classifier, dispatcher, nil, testSafeReply, logger)

	reply := router.ProcessMessage(context.Background(), inbound("42", "hola"))
	assert.Equal(t, testSafeReply, reply)
}
