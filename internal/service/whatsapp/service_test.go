package whatsapp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/canehaul/internal/config"
	"github.com/mamadbah2/canehaul/internal/domain/models"
	"github.com/mamadbah2/canehaul/internal/service/commands"
	client "github.com/mamadbah2/canehaul/pkg/clients/whatsapp"
)

type fakeClient struct {
	sent []client.SendTextMessageRequest
	err  error
}

func (f *fakeClient) SendTextMessage(_ context.Context, req client.SendTextMessageRequest) (*client.SendTextMessageResponse, error) {
	f.sent = append(f.sent, req)
	return &client.SendTextMessageResponse{}, f.err
}

type fakeDispatcher struct {
	replies map[models.CommandType]string
	err     error
	seen    []models.Command
}

func (f *fakeDispatcher) HandleCommand(_ context.Context, cmd models.Command, _ string) (string, error) {
	f.seen = append(f.seen, cmd)
	if f.err != nil {
		return "", f.err
	}
	if reply, ok := f.replies[cmd.Type]; ok {
		return reply, nil
	}
	return "", commands.ErrUnsupportedCommand
}

var testCfg = config.WhatsAppConfig{VerifyToken: "secret", ManagerID: "63900"}

func textPayload(from string, bodies ...string) models.WebhookPayload {
	var msgs []models.InboundMessage
	for i, body := range bodies {
		msgs = append(msgs, models.InboundMessage{
			From: from,
			ID:   string(rune('a' + i)),
			Type: "text",
			Text: &models.TextContent{Body: body},
		})
	}
	return models.WebhookPayload{
		Object: "whatsapp_business_account",
		Entry: []models.WebhookEntry{{
			Changes: []models.WebhookChange{{Field: "messages", Value: models.WebhookValue{Messages: msgs}}},
		}},
	}
}

func TestVerifyWebhookToken(t *testing.T) {
	svc := NewMetaWhatsAppService(testCfg, nil, nil, nil)

	challenge, err := svc.VerifyWebhookToken("subscribe", "secret", "12345")
	require.NoError(t, err)
	assert.Equal(t, "12345", challenge)

	_, err = svc.VerifyWebhookToken("subscribe", "wrong", "12345")
	assert.Error(t, err)
	_, err = svc.VerifyWebhookToken("unsubscribe", "secret", "12345")
	assert.Error(t, err)
	_, err = svc.VerifyWebhookToken("", "", "")
	assert.Error(t, err)
}

func TestHandleWebhook_RepliesToCommands(t *testing.T) {
	wa := &fakeClient{}
	dispatcher := &fakeDispatcher{replies: map[models.CommandType]string{models.CommandSummary: "week totals"}}
	svc := NewMetaWhatsAppService(testCfg, wa, dispatcher, nil)

	require.NoError(t, svc.HandleWebhook(context.Background(), textPayload("63917", "/summary", "what?")))

	require.Len(t, wa.sent, 2)
	assert.Equal(t, client.SendTextMessageRequest{To: "63917", Body: "week totals"}, wa.sent[0])
	assert.Contains(t, wa.sent[1].Body, "Unknown command.")
	assert.Contains(t, wa.sent[1].Body, commands.HelpText)
}

func TestHandleWebhook_InteractiveReply(t *testing.T) {
	wa := &fakeClient{}
	dispatcher := &fakeDispatcher{replies: map[models.CommandType]string{models.CommandHelp: "help"}}
	svc := NewMetaWhatsAppService(testCfg, wa, dispatcher, nil)

	payload := models.WebhookPayload{Entry: []models.WebhookEntry{{Changes: []models.WebhookChange{{
		Value: models.WebhookValue{Messages: []models.InboundMessage{{
			From:        "63917",
			Type:        "interactive",
			Interactive: &models.Interactive{Type: "button_reply", ButtonReply: &models.ReplyValue{ID: "/help", Title: "Help"}},
		}}},
	}}}}}

	require.NoError(t, svc.HandleWebhook(context.Background(), payload))
	require.Len(t, dispatcher.seen, 1)
	assert.Equal(t, models.CommandHelp, dispatcher.seen[0].Type)
}

func TestHandleWebhook_IgnoresMedia(t *testing.T) {
	wa := &fakeClient{}
	dispatcher := &fakeDispatcher{}
	svc := NewMetaWhatsAppService(testCfg, wa, dispatcher, nil)

	payload := models.WebhookPayload{Entry: []models.WebhookEntry{{Changes: []models.WebhookChange{{
		Value: models.WebhookValue{Messages: []models.InboundMessage{{From: "63917", Type: "image"}}},
	}}}}}

	require.NoError(t, svc.HandleWebhook(context.Background(), payload))
	assert.Empty(t, dispatcher.seen)
	assert.Empty(t, wa.sent)
}

func TestHandleWebhook_ReturnsFirstError(t *testing.T) {
	wa := &fakeClient{}
	boom := errors.New("store unavailable")
	svc := NewMetaWhatsAppService(testCfg, wa, &fakeDispatcher{err: boom}, nil)

	err := svc.HandleWebhook(context.Background(), textPayload("63917", "/summary", "/summary"))
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, wa.sent)
}

func TestSendOutbound(t *testing.T) {
	wa := &fakeClient{}
	svc := NewMetaWhatsAppService(testCfg, wa, nil, nil)

	require.NoError(t, svc.SendOutbound(context.Background(), models.OutboundMessageRequest{To: "63911", Message: "ping", PreviewURL: true}))
	require.NoError(t, svc.NotifyManager(context.Background(), "weekly"))

	require.Len(t, wa.sent, 2)
	assert.Equal(t, client.SendTextMessageRequest{To: "63911", Body: "ping", PreviewURL: true}, wa.sent[0])
	assert.Equal(t, "63900", wa.sent[1].To)
}

func TestSend_Disabled(t *testing.T) {
	svc := NewMetaWhatsAppService(testCfg, nil, nil, nil)

	err := svc.SendOutbound(context.Background(), models.OutboundMessageRequest{To: "63911", Message: "ping"})
	assert.ErrorIs(t, err, ErrMessagingDisabled)

	noManager := NewMetaWhatsAppService(config.WhatsAppConfig{}, &fakeClient{}, nil, nil)
	assert.ErrorIs(t, noManager.NotifyManager(context.Background(), "weekly"), ErrMessagingDisabled)
}
