package handlers

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"letibot/internal/etu"
	"letibot/internal/models"
	"letibot/internal/schedule"
)

type fakeSender struct {
	mu       sync.Mutex
	messages []tgbotapi.MessageConfig
	actions  int
	dropped  bool
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.messages = append(f.messages, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch cfg := c.(type) {
	case tgbotapi.ChatActionConfig:
		f.actions++
	case tgbotapi.DeleteWebhookConfig:
		f.dropped = cfg.DropPendingUpdates
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.messages))
	for i, m := range f.messages {
		out[i] = m.Text
	}
	return out
}

func (f *fakeSender) last() tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages[len(f.messages)-1]
}

type fakeService struct {
	groups map[string]models.GroupDirectoryEntry
	err    error
	week   []string
	calls  []string
}

func (f *fakeService) ResolveGroup(ctx context.Context, number string) (models.GroupDirectoryEntry, error) {
	f.calls = append(f.calls, "resolve")
	if f.err != nil {
		return models.GroupDirectoryEntry{}, f.err
	}
	entry, ok := f.groups[number]
	if !ok {
		return models.GroupDirectoryEntry{}, schedule.ErrGroupNotFound
	}
	return entry, nil
}

func (f *fakeService) Today(ctx context.Context, group string) (string, error) {
	f.calls = append(f.calls, "today:"+group)
	return "today " + group, f.err
}

func (f *fakeService) Tomorrow(ctx context.Context, group string) (string, error) {
	f.calls = append(f.calls, "tomorrow:"+group)
	return "tomorrow " + group, f.err
}

func (f *fakeService) Week(ctx context.Context, group string) ([]string, error) {
	f.calls = append(f.calls, "week:"+group)
	return f.week, f.err
}

func (f *fakeService) NextLesson(ctx context.Context, group string) (string, error) {
	f.calls = append(f.calls, "next:"+group)
	return "next " + group, f.err
}

func (f *fakeService) Invalidate() {
	f.calls = append(f.calls, "invalidate")
}

type fakeStore struct {
	mu     sync.Mutex
	groups map[int64]string
}

func newFakeStore() *fakeStore { return &fakeStore{groups: make(map[int64]string)} }

func (f *fakeStore) Get(ctx context.Context, id int64) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[id]
	return g, ok, nil
}

func (f *fakeStore) Set(ctx context.Context, id int64, group string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groups[id] = group
	return nil
}

func textUpdate(userID int64, text string) tgbotapi.Update {
	msg := &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: userID},
		From: &tgbotapi.User{ID: userID, FirstName: "Аня", UserName: "anya"},
	}
	if strings.HasPrefix(text, "/") {
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}}
	}
	return tgbotapi.Update{Message: msg}
}

func newTestBot(svc *fakeService, store *fakeStore, developerID int64) (*Bot, *fakeSender) {
	sender := &fakeSender{}
	return New(sender, svc, store, nil, Options{DeveloperID: developerID}), sender
}

func testService() *fakeService {
	return &fakeService{groups: map[string]models.GroupDirectoryEntry{
		"9301": {Number: "9301", Faculty: "ФКТИ", Course: 2},
	}}
}

func TestStartWithoutGroupAsksForIt(t *testing.T) {
	bot, sender := newTestBot(testService(), newFakeStore(), 0)

	bot.ProcessUpdate(context.Background(), textUpdate(1, "/start"))

	if got := sender.last().Text; got != askGroupText {
		t.Fatalf("start: want ask group, got=%q", got)
	}
	if !bot.awaiting.Get(1) {
		t.Fatalf("user must be awaiting group input")
	}
}

func TestGroupInputSavesGroup(t *testing.T) {
	store := newFakeStore()
	bot, sender := newTestBot(testService(), store, 0)
	ctx := context.Background()

	bot.ProcessUpdate(ctx, textUpdate(1, "/start"))
	bot.ProcessUpdate(ctx, textUpdate(1, " 9301 "))

	got := sender.last().Text
	if !strings.Contains(got, "✅ Группа <b>9301</b> сохранена!") || !strings.Contains(got, "Факультет: ФКТИ") {
		t.Fatalf("confirmation: got=%q", got)
	}
	if g, _, _ := store.Get(ctx, 1); g != "9301" {
		t.Fatalf("stored group: got=%q", g)
	}
	if bot.awaiting.Get(1) {
		t.Fatalf("awaiting flag must be cleared")
	}
}

func TestGroupInputUnknownGroupKeepsWaiting(t *testing.T) {
	store := newFakeStore()
	bot, sender := newTestBot(testService(), store, 0)
	ctx := context.Background()

	bot.ProcessUpdate(ctx, textUpdate(1, "/start"))
	bot.ProcessUpdate(ctx, textUpdate(1, "<b>0000"))

	got := sender.last().Text
	if !strings.Contains(got, "Группа <b>&lt;b&gt;0000</b> не найдена") {
		t.Fatalf("not found: got=%q", got)
	}
	if _, ok, _ := store.Get(ctx, 1); ok {
		t.Fatalf("unknown group must not be stored")
	}
	if !bot.awaiting.Get(1) {
		t.Fatalf("user must still be awaiting group input")
	}
}

func TestGroupInputDirectoryFailure(t *testing.T) {
	svc := testService()
	svc.err = &etu.Error{Kind: etu.KindNetwork, Op: "groups"}
	bot, sender := newTestBot(svc, newFakeStore(), 0)
	ctx := context.Background()

	bot.ProcessUpdate(ctx, textUpdate(1, "/start"))
	bot.ProcessUpdate(ctx, textUpdate(1, "9301"))

	if got := sender.last().Text; got != failedGroupsText {
		t.Fatalf("directory failure: got=%q", got)
	}
}

func TestButtonsRouteToService(t *testing.T) {
	svc := testService()
	svc.week = []string{"mon", "wed"}
	store := newFakeStore()
	store.groups[1] = "9301"
	bot, sender := newTestBot(svc, store, 0)
	ctx := context.Background()

	for _, btn := range []string{BtnToday, BtnTomorrow, BtnNextLesson, BtnWeek} {
		bot.ProcessUpdate(ctx, textUpdate(1, btn))
	}

	want := []string{"today:9301", "tomorrow:9301", "next:9301", "week:9301"}
	if strings.Join(svc.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls: want=%v got=%v", want, svc.calls)
	}
	texts := sender.texts()
	wantTexts := []string{"today 9301", "tomorrow 9301", "next 9301", "mon", "wed", weekLoadedText}
	if strings.Join(texts, "|") != strings.Join(wantTexts, "|") {
		t.Fatalf("texts: want=%q got=%q", wantTexts, texts)
	}
	if sender.actions != 4 {
		t.Fatalf("chat actions: want=4 got=%d", sender.actions)
	}
}

func TestButtonWithoutGroupAsksForIt(t *testing.T) {
	svc := testService()
	bot, sender := newTestBot(svc, newFakeStore(), 0)

	bot.ProcessUpdate(context.Background(), textUpdate(1, BtnToday))

	if len(svc.calls) != 0 {
		t.Fatalf("service must not be called: %v", svc.calls)
	}
	if got := sender.last().Text; got != askGroupText {
		t.Fatalf("want ask group, got=%q", got)
	}
}

func TestScheduleFailureIsNotNoLessons(t *testing.T) {
	svc := testService()
	svc.err = &etu.Error{Kind: etu.KindUpstream, Op: "schedule", Status: 500}
	store := newFakeStore()
	store.groups[1] = "9301"
	bot, sender := newTestBot(svc, store, 0)

	bot.ProcessUpdate(context.Background(), textUpdate(1, BtnToday))

	if got := sender.last().Text; got != failedToLoadText {
		t.Fatalf("failure: got=%q", got)
	}
}

func TestUnexpectedErrorReportedToDeveloper(t *testing.T) {
	svc := testService()
	svc.err = errors.New("boom")
	store := newFakeStore()
	store.groups[1] = "9301"
	bot, sender := newTestBot(svc, store, 42)

	bot.ProcessUpdate(context.Background(), textUpdate(1, BtnTomorrow))

	sender.mu.Lock()
	defer sender.mu.Unlock()
	if len(sender.messages) != 2 {
		t.Fatalf("messages: want=2 got=%d", len(sender.messages))
	}
	report := sender.messages[0]
	if report.ChatID != 42 || !strings.Contains(report.Text, "<code>boom</code>") {
		t.Fatalf("developer report: chat=%d text=%q", report.ChatID, report.Text)
	}
	if sender.messages[1].ChatID != 1 || sender.messages[1].Text != internalErrorText {
		t.Fatalf("user message: %+v", sender.messages[1])
	}
}

func TestUnknownCommand(t *testing.T) {
	bot, sender := newTestBot(testService(), newFakeStore(), 0)
	bot.ProcessUpdate(context.Background(), textUpdate(1, "/weather"))
	if got := sender.last().Text; !strings.Contains(got, "/help") {
		t.Fatalf("unknown command: got=%q", got)
	}
}

func TestMyIDCommand(t *testing.T) {
	bot, sender := newTestBot(testService(), newFakeStore(), 0)
	bot.ProcessUpdate(context.Background(), textUpdate(77, "/myid"))
	if got := sender.last().Text; !strings.Contains(got, "<code>77</code>") || !strings.Contains(got, "@anya") {
		t.Fatalf("myid: got=%q", got)
	}
}

func TestSplitMessage(t *testing.T) {
	if got := splitMessage("короткий", 10); len(got) != 1 || got[0] != "короткий" {
		t.Fatalf("short text: got=%q", got)
	}

	text := strings.Repeat("строка\n", 10)
	parts := splitMessage(text, 20)
	for _, p := range parts {
		if n := len([]rune(p)); n > 20 {
			t.Fatalf("part too long (%d): %q", n, p)
		}
		if strings.HasPrefix(p, "трока") || strings.HasPrefix(p, "рока") {
			t.Fatalf("split inside a line: %q", p)
		}
	}
	if joined := strings.Join(parts, "\n"); strings.TrimRight(joined, "\n") != strings.TrimRight(text, "\n") {
		t.Fatalf("content lost:\n%q", joined)
	}

	long := strings.Repeat("я", 45)
	parts = splitMessage(long, 20)
	if len(parts) != 3 || strings.Join(parts, "") != long {
		t.Fatalf("no newlines: got=%q", parts)
	}
}

func TestRefreshOnlyForDeveloper(t *testing.T) {
	svc := testService()
	bot, sender := newTestBot(svc, newFakeStore(), 42)
	ctx := context.Background()

	bot.ProcessUpdate(ctx, textUpdate(1, "/refresh"))
	if len(svc.calls) != 0 {
		t.Fatalf("refresh by regular user: calls=%v", svc.calls)
	}

	bot.ProcessUpdate(ctx, textUpdate(42, "/refresh"))
	if len(svc.calls) != 1 || svc.calls[0] != "invalidate" {
		t.Fatalf("refresh by developer: calls=%v", svc.calls)
	}
	if got := sender.last().Text; !strings.Contains(got, "Кэш") {
		t.Fatalf("refresh reply: got=%q", got)
	}
}

func TestSplitMessageKeepsHTMLIntact(t *testing.T) {
	text := "ab" + strings.Repeat("&amp;", 10)
	parts := splitMessage(text, 20)
	if strings.Join(parts, "") != text {
		t.Fatalf("content lost: %q", parts)
	}
	for i, p := range parts {
		if strings.Count(p, "&") != strings.Count(p, ";") {
			t.Fatalf("part %d splits an entity: %q", i, p)
		}
		if i > 0 && !strings.HasPrefix(p, "&amp;") {
			t.Fatalf("part %d starts mid-entity: %q", i, p)
		}
	}

	text = strings.Repeat("x", 18) + "<b>жирный</b>"
	parts = splitMessage(text, 20)
	if parts[0] != strings.Repeat("x", 18) || !strings.HasPrefix(parts[1], "<b>") {
		t.Fatalf("tag split: %q", parts)
	}
}

func TestDropPendingUpdates(t *testing.T) {
	sender := &fakeSender{}
	if err := DropPendingUpdates(sender); err != nil {
		t.Fatalf("DropPendingUpdates: %v", err)
	}
	if !sender.dropped {
		t.Fatalf("deleteWebhook must be sent with drop_pending_updates")
	}
}
