package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/store"
)

type fakeRepo struct {
	store.HistoryRepo
	sessions     []store.SessionRecord
	attempts     map[string][]store.AttemptRecord
	err          error
	attemptCalls int
}

func (f *fakeRepo) RecentSessions(_ context.Context, limit int) ([]store.SessionRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.sessions) > limit {
		return f.sessions[:limit], nil
	}
	return f.sessions, nil
}

func (f *fakeRepo) SessionAttempts(_ context.Context, id string) ([]store.AttemptRecord, error) {
	f.attemptCalls++
	return f.attempts[id], nil
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testRepo() *fakeRepo {
	at := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	done := at.Add(5 * time.Minute)
	return &fakeRepo{
		sessions: []store.SessionRecord{
			{ID: "s-2", Source: "Animals and Everyday Life", StartedAt: at, FinishedAt: &done, Total: 9, Correct: 8, Stars: 2},
			{ID: "s-1", Source: "", StartedAt: at.Add(-24 * time.Hour), Total: 5, Correct: 1},
		},
		attempts: map[string][]store.AttemptRecord{
			"s-2": {
				{QuestionID: "tiger-1", Expected: "A tiger is stronger than a lion.", Answer: "A lion is stronger than a tiger.", FirstTry: true},
				{QuestionID: "tiger-1", Expected: "A tiger is stronger than a lion.", Answer: "A tiger is stronger than a lion.", Correct: true},
				{QuestionID: "fish-1", Expected: "True", Answer: "True", Correct: true, FirstTry: true},
			},
		},
	}
}

func loaded(t *testing.T, repo *fakeRepo) *HistoryScreen {
	t.Helper()
	s := New(repo)
	s.Update(s.Init()())
	return s
}

func TestHistoryScreen_Title(t *testing.T) {
	if got := New(testRepo()).Title(); got != "History" {
		t.Errorf("Title = %q", got)
	}
}

func TestHistoryScreen_Loading(t *testing.T) {
	s := New(testRepo())
	if !strings.Contains(s.View(100, 30), "Loading history") {
		t.Error("expected loading view")
	}
}

func TestHistoryScreen_ListsSessions(t *testing.T) {
	s := loaded(t, testRepo())
	view := s.View(100, 30)
	for _, want := range []string{"Oct 19, 2026", "Animals and Everyday Life", "8/9", "unfinished", "practice"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := loaded(t, &fakeRepo{})
	if !strings.Contains(s.View(100, 30), "No sessions yet") {
		t.Error("expected empty message")
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	s := loaded(t, &fakeRepo{err: errors.New("disk gone")})
	if !strings.Contains(s.View(100, 30), "disk gone") {
		t.Error("expected error in view")
	}
}

func TestHistoryScreen_ExpandLoadsAttemptsOnce(t *testing.T) {
	repo := testRepo()
	s := loaded(t, repo)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected attempts to load")
	}
	s.Update(cmd())

	view := s.View(120, 30)
	if !strings.Contains(view, "(you: A lion is stronger than a tiger.)") {
		t.Error("expected the wrong first try to be listed")
	}
	if strings.Count(view, "A tiger is stronger than a lion.") != 1 {
		t.Error("retries should not be listed")
	}

	// Collapse and expand again: no second load.
	s.Update(specialKey(tea.KeyEnter))
	if _, cmd := s.Update(specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("expected cached attempts")
	}
	if repo.attemptCalls != 1 {
		t.Errorf("attempt loads = %d, want 1", repo.attemptCalls)
	}
}

func TestHistoryScreen_Navigation(t *testing.T) {
	s := loaded(t, testRepo())
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	s.Update(specialKey(tea.KeyUp))
	if s.selected != 0 {
		t.Errorf("selected = %d, want 0", s.selected)
	}

	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 4); got != "abc" {
		t.Errorf("truncate = %q", got)
	}
}
