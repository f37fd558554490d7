package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func press(m model, keys ...tea.KeyMsg) model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(model)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestModelMovesAndSelects(t *testing.T) {
	m := press(newModel("Select task", []string{"a", "b", "c"}), keyDown, keyDown, keyUp, keyEnter)
	if m.chosen != 1 || m.canceled {
		t.Fatalf("chosen=%d canceled=%v, want 1/false", m.chosen, m.canceled)
	}
	if !strings.Contains(m.View(), "b") {
		t.Fatalf("view should show the answer: %q", m.View())
	}
}

func TestModelWrapsAround(t *testing.T) {
	m := press(newModel("p", []string{"a", "b", "c"}), keyUp)
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}
	m = press(m, keyDown)
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
}

func TestModelCancel(t *testing.T) {
	m := press(newModel("p", []string{"a"}), keyEsc)
	if !m.canceled || m.chosen != -1 {
		t.Fatalf("canceled=%v chosen=%d", m.canceled, m.chosen)
	}
	_, cmd := newModel("p", []string{"a"}).Update(keyEsc)
	if cmd == nil {
		t.Fatal("cancel should quit the program")
	}
}

func TestModelViewListsItems(t *testing.T) {
	v := newModel("Select account", []string{"001", "002"}).View()
	for _, want := range []string{"Select account", "001", "002"} {
		if !strings.Contains(v, want) {
			t.Fatalf("view missing %q: %q", want, v)
		}
	}
}

func TestSelectNoItems(t *testing.T) {
	_, ok, err := (&Prompter{}).Select(context.Background(), "p", nil)
	if err != ErrNoItems || ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
}
