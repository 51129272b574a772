package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoice_LetterKeySelects(t *testing.T) {
	mc := NewMultiChoice("Q?", []string{"a", "b", "c", "d"}, -1)
	if mc.ChosenLetter() != "" {
		t.Fatalf("expected no choice, got %q", mc.ChosenLetter())
	}

	mc, _ = mc.Update(keyPress('c'))
	if mc.Chosen != 2 || mc.ChosenLetter() != "C" {
		t.Errorf("expected C chosen, got %d/%q", mc.Chosen, mc.ChosenLetter())
	}
	if mc.Cursor != 2 {
		t.Errorf("expected cursor to follow letter, got %d", mc.Cursor)
	}
}

func TestMultiChoice_CursorAndEnter(t *testing.T) {
	mc := NewMultiChoice("Q?", []string{"a", "b", "c", "d"}, -1)
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if mc.Chosen != -1 {
		t.Fatalf("moving the cursor must not choose, got %d", mc.Chosen)
	}
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if mc.ChosenLetter() != "C" {
		t.Errorf("expected C, got %q", mc.ChosenLetter())
	}

	// Answers can be changed.
	mc, _ = mc.Update(keyPress('a'))
	if mc.ChosenLetter() != "A" {
		t.Errorf("expected A after change, got %q", mc.ChosenLetter())
	}
}

func TestMultiChoice_CursorBounds(t *testing.T) {
	mc := NewMultiChoice("Q?", []string{"a", "b", "c", "d"}, 3)
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if mc.Cursor != 3 {
		t.Errorf("cursor should stay at last option, got %d", mc.Cursor)
	}
	for range 5 {
		mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	}
	if mc.Cursor != 0 {
		t.Errorf("cursor should stop at first option, got %d", mc.Cursor)
	}
}

func TestMultiChoice_ViewListsLetters(t *testing.T) {
	mc := NewMultiChoice("Capital of France?", []string{"Paris", "Rome", "Oslo", "Bern"}, -1)
	view := mc.View()
	for _, want := range []string{"Capital of France?", "A)  Paris", "D)  Bern"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

type chosenMsg struct{ label string }

func TestMenu_EnterChoosesAndRunsAction(t *testing.T) {
	items := []MenuItem{
		{Label: "One", Action: func() tea.Cmd { return func() tea.Msg { return chosenMsg{"One"} } }},
		{Label: "Two", Action: func() tea.Cmd { return func() tea.Msg { return chosenMsg{"Two"} } }},
	}
	m := NewMenu(items)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if m.ChosenLabel() != "Two" {
		t.Errorf("expected Two chosen, got %q", m.ChosenLabel())
	}
	if cmd == nil {
		t.Fatal("expected action command")
	}
	if msg, ok := cmd().(chosenMsg); !ok || msg.label != "Two" {
		t.Errorf("unexpected action message %#v", msg)
	}
}

func TestMenu_BlurredIgnoresKeys(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "One"}, {Label: "Two"}})
	m.Blurred = true
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 0 {
		t.Errorf("blurred menu moved to %d", m.Selected)
	}
}

func TestMenu_Choose(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "One"}, {Label: "Two"}})
	if !m.Choose("Two") {
		t.Fatal("expected Choose to find Two")
	}
	if m.Selected != 1 || m.Chosen != 1 {
		t.Errorf("expected cursor and choice on Two, got %d/%d", m.Selected, m.Chosen)
	}
	if m.Choose("Three") {
		t.Error("Choose should report missing labels")
	}
}

func TestButton_InactiveIgnoresEnter(t *testing.T) {
	pressed := false
	b := NewButton("Go", false, func() tea.Cmd { pressed = true; return nil })
	b.Focused = true
	b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if pressed {
		t.Error("inactive button must not fire")
	}

	b.Active = true
	b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !pressed {
		t.Error("active focused button should fire")
	}
}

func TestTextInput_Filled(t *testing.T) {
	ti := NewTextInput("subject", false, 40)
	if ti.Filled() {
		t.Error("new input should be empty")
	}
	ti.SetValue("   ")
	if ti.Filled() {
		t.Error("whitespace should not count as filled")
	}
	ti.SetValue("History")
	if !ti.Filled() {
		t.Error("expected filled input")
	}
}

func TestTextInput_PasswordMasksValue(t *testing.T) {
	ti := NewTextInput("key", true, 40)
	ti.SetValue("sk-secret")
	if strings.Contains(ti.View(), "sk-secret") {
		t.Error("password input must not render the raw value")
	}
	if ti.Value() != "sk-secret" {
		t.Errorf("Value should return the raw value, got %q", ti.Value())
	}
}

func TestTextInput_IgnoresKeysWhenBlurred(t *testing.T) {
	ti := NewTextInput("subject", false, 40)
	ti, _ = ti.Update(keyPress('x'))
	if ti.Value() != "" {
		t.Errorf("blurred input accepted %q", ti.Value())
	}
	ti.Focus()
	ti, _ = ti.Update(keyPress('x'))
	if ti.Value() != "x" {
		t.Errorf("focused input should accept keys, got %q", ti.Value())
	}
}

func TestAnswerProgress(t *testing.T) {
	p := NewAnswerProgress([]string{"A", "", "C", ""}, 1)
	if p.Count() != 2 {
		t.Fatalf("Count = %d, want 2", p.Count())
	}
	if !strings.Contains(p.Bar(40), "Answered 2/4") {
		t.Errorf("bar missing count: %q", p.Bar(40))
	}
	markers := p.Markers()
	if strings.Count(markers, "●") != 2 || strings.Count(markers, "○") != 2 {
		t.Errorf("markers = %q", markers)
	}
}

func TestAnswerProgress_Empty(t *testing.T) {
	p := NewAnswerProgress(nil, 0)
	if p.Count() != 0 || p.Markers() != "" {
		t.Fatalf("unexpected progress for empty batch: %d %q", p.Count(), p.Markers())
	}
	_ = p.Bar(20)
}

func TestTextInput_MarkMissingClearsOnKey(t *testing.T) {
	ti := NewTextInput("subject", false, 40)
	ti.MarkMissing()
	if !strings.Contains(ti.View(), "required") {
		t.Fatalf("expected required flag, got %q", ti.View())
	}
	ti.Focus()
	ti, _ = ti.Update(keyPress('a'))
	if strings.Contains(ti.View(), "required") {
		t.Error("flag should clear once the user types")
	}
}
