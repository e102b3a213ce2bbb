package notify

import "testing"

func TestLoadPreferencesOverrides(t *testing.T) {
	t.Setenv("IMAGEMARK_NOTIFY_TITLE", "My Title")
	t.Setenv("IMAGEMARK_NOTIFY_SAVE_TEXT", "wrote %s")

	prefs := LoadPreferences()
	if prefs.Title != "My Title" {
		t.Errorf("Title = %q, want My Title", prefs.Title)
	}
	if got := prefs.Events[EventSave].Template; got != "wrote %s" {
		t.Errorf("save template = %q, want wrote %%s", got)
	}
	if got := prefs.Events[EventCopy].Template; got != DefaultPreferences().Events[EventCopy].Template {
		t.Errorf("copy template changed unexpectedly: %q", got)
	}
}

func TestEventsDisabledByDefault(t *testing.T) {
	n := New(DefaultPreferences())
	if n.enabledFor(EventSave) || n.enabledFor(EventCopy) {
		t.Error("events must be disabled until enabled explicitly")
	}
	n.Enable(EventSave, true)
	if !n.enabledFor(EventSave) {
		t.Error("save event should be enabled")
	}
}

func TestNilNotifierIsSafe(t *testing.T) {
	var n *Notifier
	n.Enable(EventSave, true)
	n.Save("/tmp/x.png")
	n.Copy("image")
}
