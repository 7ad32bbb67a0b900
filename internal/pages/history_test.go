package pages

import (
	"strings"
	"testing"
	"time"

	"github.com/buckleypaul/avrup/internal/app"
	"github.com/buckleypaul/avrup/internal/store"
)

func TestHistoryLoadsAndReloads(t *testing.T) {
	s := store.New(t.TempDir())
	p := NewHistoryPage(s)

	p.Update(p.Init()())
	if !strings.Contains(p.View(), "No uploads yet") {
		t.Fatal("expected empty history message")
	}

	if _, err := s.AddUpload(store.UploadRecord{
		Board:     "uno",
		Port:      "ttyACM0",
		Firmware:  "blink.hex",
		Timestamp: time.Now(),
		ExitCode:  1,
	}); err != nil {
		t.Fatal(err)
	}

	_, cmd := p.Update(app.UploadRecordedMsg{})
	if cmd == nil {
		t.Fatal("expected reload command")
	}
	p.Update(cmd())

	if len(p.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(p.records))
	}
	view := p.View()
	if !strings.Contains(view, "ttyACM0") || !strings.Contains(view, "exit 1") {
		t.Errorf("unexpected view:\n%s", view)
	}
}

func TestHistoryWithoutStore(t *testing.T) {
	p := NewHistoryPage(nil)
	if p.Init() != nil {
		t.Fatal("expected no load command without a store")
	}
}
