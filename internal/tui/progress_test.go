package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewDownloadModelStableOrder(t *testing.T) {
	m := NewDownloadModel(map[string]string{"syft": "0.62.1", "cosign": "1.4.1", "helm": "3.10.1"})

	view := m.View()
	cosignIdx := strings.Index(view, "cosign")
	helmIdx := strings.Index(view, "helm")
	syftIdx := strings.Index(view, "syft")
	if cosignIdx < 0 || helmIdx < 0 || syftIdx < 0 {
		t.Fatalf("expected all tools in view:\n%s", view)
	}
	if !(cosignIdx < helmIdx && helmIdx < syftIdx) {
		t.Fatalf("expected alphabetical row order:\n%s", view)
	}
}

func TestStatusMsgUpdatesRow(t *testing.T) {
	m := NewDownloadModel(map[string]string{"cosign": "1.4.1"})

	updated, _ := m.Update(StatusMsg{Tool: "cosign", Status: "downloading", Detail: "cosign-linux-amd64"})
	view := updated.(DownloadModel).View()
	if !strings.Contains(view, "downloading") {
		t.Fatalf("expected downloading status in view:\n%s", view)
	}
	if !strings.Contains(view, "cosign-linux-amd64") {
		t.Fatalf("expected detail in view:\n%s", view)
	}
}

func TestStatusMsgUnknownToolIgnored(t *testing.T) {
	m := NewDownloadModel(map[string]string{"cosign": "1.4.1"})
	updated, _ := m.Update(StatusMsg{Tool: "unknown", Status: "error"})
	if strings.Contains(updated.(DownloadModel).View(), "unknown") {
		t.Fatal("unknown tool row should be ignored")
	}
}

func TestWorkDoneQuits(t *testing.T) {
	m := NewDownloadModel(map[string]string{"cosign": "1.4.1"})
	updated, cmd := m.Update(WorkDoneMsg{})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Fatalf("expected quit, got %v", msg)
	}
	view := updated.(DownloadModel).View()
	if strings.Contains(view, "Resolving") {
		t.Fatalf("expected spinner footer removed when done:\n%s", view)
	}
}

func TestErrorMsgRecorded(t *testing.T) {
	m := NewDownloadModel(map[string]string{"cosign": "1.4.1"})
	updated, _ := m.Update(ErrorMsg{Err: errTest})
	dm := updated.(DownloadModel)
	if dm.Err() != errTest {
		t.Fatalf("expected recorded error, got %v", dm.Err())
	}
	if !strings.Contains(dm.View(), "Error:") {
		t.Fatalf("expected error view:\n%s", dm.View())
	}
}

var errTest = errorString("boom")

type errorString string

func (e errorString) Error() string { return string(e) }
