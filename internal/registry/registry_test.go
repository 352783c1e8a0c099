package registry

import (
	"testing"

	"github.com/vovakirdan/tui-styx/internal/core"
)

type stubGame struct {
	id      string
	stopped *bool
}

func (g stubGame) ID() string                           { return g.id }
func (g stubGame) Title() string                        { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig)             {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                  {}
func (g stubGame) State() core.GameState                { return core.GameState{} }

type stoppableGame struct{ stubGame }

func (g stoppableGame) Stop() { *g.stopped = true }

func TestRegisterAndCreate(t *testing.T) {
	Register("test_b", func() Game { return stubGame{id: "test_b"} })
	Register("test_a", func() Game { return stubGame{id: "test_a"} })

	if !Exists("test_a") || Exists("test_missing") {
		t.Error("Exists() disagrees with registrations")
	}

	g, err := Create("test_a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "test_a" {
		t.Errorf("Create().ID() = %q, expected test_a", g.ID())
	}
	if _, err := Create("test_missing"); err == nil {
		t.Error("Create() of an unknown id should fail")
	}

	var seen []GameInfo
	for _, info := range List() {
		if info.ID == "test_a" || info.ID == "test_b" {
			seen = append(seen, info)
		}
	}
	if len(seen) != 2 || seen[0].ID != "test_a" || seen[1].Title != "Stub test_b" {
		t.Errorf("List() = %+v, expected test_a then test_b with titles", seen)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_dup", func() Game { return stubGame{id: "test_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() did not panic")
		}
	}()
	Register("test_dup", func() Game { return stubGame{id: "test_dup"} })
}

func TestClose(t *testing.T) {
	stopped := false
	Close(stoppableGame{stubGame{id: "s", stopped: &stopped}})
	if !stopped {
		t.Error("Close() did not stop a Stopper")
	}

	// Games without background work are left alone.
	Close(stubGame{id: "plain"})
}

func TestRegisterClosesTitleInstance(t *testing.T) {
	built, stopped := 0, false
	Register("test_stoppable", func() Game {
		built++
		return stoppableGame{stubGame{id: "test_stoppable", stopped: &stopped}}
	})

	if built != 1 || !stopped {
		t.Errorf("Register() built %d games, stopped = %v, expected 1 and true", built, stopped)
	}

	stopped = false
	g, err := Create("test_stoppable")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if stopped {
		t.Error("Create() returned a stopped game")
	}
	Close(g)
	if !stopped {
		t.Error("Close() did not stop the created game")
	}

	Close(nil)
}
