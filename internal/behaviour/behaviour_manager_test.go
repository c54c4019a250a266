package behaviour

import (
	"testing"
)

type MockBehaviour struct {
	startCalls  int
	updateCalls int
	elapsed     float32
	log         *[]string
	name        string
}

func (m *MockBehaviour) Start() {
	m.startCalls++
}

func (m *MockBehaviour) Update(dt float32) {
	m.updateCalls++
	m.elapsed += dt
	if m.log != nil {
		*m.log = append(*m.log, m.name)
	}
}

func TestBehaviourManagerStartsOnce(t *testing.T) {
	m := NewBehaviourManager()
	b := &MockBehaviour{}
	m.Add(b)

	m.UpdateAll(0.016)
	m.UpdateAll(0.016)
	m.UpdateAll(0.016)

	if b.startCalls != 1 {
		t.Errorf("Expected Start to be called once, got %d", b.startCalls)
	}
	if b.updateCalls != 3 {
		t.Errorf("Expected 3 updates, got %d", b.updateCalls)
	}
	if b.elapsed < 0.047 || b.elapsed > 0.049 {
		t.Errorf("Expected accumulated dt ~0.048, got %f", b.elapsed)
	}
}

func TestBehaviourManagerRemove(t *testing.T) {
	m := NewBehaviourManager()
	b := &MockBehaviour{}
	m.Add(b)
	m.Remove(b)

	m.UpdateAll(0.016)

	if b.updateCalls != 0 {
		t.Error("Removed behaviour should not be updated")
	}
	if m.Len() != 0 {
		t.Errorf("Expected 0 behaviours, got %d", m.Len())
	}
}

func TestBehaviourManagerKeepsOrder(t *testing.T) {
	var log []string
	m := NewBehaviourManager()
	a := &MockBehaviour{name: "a", log: &log}
	b := &MockBehaviour{name: "b", log: &log}
	c := &MockBehaviour{name: "c", log: &log}
	m.Add(a)
	m.Add(b)
	m.Add(c)
	m.Remove(a)

	m.UpdateAll(0.016)

	if len(log) != 2 || log[0] != "b" || log[1] != "c" {
		t.Errorf("Expected update order [b c], got %v", log)
	}
}

func TestBehaviourManagerClear(t *testing.T) {
	m := NewBehaviourManager()
	m.Add(&MockBehaviour{})
	m.Add(&MockBehaviour{})

	m.Clear()

	if m.Len() != 0 {
		t.Errorf("Expected 0 behaviours after Clear, got %d", m.Len())
	}
}
