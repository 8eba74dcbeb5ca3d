package binding

import (
	"testing"

	"github.com/go-drift/databind/pkg/platform"
)

// cityBinding builds the two-hop test binding for person.Address.City.
func cityBinding() *TypedBinding[person, string] {
	return NewTypedBinding(
		func(p *person) (string, bool) {
			if p.Address == nil {
				return "", false
			}
			return p.Address.City, true
		},
		nil,
		[]Part[person]{
			{Resolve: func(p *person) any { return p }, Name: "Address"},
			{Resolve: func(p *person) any {
				if p.Address == nil {
					return nil
				}
				return p.Address
			}, Name: "City"},
		},
	)
}

// useQueue installs a deterministic dispatcher for the duration of a
// test and returns it.
func useQueue(t *testing.T) *platform.Queue {
	t.Helper()
	q := platform.NewQueue()
	platform.RegisterDispatch(q.Enqueue)
	t.Cleanup(func() { platform.RegisterDispatch(nil) })
	return q
}

func TestHopChangeSchedulesReapply(t *testing.T) {
	q := useQueue(t)
	prop := NewProperty[string]("Text", "unknown")
	src := &person{Name: "Ada"}
	target := NewObject()
	b := cityBinding()
	b.Mode = OneWay

	if err := b.Apply(src, target, prop); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := target.GetValue(prop); got != "unknown" {
		t.Fatalf("target value = %v, want default %q while Address is nil", got, "unknown")
	}

	src.setAddress(&address{City: "London"})
	if q.Len() == 0 {
		t.Fatal("expected a re-apply to be scheduled, not run inline")
	}
	if got := target.GetValue(prop); got != "unknown" {
		t.Fatalf("target updated before the dispatcher ran")
	}
	q.Pump()
	if got := target.GetValue(prop); got != "London" {
		t.Errorf("target value = %v, want %q", got, "London")
	}
}

func TestLeafHopChangePropagates(t *testing.T) {
	q := useQueue(t)
	prop := NewProperty[string]("Text", "")
	home := &address{City: "London"}
	src := &person{Name: "Ada", Address: home}
	target := NewObject()
	b := cityBinding()
	b.Mode = OneWay

	if err := b.Apply(src, target, prop); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := target.GetValue(prop); got != "London" {
		t.Fatalf("target value = %v, want %q", got, "London")
	}

	home.City = "Paris"
	home.notify("City")
	q.Pump()
	if got := target.GetValue(prop); got != "Paris" {
		t.Errorf("target value = %v, want %q", got, "Paris")
	}
}

func TestNilIntermediateStopsSubscription(t *testing.T) {
	useQueue(t)
	src := &person{Name: "Ada"}
	target := NewObject()
	b := cityBinding()
	b.Mode = OneWay

	if err := b.Apply(src, target, textProperty); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := src.observerCount(); got != 1 {
		t.Errorf("source observers = %d, want 1", got)
	}
}

func TestResubscribeReplacesStaleListeners(t *testing.T) {
	q := useQueue(t)
	first := &address{City: "London"}
	second := &address{City: "Paris"}
	src := &person{Name: "Ada", Address: first}
	target := NewObject()
	b := cityBinding()
	b.Mode = OneWay

	if err := b.Apply(src, target, textProperty); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := first.observerCount(); got != 1 {
		t.Fatalf("first address observers = %d, want 1", got)
	}

	src.setAddress(second)
	q.Pump()

	if got := first.observerCount(); got != 0 {
		t.Errorf("stale listener left on replaced hop: observers = %d", got)
	}
	if got := second.observerCount(); got != 1 {
		t.Errorf("second address observers = %d, want 1", got)
	}
	if got := target.GetValue(textProperty); got != "Paris" {
		t.Errorf("target value = %v, want %q", got, "Paris")
	}

	// The stale listener must also be inert, not merely uncounted.
	first.City = "Berlin"
	first.notify("City")
	q.Pump()
	if got := target.GetValue(textProperty); got != "Paris" {
		t.Errorf("replaced hop still drives the binding: target = %v", got)
	}
}

func TestChangeNotificationNameFiltering(t *testing.T) {
	q := useQueue(t)
	src := &person{Name: "Ada", Address: &address{City: "London"}}
	target := NewObject()
	b := cityBinding()
	b.Mode = OneWay

	if err := b.Apply(src, target, textProperty); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	q.Pump()

	src.notify("Unrelated")
	if q.Len() != 0 {
		t.Errorf("notification for unrelated property scheduled %d re-applies", q.Len())
	}

	src.notify("")
	if q.Len() == 0 {
		t.Error("empty notification name should match every hop")
	}
	q.Pump()
}

func TestUnapplyDetachesListeners(t *testing.T) {
	q := useQueue(t)
	home := &address{City: "London"}
	src := &person{Name: "Ada", Address: home}
	target := NewObject()
	b := cityBinding()
	b.Mode = OneWay

	if err := b.Apply(src, target, textProperty); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	b.Unapply()

	if got := src.observerCount() + home.observerCount(); got != 0 {
		t.Fatalf("listeners still attached after Unapply: %d", got)
	}

	home.City = "Paris"
	home.notify("City")
	q.Pump()
	if got := target.GetValue(textProperty); got != "London" {
		t.Errorf("target value = %v, want %q (no write after Unapply)", got, "London")
	}
}

func TestQueuedReapplyAfterUnapplyIsNoop(t *testing.T) {
	q := useQueue(t)
	home := &address{City: "London"}
	src := &person{Name: "Ada", Address: home}
	target := NewObject()
	b := cityBinding()
	b.Mode = OneWay

	if err := b.Apply(src, target, textProperty); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	// Race shape: the notification is already queued when Unapply runs.
	home.City = "Paris"
	home.notify("City")
	if q.Len() == 0 {
		t.Fatal("expected a queued re-apply")
	}
	b.Unapply()
	q.Pump()

	if got := target.GetValue(textProperty); got != "London" {
		t.Errorf("target value = %v, want %q (queued re-apply must no-op)", got, "London")
	}
}

func TestNonObservableHopIsSkipped(t *testing.T) {
	useQueue(t)
	type plain struct{ Label string }
	type holder struct {
		Inner *plain
	}
	prop := NewProperty[string]("Text", "")
	src := &holder{Inner: &plain{Label: "hi"}}
	target := NewObject()
	b := NewTypedBinding(
		func(h *holder) (string, bool) {
			if h.Inner == nil {
				return "", false
			}
			return h.Inner.Label, true
		},
		nil,
		[]Part[holder]{
			{Resolve: func(h *holder) any { return h.Inner }, Name: "Label"},
		},
	)
	b.Mode = OneWay

	if err := b.Apply(src, target, prop); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := target.GetValue(prop); got != "hi" {
		t.Errorf("target value = %v, want %q", got, "hi")
	}
}

func TestMissingDispatcherWarnsAndDrops(t *testing.T) {
	platform.RegisterDispatch(nil)
	catcher := catchWarnings(t)
	src := &person{Name: "Ada"}
	target := NewObject()
	b := nameBinding()
	b.Mode = OneWay

	if err := b.Apply(src, target, textProperty); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	src.setName("Grace")

	if got := target.GetValue(textProperty); got != "Ada" {
		t.Errorf("target value = %v, want stale %q (nothing to dispatch on)", got, "Ada")
	}
	if catcher.count() == 0 {
		t.Error("expected a dropped-notification warning")
	}
}
