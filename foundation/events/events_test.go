package events_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shub-dab/blockchain/foundation/events"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Events(t *testing.T) {
	t.Log("Given the need to fan out events to listeners.")
	{
		evts := events.New()

		id1 := uuid.NewString()
		id2 := uuid.NewString()
		ch1 := evts.Acquire(id1)
		ch2 := evts.Acquire(id2)

		if evts.Acquire(id1) != ch1 {
			t.Fatalf("\t%s\tShould return the same channel for the same id.", failed)
		}
		t.Logf("\t%s\tShould return the same channel for the same id.", success)

		evts.Send("viewer: block mined")

		for _, ch := range []<-chan string{ch1, ch2} {
			if msg := <-ch; msg != "viewer: block mined" {
				t.Fatalf("\t%s\tShould deliver the event to every listener: got %q", failed, msg)
			}
		}
		t.Logf("\t%s\tShould deliver the event to every listener.", success)

		for i := 0; i < 500; i++ {
			evts.Send("flood")
		}
		t.Logf("\t%s\tShould not block on a full listener.", success)

		if err := evts.Release(id1); err != nil {
			t.Fatalf("\t%s\tShould be able to release a listener: %v", failed, err)
		}
		if err := evts.Release(id1); err == nil {
			t.Fatalf("\t%s\tShould fail releasing an unknown listener.", failed)
		}
		if evts.Len() != 1 {
			t.Fatalf("\t%s\tShould have one listener left: got %d", failed, evts.Len())
		}
		t.Logf("\t%s\tShould be able to release a listener.", success)

		evts.Shutdown()

		for range ch2 {
		}
		if _, ok := <-evts.Acquire(uuid.NewString()); ok {
			t.Fatalf("\t%s\tShould hand out closed channels after shutdown.", failed)
		}
		t.Logf("\t%s\tShould close every channel on shutdown.", success)
	}
}
