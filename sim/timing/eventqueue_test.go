package timing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("EventQueue", func() {
	event := func(t VTimeInTick, late bool) TickEvent {
		evt := MakeTickEvent(nil, t)
		evt.late = late

		return evt
	}

	It("should order events by tick, then late, then push order", func() {
		q := NewEventQueue()
		a := event(2, true)
		b := event(2, false)
		c := event(1, true)
		d := event(2, false)
		f := event(0, false)

		for _, evt := range []Event{a, b, c, d, f} {
			q.Push(evt)
		}

		Expect(q.Len()).To(Equal(5))
		Expect(q.Peek()).To(Equal(Event(f)))

		var got []Event
		for q.Len() > 0 {
			got = append(got, q.Pop())
		}

		Expect(got).To(Equal([]Event{f, c, b, d, a}))
	})
})
