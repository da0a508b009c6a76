package world

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordingListener struct {
	name string
	log  *[]string
}

func (l *recordingListener) OnRedstoneChange(e RedstoneEvent) {
	*l.log = append(*l.log, l.name+":redstone")
}

func (l *recordingListener) OnSignChange(e *SignChangeEvent) {
	*l.log = append(*l.log, l.name+":sign")
	e.Cancel()
}

type breakOnly struct {
	count int
}

func (b *breakOnly) OnBreak(e *BreakEvent) {
	b.count++
}

type takeAll struct{}

func (takeAll) OnPipePut(e *PipePutEvent) {
	e.Items = nil
}

var _ = Describe("Dispatcher", func() {
	var (
		d   *Dispatcher
		log []string
	)

	BeforeEach(func() {
		d = NewDispatcher()
		log = nil
	})

	It("should only deliver events a listener can handle", func() {
		b := &breakOnly{}
		d.Register(&recordingListener{name: "a", log: &log})
		d.Register(b)

		d.FireRedstone(RedstoneEvent{Old: 0, New: 15})
		d.FireBreak(&BreakEvent{})

		Expect(log).To(Equal([]string{"a:redstone"}))
		Expect(b.count).To(Equal(1))
		Expect(d.NumListeners()).To(Equal(2))
	})

	It("should stop delivering a cancelled sign change", func() {
		d.Register(&recordingListener{name: "a", log: &log})
		d.Register(&recordingListener{name: "b", log: &log})

		e := &SignChangeEvent{}
		d.FireSignChange(e)

		Expect(e.Cancelled()).To(BeTrue())
		Expect(log).To(Equal([]string{"a:sign"}))
	})

	It("should stop delivering pipe items once taken", func() {
		d.Register(takeAll{})
		d.Register(takeAll{})

		e := &PipePutEvent{Items: []Material{Stone}}
		d.FirePipePut(e)

		Expect(e.Items).To(BeEmpty())
	})

	It("should panic on listeners without capabilities", func() {
		Expect(func() { d.Register(struct{}{}) }).To(Panic())
	})
})
