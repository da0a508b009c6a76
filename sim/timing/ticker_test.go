package timing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("TickScheduler", func() {
	var (
		mockCtrl  *gomock.Controller
		engine    *SerialEngine
		handler   *MockHandler
		scheduler *TickScheduler
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewSerialEngine()
		handler = NewMockHandler(mockCtrl)
		scheduler = NewTickScheduler(handler, engine)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should not schedule the same tick twice", func() {
		handler.EXPECT().
			Handle(gomock.Any()).
			DoAndReturn(func(e Event) error {
				Expect(e.Time()).To(Equal(VTimeInTick(1)))
				return nil
			}).
			Times(1)

		scheduler.TickLater()
		scheduler.TickLater()
		scheduler.TickNow()

		Expect(engine.Run()).To(Succeed())
	})

	It("should schedule the next tick after a tick is handled", func() {
		ticks := []VTimeInTick{}
		handler.EXPECT().
			Handle(gomock.Any()).
			DoAndReturn(func(e Event) error {
				ticks = append(ticks, e.Time())
				if len(ticks) < 3 {
					scheduler.TickLater()
				}

				return nil
			}).
			Times(3)

		scheduler.TickNow()

		Expect(engine.Run()).To(Succeed())
		Expect(ticks).To(Equal([]VTimeInTick{0, 1, 2}))
	})
})
