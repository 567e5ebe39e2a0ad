package recording

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("Recording", func() {
	var (
		mockCtrl *gomock.Controller
		stack    *IterationStack
		plain    *MockRecordable
		solver   *MockSolverRecordable
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		stack = NewStack()
		plain = NewMockRecordable(mockCtrl)
		solver = NewMockSolverRecordable(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should panic if the stack is nil", func() {
		Expect(func() {
			NewRecording(nil, "root", 1, plain)
		}).To(Panic())
	})

	It("should panic if the requester is nil", func() {
		Expect(func() {
			NewRecording(stack, "root", 1, nil)
		}).To(Panic())
	})

	It("should push the frame on open and pop it on close", func() {
		plain.EXPECT().RecordIteration().Return(nil)

		rec := NewRecording(stack, "root", 6, plain).Open()
		Expect(stack.Frames()).To(Equal([]Frame{{Name: "root", IterCount: 6}}))

		err := rec.Close()
		Expect(err).ToNot(HaveOccurred())
		Expect(stack.Depth()).To(Equal(0))
	})

	It("should panic when opened twice", func() {
		rec := NewRecording(stack, "root", 1, plain).Open()

		Expect(func() { rec.Open() }).To(Panic())
	})

	It("should panic when closed without being opened", func() {
		rec := NewRecording(stack, "root", 1, plain)

		Expect(func() { _ = rec.Close() }).To(Panic())
	})

	It("should panic when closed twice", func() {
		plain.EXPECT().RecordIteration().Return(nil)

		rec := NewRecording(stack, "root", 1, plain).Open()
		_ = rec.Close()

		Expect(func() { _ = rec.Close() }).To(Panic())
	})

	It("should call the plain requester with no arguments", func() {
		plain.EXPECT().RecordIteration().Return(nil)

		rec := NewRecording(stack, "root", 1, plain).Open()
		rec.AbsError = 1e-6
		rec.RelError = 1e-3

		Expect(rec.Close()).To(Succeed())
	})

	It("should deliver the error metrics to a solver requester", func() {
		solver.EXPECT().RecordSolverIteration(1e-6, 1e-3).Return(nil)

		rec := NewRecording(stack, "newton", 4, solver).Open()
		rec.AbsError = 1e-6
		rec.RelError = 1e-3

		Expect(rec.Close()).To(Succeed())
	})

	It("should deliver zero errors when the caller sets none", func() {
		solver.EXPECT().RecordSolverIteration(0.0, 0.0).Return(nil)

		rec := NewRecording(stack, "newton", 4, solver).Open()

		Expect(rec.Close()).To(Succeed())
	})

	It("should return the callback failure after popping", func() {
		recordErr := errors.New("recorder is closed")
		plain.EXPECT().RecordIteration().Return(recordErr)

		rec := NewRecording(stack, "root", 1, plain).Open()
		err := rec.Close()

		Expect(err).To(MatchError(recordErr))
		Expect(stack.Depth()).To(Equal(0))
	})

	It("should pop the frame even when the callback panics", func() {
		plain.EXPECT().RecordIteration().DoAndReturn(func() error {
			panic("recorder exploded")
		})

		rec := NewRecording(stack, "root", 1, plain).Open()

		Expect(func() { _ = rec.Close() }).To(Panic())
		Expect(stack.Depth()).To(Equal(0))
	})

	It("should restore the depth for arbitrary nesting", func() {
		plain.EXPECT().RecordIteration().Return(nil).Times(3)
		solver.EXPECT().RecordSolverIteration(gomock.Any(), gomock.Any()).
			Return(nil).Times(2)

		outer := NewRecording(stack, "driver", 1, plain).Open()
		for i := 0; i < 2; i++ {
			middle := NewRecording(stack, "root", i, plain).Open()
			inner := NewRecording(stack, "newton", i, solver).Open()
			Expect(stack.Depth()).To(Equal(3))
			Expect(inner.Close()).To(Succeed())
			Expect(middle.Close()).To(Succeed())
		}
		Expect(outer.Close()).To(Succeed())

		Expect(stack.Depth()).To(Equal(0))
	})

	Describe("suppression", func() {
		It("should not record inside an apply context", func() {
			rec := NewRecording(stack, "_run_apply", 1, plain).Open()

			Expect(rec.Close()).To(Succeed())
			Expect(stack.Depth()).To(Equal(0))
		})

		It("should not record inside a total-derivative context", func() {
			rec := NewRecording(stack, "_compute_totals", 1, plain).Open()

			Expect(rec.Close()).To(Succeed())
			Expect(stack.Depth()).To(Equal(0))
		})

		It("should suppress descendants of a bookkeeping ancestor", func() {
			outer := NewRecording(stack, "_run_apply", 1, plain).Open()
			inner := NewRecording(stack, "newton", 3, solver).Open()

			Expect(inner.Close()).To(Succeed())
			Expect(outer.Close()).To(Succeed())
			Expect(stack.Depth()).To(Equal(0))
		})

		It("should suppress when the sentinel sits mid-stack", func() {
			stack.Push("driver", 1)
			stack.Push("_compute_totals", 1)

			rec := NewRecording(stack, "root", 2, plain).Open()

			Expect(rec.Close()).To(Succeed())
			Expect(stack.Depth()).To(Equal(2))
		})

		It("should record again once the bookkeeping frame is gone", func() {
			suppressed := NewRecording(stack, "_run_apply", 1, plain).Open()
			Expect(suppressed.Close()).To(Succeed())

			plain.EXPECT().RecordIteration().Return(nil)
			rec := NewRecording(stack, "root", 2, plain).Open()

			Expect(rec.Close()).To(Succeed())
		})
	})
})
