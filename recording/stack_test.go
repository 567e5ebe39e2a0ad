package recording

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("IterationStack", func() {
	var stack *IterationStack

	BeforeEach(func() {
		stack = NewStack()
	})

	It("should start empty", func() {
		Expect(stack.Depth()).To(Equal(0))
		Expect(stack.Frames()).To(BeEmpty())
		Expect(stack.Prefix()).To(Equal(""))
	})

	It("should push frames in order", func() {
		stack.Push("root", 6)
		stack.Push("mda", 45)

		Expect(stack.Frames()).To(Equal([]Frame{
			{Name: "root", IterCount: 6},
			{Name: "mda", IterCount: 45},
		}))
	})

	It("should allow duplicated frame names", func() {
		stack.Push("newton", 1)
		stack.Push("newton", 1)

		Expect(stack.Depth()).To(Equal(2))
	})

	It("should pop the innermost frame", func() {
		stack.Push("root", 6)
		stack.Push("mda", 45)

		stack.Pop()

		Expect(stack.Frames()).To(Equal([]Frame{
			{Name: "root", IterCount: 6},
		}))
	})

	It("should panic when popping an empty stack", func() {
		Expect(func() { stack.Pop() }).To(Panic())
	})

	It("should return an independent copy of the frames", func() {
		stack.Push("root", 6)

		frames := stack.Frames()
		frames[0].Name = "changed"

		Expect(stack.Frames()[0].Name).To(Equal("root"))
	})

	It("should clear frames and prefix on reset", func() {
		stack.SetPrefix("doe")
		stack.Push("root", 1)
		stack.Push("mda", 2)
		stack.Push("d1", 3)

		stack.Reset()

		Expect(stack.Depth()).To(Equal(0))
		Expect(stack.Prefix()).To(Equal(""))
		Expect(Coordinate(stack, 0)).To(Equal(Coordinate(NewStack(), 0)))
	})

	It("should dump the frames innermost first", func() {
		stack.Push("root", 6)
		stack.Push("mda", 45)

		buf := &bytes.Buffer{}
		stack.Dump(buf)

		Expect(buf.String()).To(Equal("\n" +
			"^^^ mda 45\n" +
			"^^^ root 6\n" +
			"^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^" +
			"^^^^^^^^^^^^^^^^^^^^\n"))
	})
})
