package str_test

import (
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/birdwatch/yardlist/internal/str"
)

var _ = Describe("SeenBool", func() {
	It("accepts hand-edited variants of yes", func() {
		for _, s := range []string{"Yes", "yes", "YES", " yes ", "yEs"} {
			Expect(str.SeenBool(s)).To(BeTrue(), s)
		}
	})

	It("rejects everything else", func() {
		for _, s := range []string{"", "no", "y", "true", "seen"} {
			Expect(str.SeenBool(s)).To(BeFalse(), s)
		}
	})
})

var _ = Describe("ShortText", func() {
	It("keeps short text as is", func() {
		Expect(str.ShortText("Anna's Hummingbird")).To(Equal("Anna's Hummingbird"))
	})

	It("truncates long text with an ellipsis", func() {
		long := strings.Repeat("a", 60)
		res := str.ShortText(long)
		Expect(res).To(HaveLen(44))
		Expect(strings.HasSuffix(res, "...")).To(BeTrue())
	})
})
