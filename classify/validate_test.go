package classify_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pmicdump/classify"
	"github.com/sarchlab/pmicdump/regmap"
)

var _ = Describe("ValidateValue", func() {
	var defs *regmap.Map

	BeforeEach(func() {
		defs = regmap.Generated()
	})

	It("should accept a value for a read-write register", func() {
		v := classify.ValidateValue(defs.Lookup(0x21), 0x64, 0x78)
		Expect(v.OK).To(BeTrue())
		Expect(v.Reason).To(BeEmpty())
		Expect(v.Advisory).To(BeEmpty())
		Expect(v.String()).To(Equal("ok"))
	})

	DescribeTable("rejects non-writable access kinds",
		func(addr int) {
			v := classify.ValidateValue(defs.Lookup(uint8(addr)), 0x01, 0x00)
			Expect(v.OK).To(BeFalse())
			Expect(v.Reason).To(ContainSubstring("cannot be written"))
		},
		Entry("read-only", 0x08),
		Entry("read-only error log", 0x04),
		Entry("reserved", 0xF0),
	)

	It("should reject a register without an access kind", func() {
		def := &regmap.RegisterDefinition{Address: 0x12, Name: "ODD"}
		v := classify.ValidateValue(def, 0x01, 0x00)
		Expect(v.OK).To(BeFalse())
		Expect(v.String()).To(HavePrefix("rejected: "))
	})

	Describe("protected registers", func() {
		var def *regmap.RegisterDefinition

		BeforeEach(func() {
			def = &regmap.RegisterDefinition{Address: 0x50, Name: "VENDOR_TRIM", Access: regmap.AccessRW}
			def.Resolve()
		})

		It("should deny writes in the vendor region", func() {
			v := classify.ValidateValue(def, 0x01, 0x00)
			Expect(v.OK).To(BeFalse())
			Expect(v.Reason).To(ContainSubstring("protected"))
		})

		It("should allow writes when explicitly permitted", func() {
			def.AllowProtectedWrite = true
			Expect(classify.ValidateValue(def, 0x01, 0x00).OK).To(BeTrue())
		})

		It("should deny writes to flagged registers outside the region", func() {
			flagged := &regmap.RegisterDefinition{Address: 0x12, Name: "LOCK", Access: regmap.AccessRW, Protected: true}
			Expect(classify.ValidateValue(flagged, 0x01, 0x00).OK).To(BeFalse())
		})
	})

	It("should reject values outside a byte", func() {
		for _, raw := range []int{-1, 256, 1000} {
			v := classify.ValidateValue(defs.Lookup(0x14), raw, 0x00)
			Expect(v.OK).To(BeFalse(), "%d", raw)
			Expect(v.Reason).To(ContainSubstring("outside 0..255"))
		}
	})

	Describe("write-one-to-clear registers", func() {
		It("should accept a pure clear silently", func() {
			v := classify.ValidateValue(defs.Lookup(0x10), 0x20, 0xA0)
			Expect(v.OK).To(BeTrue())
			Expect(v.Advisory).To(BeEmpty())
		})

		It("should add an advisory when setting new bits", func() {
			v := classify.ValidateValue(defs.Lookup(0x10), 0x40, 0xA0)
			Expect(v.OK).To(BeTrue())
			Expect(v.Advisory).To(ContainSubstring("write-one-to-clear"))
			Expect(v.String()).To(HavePrefix("ok: "))
		})
	})

	Describe("enum fields", func() {
		It("should accept a defined option", func() {
			// ADC_ENABLE | ADC_SELECT=VIN_BULK
			Expect(classify.ValidateValue(defs.Lookup(0x30), 0x80|4<<3, 0x00).OK).To(BeTrue())
		})

		It("should reject an undefined option", func() {
			v := classify.ValidateValue(defs.Lookup(0x30), 0x80|8<<3, 0x00)
			Expect(v.OK).To(BeFalse())
			Expect(v.Reason).To(ContainSubstring("ADC_SELECT"))
		})
	})
})
