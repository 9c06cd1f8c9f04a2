package classify_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pmicdump/classify"
	"github.com/sarchlab/pmicdump/dump"
	"github.com/sarchlab/pmicdump/regmap"
)

var _ = Describe("Editor", func() {
	var (
		d      *dump.Dump
		editor *classify.Editor
	)

	BeforeEach(func() {
		d = parseWith(regmap.Generated(), nil)
		editor = classify.NewEditor()
	})

	It("should apply an accepted edit", func() {
		v := editor.Apply(d, 0x21, 0x64)
		Expect(v.OK).To(BeTrue())
		Expect(register(d, 0x21).Decoded).To(Equal("1.050V, PGL: -5%"))
		Expect(d.Bytes()[0x21]).To(Equal(byte(0x64)))
	})

	It("should leave the dump alone on rejection", func() {
		v := editor.Apply(d, 0x08, 0xFF)
		Expect(v.OK).To(BeFalse())
		Expect(register(d, 0x08).Raw).To(Equal(uint8(0)))
		Expect(d.Bytes()[0x08]).To(Equal(byte(0)))
	})

	It("should reset to the default", func() {
		Expect(editor.Reset(d, 0x2C).OK).To(BeTrue())
		Expect(register(d, 0x2C).Raw).To(Equal(uint8(0xDD)))
		Expect(register(d, 0x2C).IsChanged()).To(BeFalse())
	})

	It("should not reset read-only registers", func() {
		Expect(editor.Reset(d, 0x3C).OK).To(BeFalse())
		Expect(register(d, 0x3C).Raw).To(Equal(uint8(0)))
	})

	Describe("ApplyFields", func() {
		It("should encode field text onto the current value", func() {
			Expect(editor.Apply(d, 0x2C, 0xDD).OK).To(BeTrue())

			v := editor.ApplyFields(d, 0x2C, map[string]string{"SWA_MODE": "COT; DCM"})
			Expect(v.OK).To(BeTrue())
			Expect(register(d, 0x2C).Raw).To(Equal(uint8(0x9D)))
		})

		It("should reject unknown fields", func() {
			v := editor.ApplyFields(d, 0x2C, map[string]string{"NOPE": "1"})
			Expect(v.OK).To(BeFalse())
			Expect(v.Reason).To(ContainSubstring("unknown field"))
		})

		It("should reject unparseable text", func() {
			v := editor.ApplyFields(d, 0x21, map[string]string{"VOUT": "fast"})
			Expect(v.OK).To(BeFalse())
			Expect(register(d, 0x21).Raw).To(Equal(uint8(0)))
		})

		It("should reject field text outside the field range", func() {
			v := editor.ApplyFields(d, 0x21, map[string]string{"VOUT": "5V"})
			Expect(v.OK).To(BeFalse())
			Expect(v.Reason).To(ContainSubstring("out of range"))
			Expect(register(d, 0x21).Raw).To(Equal(uint8(0)))
		})

		It("should still validate the composed value", func() {
			v := editor.ApplyFields(d, 0x0C, map[string]string{"IOUT": "1A"})
			Expect(v.OK).To(BeFalse())
		})
	})
})
