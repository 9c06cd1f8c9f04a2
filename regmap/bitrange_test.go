package regmap_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pmicdump/regmap"
)

var _ = Describe("BitRange", func() {
	Describe("ParseBitRange", func() {
		It("should parse a single bit", func() {
			r, err := regmap.ParseBitRange("3")
			Expect(err).NotTo(HaveOccurred())
			Expect(r).To(Equal(regmap.BitRange{Hi: 3, Lo: 3}))
			Expect(r.Width()).To(Equal(uint8(1)))
		})

		It("should parse a range in either order", func() {
			a, err := regmap.ParseBitRange("7:4")
			Expect(err).NotTo(HaveOccurred())
			b, err := regmap.ParseBitRange("4:7")
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))
			Expect(a.String()).To(Equal("7:4"))
		})

		It("should reject bits beyond 7", func() {
			_, err := regmap.ParseBitRange("8:0")
			Expect(err).To(HaveOccurred())
		})

		It("should reject malformed text", func() {
			for _, s := range []string{"", "a", "1:2:3", "-1"} {
				_, err := regmap.ParseBitRange(s)
				Expect(err).To(HaveOccurred(), s)
			}
		})
	})

	Describe("Extract", func() {
		It("should extract bits 7:4 of 0xA5 as 10", func() {
			Expect(regmap.Bits(7, 4).Extract(0xA5)).To(Equal(uint8(0x0A)))
		})

		It("should handle the full byte", func() {
			r := regmap.Bits(7, 0)
			Expect(r.Mask()).To(Equal(byte(0xFF)))
			Expect(r.Max()).To(Equal(uint8(0xFF)))
			Expect(r.Extract(0x5A)).To(Equal(uint8(0x5A)))
		})

		It("should match the mask formula for every byte and range", func() {
			for hi := 0; hi < 8; hi++ {
				for lo := 0; lo <= hi; lo++ {
					r := regmap.Bits(uint8(hi), uint8(lo))
					width := hi - lo + 1

					var mask byte
					for i := lo; i <= hi; i++ {
						mask |= 1 << uint(i)
					}
					Expect(r.Mask()).To(Equal(mask))
					Expect(int(r.Width())).To(Equal(width))

					for b := 0; b < 256; b++ {
						Expect(r.Extract(byte(b))).To(Equal((byte(b) & mask) >> uint(lo)))
					}
				}
			}
		})
	})

	Describe("Insert", func() {
		It("should replace only the field bits", func() {
			r := regmap.Bits(5, 4)
			Expect(r.Insert(0xFF, 0)).To(Equal(byte(0xCF)))
			Expect(r.Insert(0x00, 3)).To(Equal(byte(0x30)))
		})

		It("should drop value bits wider than the field", func() {
			Expect(regmap.Bit(0).Insert(0x00, 0xFF)).To(Equal(byte(0x01)))
		})

		It("should round-trip with Extract", func() {
			r := regmap.Bits(6, 3)
			for v := uint8(0); v <= r.Max(); v++ {
				Expect(r.Extract(r.Insert(0x81, v))).To(Equal(v))
			}
		})
	})

	It("should detect overlapping ranges", func() {
		Expect(regmap.Bits(7, 4).Overlaps(regmap.Bits(4, 0))).To(BeTrue())
		Expect(regmap.Bits(7, 4).Overlaps(regmap.Bits(3, 0))).To(BeFalse())
	})
})
