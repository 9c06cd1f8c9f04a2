package dump_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pmicdump/dump"
	"github.com/sarchlab/pmicdump/fileio"
	"github.com/sarchlab/pmicdump/regmap"
)

var _ = Describe("Parse", func() {
	var (
		ctx  context.Context
		defs *regmap.Map
	)

	BeforeEach(func() {
		ctx = context.Background()
		defs = regmap.Generated()
	})

	It("should compare an all-zero buffer against the defaults", func() {
		d, err := dump.Parse(ctx, make([]byte, dump.Size), defs)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.SizeMismatch()).To(BeNil())

		regs := d.Registers()
		Expect(regs).To(HaveLen(dump.Size))
		for i, r := range regs {
			Expect(r.Address).To(Equal(uint8(i)))
			Expect(r.Raw).To(Equal(uint8(0)))
			Expect(r.IsChanged()).To(Equal(r.Default != 0), r.Name())
		}

		swa, ok := d.Register(0x21)
		Expect(ok).To(BeTrue())
		Expect(swa.IsChanged()).To(BeTrue())
		Expect(d.Changed()).To(ContainElement(swa))
	})

	It("should truncate a long buffer and report it", func() {
		data := make([]byte, 300)
		for i := range data {
			data[i] = byte(i)
		}

		d, err := dump.Parse(ctx, data, defs)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.SizeMismatch()).NotTo(BeNil())
		Expect(d.SizeMismatch().Got).To(Equal(300))
		Expect(d.SizeMismatch().Error()).To(ContainSubstring("truncated"))
		Expect(d.Bytes()).To(Equal(data[:dump.Size]))

		r, _ := d.Register(0xFF)
		Expect(r.Raw).To(Equal(uint8(0xFF)))
	})

	It("should zero-pad a short buffer and report it", func() {
		d, err := dump.Parse(ctx, []byte{0x01, 0x02}, defs)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.SizeMismatch().Got).To(Equal(2))
		Expect(d.SizeMismatch().Error()).To(ContainSubstring("zero-padded"))

		r, _ := d.Register(0x01)
		Expect(r.Raw).To(Equal(uint8(0x02)))
		r, _ = d.Register(0x02)
		Expect(r.Raw).To(Equal(uint8(0x00)))
	})

	It("should decode registers with their definitions", func() {
		data := make([]byte, dump.Size)
		data[0x21] = 0x64
		data[0x1A] = 0x02

		d, err := dump.Parse(ctx, data, defs)
		Expect(err).NotTo(HaveOccurred())

		swa, _ := d.Register(0x21)
		Expect(swa.Decoded).To(Equal("1.050V, PGL: -5%"))
		Expect(swa.Bit(2)).To(BeTrue())
		Expect(swa.Bit(0)).To(BeFalse())
		Expect(swa.Bit(8)).To(BeFalse())

		vout, ok := swa.FieldValue("VOUT")
		Expect(ok).To(BeTrue())
		Expect(vout).To(Equal(uint8(50)))

		otp, _ := d.Register(0x1A)
		Expect(otp.Decoded).To(Equal("125°C"))
		Expect(otp.IsChanged()).To(BeFalse())
	})

	It("should produce the same result with a single worker", func() {
		data := make([]byte, dump.Size)
		for i := range data {
			data[i] = byte(255 - i)
		}

		a, err := dump.Parse(ctx, data, defs)
		Expect(err).NotTo(HaveOccurred())
		b, err := dump.Parse(ctx, data, defs, dump.WithWorkers(1))
		Expect(err).NotTo(HaveOccurred())

		Expect(dump.Compare(a, b)).To(BeEmpty())
		for i, r := range a.Registers() {
			Expect(b.Registers()[i].Decoded).To(Equal(r.Decoded))
		}
	})

	It("should stop when the context is cancelled", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		d, err := dump.Parse(cctx, make([]byte, dump.Size), defs)
		Expect(d).To(BeNil())
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})

	It("should apply metadata options", func() {
		at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		d, err := dump.Parse(ctx, nil, defs, dump.WithSource("bench"), dump.WithCapturedAt(at))
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Source).To(Equal("bench"))
		Expect(d.CapturedAt).To(Equal(at))
		Expect(d.ID).NotTo(BeEmpty())
		Expect(d.Definitions()).To(BeIdenticalTo(defs))
	})

	It("should give every dump its own ID", func() {
		a, _ := dump.Parse(ctx, nil, defs)
		b, _ := dump.Parse(ctx, nil, defs)
		Expect(a.ID).NotTo(Equal(b.ID))
	})

	Describe("Load", func() {
		It("should read the dump through the store", func() {
			store := fileio.NewMemStore(map[string][]byte{"board.bin": {0x00, 0xAA}})

			d, err := dump.Load(ctx, store, "board.bin", defs)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Source).To(Equal("board.bin"))
			r, _ := d.Register(0x01)
			Expect(r.Raw).To(Equal(uint8(0xAA)))
		})

		It("should return I/O failures", func() {
			_, err := dump.Load(ctx, fileio.NewMemStore(nil), "missing.bin", defs)
			Expect(fileio.IsIOError(err)).To(BeTrue())
			Expect(errors.Is(err, fileio.ErrNotExist)).To(BeTrue())
		})
	})
})
