package regmap_test

import (
	"errors"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pmicdump/fileio"
	"github.com/sarchlab/pmicdump/regmap"
)

var _ = Describe("Loader", func() {
	var store *fileio.MemStore

	BeforeEach(func() {
		store = fileio.NewMemStore(map[string][]byte{
			"defs.json": []byte(testDocJSON),
			"defs.yaml": []byte(testDocYAML),
			"bad.json":  []byte(`{"version": "1.0.0", "registers": [`),
		})
	})

	It("should load the document once", func() {
		l := regmap.NewLoader("defs.json", regmap.WithStore(store))

		m := l.GetOrLoad()
		Expect(m.Model).To(Equal("TEST-PMIC"))
		Expect(m.Fallback).To(BeNil())
		Expect(l.GetOrLoad()).To(BeIdenticalTo(m))
		Expect(l.Loads()).To(Equal(int64(1)))
	})

	It("should resolve exactly once under concurrent callers", func() {
		l := regmap.NewLoader("defs.yaml", regmap.WithStore(store))

		const callers = 64
		results := make([]*regmap.Map, callers)
		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				results[i] = l.GetOrLoad()
			}(i)
		}
		close(start)
		wg.Wait()

		Expect(l.Loads()).To(Equal(int64(1)))
		for _, m := range results {
			Expect(m).To(BeIdenticalTo(results[0]))
		}
	})

	It("should fall back to the generated map when the file is missing", func() {
		l := regmap.NewLoader("missing.json", regmap.WithStore(store))

		m := l.GetOrLoad()
		Expect(m.IsGenerated()).To(BeTrue())
		Expect(errors.Is(m.Fallback, fileio.ErrNotExist)).To(BeTrue())
		Expect(fileio.IsIOError(m.Fallback)).To(BeTrue())
	})

	It("should fall back to the generated map when the file is invalid", func() {
		l := regmap.NewLoader("bad.json", regmap.WithStore(store))

		m := l.GetOrLoad()
		Expect(m.IsGenerated()).To(BeTrue())
		Expect(regmap.IsFormatError(m.Fallback)).To(BeTrue())
	})

	It("should use the generated map without a path", func() {
		m := regmap.NewLoader("").GetOrLoad()
		Expect(m.IsGenerated()).To(BeTrue())
		Expect(errors.Is(m.Fallback, regmap.ErrNoDocument)).To(BeTrue())
	})

	It("should pick up a changed document on Reload", func() {
		l := regmap.NewLoader("defs.json", regmap.WithStore(store))
		Expect(l.Cached()).To(BeNil())

		first := l.GetOrLoad()
		updated := strings.Replace(testDocJSON, "TEST-PMIC", "TEST-PMIC-B", 1)
		Expect(store.WriteBytes("defs.json", []byte(updated))).To(Succeed())
		Expect(l.GetOrLoad()).To(BeIdenticalTo(first))

		second := l.Reload()
		Expect(second).NotTo(BeIdenticalTo(first))
		Expect(second.Model).To(Equal("TEST-PMIC-B"))
		Expect(l.Cached()).To(BeIdenticalTo(second))
		Expect(l.Loads()).To(Equal(int64(2)))
	})

	Describe("Load", func() {
		It("should report the source of a format error", func() {
			_, err := regmap.Load(store, "bad.json")
			var fe *regmap.FormatError
			Expect(errors.As(err, &fe)).To(BeTrue())
			Expect(fe.Source).To(Equal("bad.json"))
		})

		It("should not wrap I/O failures as format errors", func() {
			_, err := regmap.Load(store, "missing.json")
			Expect(fileio.IsIOError(err)).To(BeTrue())
			Expect(regmap.IsFormatError(err)).To(BeFalse())
		})
	})
})
