package regmap_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pmicdump/regmap"
)

var _ = Describe("Lint", func() {
	messages := func(issues []regmap.Issue) []string {
		out := make([]string, 0, len(issues))
		for _, i := range issues {
			out = append(out, i.String())
		}
		return out
	}

	It("should accept the generated definitions", func() {
		Expect(regmap.Lint(regmap.Generated().Document())).To(BeEmpty())
	})

	It("should report every problem Build tolerates", func() {
		doc := &regmap.Document{
			Version: "1.0.0",
			Registers: []regmap.RegisterEntry{
				{Address: "0x10", Name: "A", Default: "0x00", Access: "RW"},
				{Address: "0x10", Name: "B", Default: "zz", Access: "XX", Special: "Nope"},
				{Address: "0x11", Name: "C", Default: "0x00", Access: "RW", Fields: []regmap.FieldEntry{
					{Bits: "3:0", Name: "LOW", Type: "decimal"},
					{Bits: "4:3", Name: "MID", Type: "weird"},
					{Bits: "7:6", Name: "TOP", Type: "enum", Scale: "huge", Enum: map[string]string{"4": "x", "y": "z"}},
				}},
			},
		}

		Expect(messages(regmap.Lint(doc))).To(ConsistOf(
			ContainSubstring("duplicate address 0x10"),
			ContainSubstring("malformed hex"),
			ContainSubstring(`unknown access kind "XX"`),
			ContainSubstring(`unknown special decoder "Nope"`),
			ContainSubstring("bits 4:3 overlap"),
			ContainSubstring(`unknown type "weird"`),
			ContainSubstring(`unknown scale "huge"`),
			ContainSubstring("enum key 4 does not fit in 2 bits"),
			ContainSubstring(`enum key "y" is not a number`),
		))
	})

	It("should report an unsupported version", func() {
		issues := regmap.Lint(&regmap.Document{Version: "3.1.0"})
		Expect(issues).To(HaveLen(1))
		Expect(issues[0].Index).To(Equal(-1))
	})
})
