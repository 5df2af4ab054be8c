package seed_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"orgcatalog.app/catalog/internal/activitytree"
	"orgcatalog.app/catalog/internal/seed"
)

func walk(nodes []seed.ActivityNode, depth int, visit func(name string, depth int)) {
	for _, n := range nodes {
		visit(n.Name, depth)
		walk(n.Children, depth+1, visit)
	}
}

var _ = Describe("demo data", func() {
	It("keeps the activity tree within the depth limit", func() {
		maxDepth := 0
		walk(seed.Activities, 1, func(_ string, depth int) {
			if depth > maxDepth {
				maxDepth = depth
			}
		})
		Expect(maxDepth).To(Equal(activitytree.MaxDepth))
	})

	It("uses unique activity names", func() {
		seen := map[string]bool{}
		walk(seed.Activities, 1, func(name string, _ int) {
			Expect(seen).NotTo(HaveKey(name))
			seen[name] = true
		})
	})

	It("only references known activities in profiles", func() {
		known := map[string]bool{}
		walk(seed.Activities, 1, func(name string, _ int) { known[name] = true })
		for _, profile := range seed.Profiles {
			seenInProfile := map[string]bool{}
			for _, name := range profile {
				Expect(known).To(HaveKey(name))
				Expect(seenInProfile).NotTo(HaveKey(name), "duplicate link %q", name)
				seenInProfile[name] = true
			}
		}
	})
})
