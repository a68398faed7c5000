package family_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"familygraph/src/domain"
	"familygraph/src/domain/entities"
	"familygraph/src/test_artefacts/stubs"
)

var _ = Describe("GetFamilyTree", func() {
	var (
		h   *harness
		ctx context.Context

		grandfather entities.Member
		father      entities.Member
		mother      entities.Member
		child       entities.Member
	)

	BeforeEach(func() {
		ctx = context.Background()
		h = setupHarness()
		h.testSeeder.TruncateTables(ctx)
		if h.redisClient != nil {
			h.redisClient.FlushByPrefix(ctx)
		}

		// Três gerações: grandfather -> father (+ mother como cônjuge) -> child.
		grandfather = stubs.NewMemberStub().Get()
		father = stubs.NewMemberStub().Get()
		mother = stubs.NewMemberStub().Get()
		child = stubs.NewMemberStub().Get()
		h.testSeeder.InsertMember(ctx, &grandfather)
		h.testSeeder.InsertMember(ctx, &father)
		h.testSeeder.InsertMember(ctx, &mother)
		h.testSeeder.InsertMember(ctx, &child)

		_, err := h.familyService.DeclareRelationships(ctx, father.ID, []domain.RelationshipDeclaration{
			{RelatedPersonID: grandfather.ID, RelationType: entities.RelationParent},
			{RelatedPersonID: mother.ID, RelationType: entities.RelationSpouse},
			{RelatedPersonID: child.ID, RelationType: entities.RelationChild},
		})
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		h.teardown()
	})

	Context("when walking the tree from a root member", func() {
		When("the depth covers the whole family", func() {
			It("returns a spanning tree where every member appears exactly once", func() {
				// ACT
				root, err := h.familyService.GetFamilyTree(ctx, father.ID, 3)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(root.ID).To(Equal(father.ID))
				Expect(root.Edges).To(HaveLen(3))

				seen := map[int64]int{}
				var walk func(node *domain.FamilyTreeNode)
				walk = func(node *domain.FamilyTreeNode) {
					seen[node.ID]++
					for _, edge := range node.Edges {
						walk(edge.Member)
					}
				}
				walk(root)

				Expect(seen).To(HaveLen(4))
				for id, count := range seen {
					Expect(count).To(Equal(1), "member %d appeared more than once", id)
				}
			})
		})

		When("the depth limit cuts the walk short", func() {
			It("omits members beyond the limit", func() {
				// ACT: a partir do avô, profundidade 1 alcança só o filho dele.
				root, err := h.familyService.GetFamilyTree(ctx, grandfather.ID, 1)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(root.ID).To(Equal(grandfather.ID))
				Expect(root.Edges).To(HaveLen(1))
				Expect(root.Edges[0].Member.ID).To(Equal(father.ID))
				Expect(root.Edges[0].Member.Edges).To(BeEmpty())
			})
		})

		When("the root does not exist", func() {
			It("returns a not found error", func() {
				_, err := h.familyService.GetFamilyTree(ctx, 99999, 3)

				Expect(err).To(MatchError(domain.ErrMemberNotFound))
			})
		})

		When("the depth limit is below one", func() {
			It("rejects the request", func() {
				_, err := h.familyService.GetFamilyTree(ctx, father.ID, 0)

				var validationErr *domain.ValidationError
				Expect(err).To(BeAssignableToTypeOf(validationErr))
			})
		})
	})
})
