package family_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"familygraph/src/domain"
	"familygraph/src/domain/entities"
	"familygraph/src/test_artefacts/stubs"
)

var _ = Describe("GetMemberWithRelationships", func() {
	var (
		h   *harness
		ctx context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		h = setupHarness()
		h.testSeeder.TruncateTables(ctx)
		if h.redisClient != nil {
			h.redisClient.FlushByPrefix(ctx)
		}
	})

	AfterEach(func() {
		h.teardown()
	})

	Context("when reading a member with relationships", func() {
		When("the member has several relationships", func() {
			It("returns the entries in insertion order with the related names denormalized", func() {
				// ARRANGE
				member := stubs.NewMemberStub().Get()
				father := stubs.NewMemberStub().WithName("Antônio", "Silva").Get()
				mother := stubs.NewMemberStub().WithName("Helena", "Silva").Get()
				h.testSeeder.InsertMember(ctx, &member)
				h.testSeeder.InsertMember(ctx, &father)
				h.testSeeder.InsertMember(ctx, &mother)

				_, err := h.familyService.DeclareRelationships(ctx, member.ID, []domain.RelationshipDeclaration{
					{RelatedPersonID: father.ID, RelationType: entities.RelationParent},
				})
				Expect(err).NotTo(HaveOccurred())

				_, err = h.familyService.DeclareRelationships(ctx, member.ID, []domain.RelationshipDeclaration{
					{RelatedPersonID: mother.ID, RelationType: entities.RelationParent},
				})
				Expect(err).NotTo(HaveOccurred())

				// ACT
				result, err := h.familyService.GetMemberWithRelationships(ctx, member.ID)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(result.ID).To(Equal(member.ID))
				Expect(result.Relationships).To(HaveLen(2))
				Expect(result.Relationships[0].RelatedPersonID).To(Equal(father.ID))
				Expect(result.Relationships[0].RelatedFirstName).To(Equal("Antônio"))
				Expect(result.Relationships[0].RelatedLastName).To(Equal("Silva"))
				Expect(result.Relationships[1].RelatedPersonID).To(Equal(mother.ID))
				Expect(result.Relationships[1].RelatedFirstName).To(Equal("Helena"))
			})
		})

		When("the member has no relationships", func() {
			It("returns an empty list, not nil", func() {
				// ARRANGE
				member := stubs.NewMemberStub().Get()
				h.testSeeder.InsertMember(ctx, &member)

				// ACT
				result, err := h.familyService.GetMemberWithRelationships(ctx, member.ID)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Relationships).NotTo(BeNil())
				Expect(result.Relationships).To(BeEmpty())
			})
		})

		When("the member does not exist", func() {
			It("returns a not found error", func() {
				_, err := h.familyService.GetMemberWithRelationships(ctx, 99999)

				Expect(err).To(MatchError(domain.ErrMemberNotFound))
			})
		})
	})
})

var _ = Describe("ListMembers", func() {
	var (
		h   *harness
		ctx context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		h = setupHarness()
		h.testSeeder.TruncateTables(ctx)
		if h.redisClient != nil {
			h.redisClient.FlushByPrefix(ctx)
		}
	})

	AfterEach(func() {
		h.teardown()
	})

	When("several members exist", func() {
		It("returns all of them, each carrying its own relationship list", func() {
			// ARRANGE
			husband := stubs.NewMemberStub().Get()
			wife := stubs.NewMemberStub().Get()
			loner := stubs.NewMemberStub().Get()
			h.testSeeder.InsertMember(ctx, &husband)
			h.testSeeder.InsertMember(ctx, &wife)
			h.testSeeder.InsertMember(ctx, &loner)

			_, err := h.familyService.DeclareRelationships(ctx, husband.ID, []domain.RelationshipDeclaration{
				{RelatedPersonID: wife.ID, RelationType: entities.RelationSpouse},
			})
			Expect(err).NotTo(HaveOccurred())

			// ACT
			members, err := h.familyService.ListMembers(ctx)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(members).To(HaveLen(3))

			byID := make(map[int64]int, len(members))
			for i := range members {
				byID[members[i].ID] = len(members[i].Relationships)
			}
			Expect(byID[husband.ID]).To(Equal(1))
			Expect(byID[wife.ID]).To(Equal(1))
			Expect(byID[loner.ID]).To(Equal(0))
		})
	})

	When("no members exist", func() {
		It("returns an empty list", func() {
			members, err := h.familyService.ListMembers(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(members).To(BeEmpty())
		})
	})
})
