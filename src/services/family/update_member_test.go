package family_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"familygraph/src/domain"
	"familygraph/src/domain/entities"
	"familygraph/src/test_artefacts/comparer"
	"familygraph/src/test_artefacts/stubs"
)

var _ = Describe("UpdateMember", func() {
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

	Context("when updating scalar fields", func() {
		When("the member exists", func() {
			It("replaces the fields and keeps the id", func() {
				// ARRANGE
				member := stubs.NewMemberStub().Get()
				h.testSeeder.InsertMember(ctx, &member)

				updatedFields := memberFieldsFrom(stubs.NewMemberStub().WithName("Maria", "Souza").WithBiography("Matriarca da família.").Get())

				// ACT
				updated, err := h.familyService.UpdateMember(ctx, member.ID, updatedFields, nil)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(updated.ID).To(Equal(member.ID))
				Expect(updated.FirstName).To(Equal("Maria"))
				Expect(updated.LastName).To(Equal("Souza"))
				Expect(*updated.Biography).To(Equal("Matriarca da família."))
			})
		})

		When("the member does not exist", func() {
			It("returns a not found error", func() {
				_, err := h.familyService.UpdateMember(ctx, 99999, memberFieldsFrom(stubs.NewMemberStub().Get()), nil)

				Expect(err).To(MatchError(domain.ErrMemberNotFound))
			})
		})
	})

	Context("when replacing the relationship set", func() {
		var (
			member entities.Member
			father entities.Member
			wife   entities.Member
		)

		BeforeEach(func() {
			member = stubs.NewMemberStub().Get()
			father = stubs.NewMemberStub().Get()
			wife = stubs.NewMemberStub().Get()
			h.testSeeder.InsertMember(ctx, &member)
			h.testSeeder.InsertMember(ctx, &father)
			h.testSeeder.InsertMember(ctx, &wife)

			_, err := h.familyService.DeclareRelationships(ctx, member.ID, []domain.RelationshipDeclaration{
				{RelatedPersonID: father.ID, RelationType: entities.RelationParent},
			})
			Expect(err).NotTo(HaveOccurred())
		})

		When("the new set replaces the old one", func() {
			It("removes the previous edges in both directions before applying the new set", func() {
				// ACT
				updated, err := h.familyService.UpdateMember(ctx, member.ID, memberFieldsFrom(member), []domain.RelationshipDeclaration{
					{RelatedPersonID: wife.ID, RelationType: entities.RelationSpouse},
				})

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(updated.Relationships).To(HaveLen(1))
				Expect(updated.Relationships[0].RelatedPersonID).To(Equal(wife.ID))

				edges, err := h.testSeeder.SelectRelationshipsByMemberIDs(ctx, []int64{member.ID, father.ID, wife.ID})
				Expect(err).NotTo(HaveOccurred())
				Expect(edges).To(HaveLen(2))
				Expect(edges).To(ContainElements(
					BeComparableTo(entities.Relationship{FromMemberID: member.ID, ToMemberID: wife.ID, RelationType: entities.RelationSpouse}, comparer.IgnoreFieldsFor[entities.Relationship]("ID", "CreatedAt")),
					BeComparableTo(entities.Relationship{FromMemberID: wife.ID, ToMemberID: member.ID, RelationType: entities.RelationSpouse}, comparer.IgnoreFieldsFor[entities.Relationship]("ID", "CreatedAt")),
				))
			})
		})

		When("the same update is applied twice", func() {
			It("is idempotent: the final graph is identical", func() {
				declarations := []domain.RelationshipDeclaration{
					{RelatedPersonID: father.ID, RelationType: entities.RelationParent},
					{RelatedPersonID: wife.ID, RelationType: entities.RelationSpouse},
				}

				// ACT
				_, err := h.familyService.UpdateMember(ctx, member.ID, memberFieldsFrom(member), declarations)
				Expect(err).NotTo(HaveOccurred())

				_, err = h.familyService.UpdateMember(ctx, member.ID, memberFieldsFrom(member), declarations)
				Expect(err).NotTo(HaveOccurred())

				// ASSERT
				edges, err := h.testSeeder.SelectRelationshipsByMemberIDs(ctx, []int64{member.ID})
				Expect(err).NotTo(HaveOccurred())
				Expect(edges).To(HaveLen(4))
			})
		})

		When("the new set is empty", func() {
			It("removes every edge touching the member, both directions", func() {
				// ACT
				updated, err := h.familyService.UpdateMember(ctx, member.ID, memberFieldsFrom(member), nil)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(updated.Relationships).To(BeEmpty())

				edges, err := h.testSeeder.SelectRelationshipsByMemberIDs(ctx, []int64{member.ID, father.ID})
				Expect(err).NotTo(HaveOccurred())
				Expect(edges).To(BeEmpty())
			})
		})

		When("a declaration points at the member itself", func() {
			It("rejects the request and leaves the graph untouched", func() {
				// ACT
				_, err := h.familyService.UpdateMember(ctx, member.ID, memberFieldsFrom(member), []domain.RelationshipDeclaration{
					{RelatedPersonID: member.ID, RelationType: entities.RelationSpouse},
				})

				// ASSERT
				var validationErr *domain.ValidationError
				Expect(err).To(BeAssignableToTypeOf(validationErr))

				edges, err := h.testSeeder.SelectRelationshipsByMemberIDs(ctx, []int64{member.ID})
				Expect(err).NotTo(HaveOccurred())
				Expect(edges).To(HaveLen(2))
			})
		})
	})
})
