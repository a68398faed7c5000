package domain_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"familygraph/src/domain"
	"familygraph/src/domain/entities"
)

var _ = Describe("ValidateDeclarations", func() {
	Context("when the list is well formed", func() {
		When("every declaration has a valid target and type", func() {
			It("accepts the whole list", func() {
				err := domain.ValidateDeclarations(1, []domain.RelationshipDeclaration{
					{RelatedPersonID: 2, RelationType: entities.RelationParent},
					{RelatedPersonID: 3, RelationType: entities.RelationChild},
					{RelatedPersonID: 4, RelationType: entities.RelationSpouse},
				})

				Expect(err).NotTo(HaveOccurred())
			})
		})

		When("the same person appears with different relation types", func() {
			It("accepts the list", func() {
				err := domain.ValidateDeclarations(1, []domain.RelationshipDeclaration{
					{RelatedPersonID: 2, RelationType: entities.RelationParent},
					{RelatedPersonID: 2, RelationType: entities.RelationSpouse},
				})

				Expect(err).NotTo(HaveOccurred())
			})
		})

		When("the list is empty", func() {
			It("accepts it", func() {
				Expect(domain.ValidateDeclarations(1, nil)).To(Succeed())
			})
		})
	})

	Context("when the list is malformed", func() {
		When("the member id is negative", func() {
			It("rejects the request", func() {
				err := domain.ValidateDeclarations(-1, nil)

				var validationErr *domain.ValidationError
				Expect(err).To(BeAssignableToTypeOf(validationErr))
				Expect(err.Error()).To(ContainSubstring("memberId"))
			})
		})

		When("a related person id is not positive", func() {
			It("rejects the whole list", func() {
				err := domain.ValidateDeclarations(1, []domain.RelationshipDeclaration{
					{RelatedPersonID: 2, RelationType: entities.RelationParent},
					{RelatedPersonID: 0, RelationType: entities.RelationChild},
				})

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("relationships[1].relatedPersonId"))
			})
		})

		When("a relation type is unknown", func() {
			It("rejects the whole list", func() {
				err := domain.ValidateDeclarations(1, []domain.RelationshipDeclaration{
					{RelatedPersonID: 2, RelationType: "sibling"},
				})

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("relationships[0].relationType"))
			})
		})

		When("a declaration points at the member itself", func() {
			It("rejects the whole list", func() {
				err := domain.ValidateDeclarations(7, []domain.RelationshipDeclaration{
					{RelatedPersonID: 7, RelationType: entities.RelationSpouse},
				})

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("cannot relate to itself"))
			})
		})

		When("the same (person, type) pair appears twice", func() {
			It("rejects the whole list", func() {
				err := domain.ValidateDeclarations(1, []domain.RelationshipDeclaration{
					{RelatedPersonID: 2, RelationType: entities.RelationParent},
					{RelatedPersonID: 3, RelationType: entities.RelationChild},
					{RelatedPersonID: 2, RelationType: entities.RelationParent},
				})

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("relationships[2]"))
				Expect(err.Error()).To(ContainSubstring("duplicate declaration"))
			})
		})
	})

	Context("when the member is still being created", func() {
		When("member id is zero", func() {
			It("skips the self-relation check but keeps the rest", func() {
				err := domain.ValidateDeclarations(0, []domain.RelationshipDeclaration{
					{RelatedPersonID: 2, RelationType: entities.RelationParent},
				})
				Expect(err).NotTo(HaveOccurred())

				err = domain.ValidateDeclarations(0, []domain.RelationshipDeclaration{
					{RelatedPersonID: 2, RelationType: "cousin"},
				})
				Expect(err).To(HaveOccurred())
			})
		})
	})
})

var _ = Describe("SynthesizeEdges", func() {
	When("declaring a parent", func() {
		It("synthesizes the child edge back", func() {
			edges := domain.SynthesizeEdges(1, []domain.RelationshipDeclaration{
				{RelatedPersonID: 2, RelationType: entities.RelationParent},
			})

			Expect(edges).To(Equal([]domain.EdgeSpec{
				{FromMemberID: 1, ToMemberID: 2, RelationType: entities.RelationParent},
				{FromMemberID: 2, ToMemberID: 1, RelationType: entities.RelationChild},
			}))
		})
	})

	When("declaring a child", func() {
		It("synthesizes the parent edge back", func() {
			edges := domain.SynthesizeEdges(1, []domain.RelationshipDeclaration{
				{RelatedPersonID: 2, RelationType: entities.RelationChild},
			})

			Expect(edges).To(Equal([]domain.EdgeSpec{
				{FromMemberID: 1, ToMemberID: 2, RelationType: entities.RelationChild},
				{FromMemberID: 2, ToMemberID: 1, RelationType: entities.RelationParent},
			}))
		})
	})

	When("declaring a spouse", func() {
		It("synthesizes a spouse edge in both directions", func() {
			edges := domain.SynthesizeEdges(1, []domain.RelationshipDeclaration{
				{RelatedPersonID: 2, RelationType: entities.RelationSpouse},
			})

			Expect(edges).To(Equal([]domain.EdgeSpec{
				{FromMemberID: 1, ToMemberID: 2, RelationType: entities.RelationSpouse},
				{FromMemberID: 2, ToMemberID: 1, RelationType: entities.RelationSpouse},
			}))
		})
	})

	When("declaring several relationships", func() {
		It("produces exactly two edges per declaration, in order", func() {
			edges := domain.SynthesizeEdges(10, []domain.RelationshipDeclaration{
				{RelatedPersonID: 20, RelationType: entities.RelationParent},
				{RelatedPersonID: 30, RelationType: entities.RelationSpouse},
			})

			Expect(edges).To(HaveLen(4))
			Expect(edges[0]).To(Equal(domain.EdgeSpec{FromMemberID: 10, ToMemberID: 20, RelationType: entities.RelationParent}))
			Expect(edges[1]).To(Equal(domain.EdgeSpec{FromMemberID: 20, ToMemberID: 10, RelationType: entities.RelationChild}))
			Expect(edges[2]).To(Equal(domain.EdgeSpec{FromMemberID: 10, ToMemberID: 30, RelationType: entities.RelationSpouse}))
			Expect(edges[3]).To(Equal(domain.EdgeSpec{FromMemberID: 30, ToMemberID: 10, RelationType: entities.RelationSpouse}))
		})
	})
})

var _ = Describe("EdgeSpec", func() {
	When("taking the reciprocal twice", func() {
		It("returns to the original edge", func() {
			edge := domain.EdgeSpec{FromMemberID: 1, ToMemberID: 2, RelationType: entities.RelationParent}

			Expect(edge.Reciprocal().Reciprocal()).To(Equal(edge))
		})
	})
})

var _ = Describe("RelatedMemberIDs", func() {
	When("declarations repeat the same person", func() {
		It("deduplicates preserving first occurrence order", func() {
			ids := domain.RelatedMemberIDs([]domain.RelationshipDeclaration{
				{RelatedPersonID: 5, RelationType: entities.RelationParent},
				{RelatedPersonID: 3, RelationType: entities.RelationSpouse},
				{RelatedPersonID: 5, RelationType: entities.RelationSpouse},
			})

			Expect(ids).To(Equal([]int64{5, 3}))
		})
	})
})
