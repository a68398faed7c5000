package family_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"familygraph/src/domain"
	"familygraph/src/domain/entities"
	"familygraph/src/test_artefacts/stubs"
)

var _ = Describe("DeclareRelationships", func() {
	var (
		h      *harness
		ctx    context.Context
		member entities.Member
		father entities.Member
	)

	BeforeEach(func() {
		ctx = context.Background()
		h = setupHarness()
		h.testSeeder.TruncateTables(ctx)
		if h.redisClient != nil {
			h.redisClient.FlushByPrefix(ctx)
		}

		member = stubs.NewMemberStub().Get()
		father = stubs.NewMemberStub().Get()
		h.testSeeder.InsertMember(ctx, &member)
		h.testSeeder.InsertMember(ctx, &father)
	})

	AfterEach(func() {
		h.teardown()
	})

	Context("when adding declarations to an existing member", func() {
		When("the declaration is new", func() {
			It("adds the edge and its reciprocal on top of the existing graph", func() {
				// ACT
				result, err := h.familyService.DeclareRelationships(ctx, member.ID, []domain.RelationshipDeclaration{
					{RelatedPersonID: father.ID, RelationType: entities.RelationParent},
				})

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Relationships).To(HaveLen(1))
				Expect(result.Relationships[0].RelationType).To(Equal(entities.RelationParent))

				edges, err := h.testSeeder.SelectRelationshipsByMemberIDs(ctx, []int64{member.ID})
				Expect(err).NotTo(HaveOccurred())
				Expect(edges).To(HaveLen(2))
			})
		})

		When("the declared edge already exists in the graph", func() {
			It("rejects the whole batch with a duplicate error", func() {
				// ARRANGE
				_, err := h.familyService.DeclareRelationships(ctx, member.ID, []domain.RelationshipDeclaration{
					{RelatedPersonID: father.ID, RelationType: entities.RelationParent},
				})
				Expect(err).NotTo(HaveOccurred())

				// ACT
				result, err := h.familyService.DeclareRelationships(ctx, member.ID, []domain.RelationshipDeclaration{
					{RelatedPersonID: father.ID, RelationType: entities.RelationParent},
				})

				// ASSERT
				Expect(result).To(BeNil())
				var duplicateErr *domain.DuplicateRelationshipError
				Expect(err).To(BeAssignableToTypeOf(duplicateErr))

				edges, err := h.testSeeder.SelectRelationshipsByMemberIDs(ctx, []int64{member.ID})
				Expect(err).NotTo(HaveOccurred())
				Expect(edges).To(HaveLen(2))
			})
		})

		When("the declaration collides with the reciprocal of an existing edge", func() {
			It("rejects the batch: declaring child where parent was declared from the other side", func() {
				// ARRANGE
				// father.ID declara member como child => sintetiza member->father parent.
				_, err := h.familyService.DeclareRelationships(ctx, father.ID, []domain.RelationshipDeclaration{
					{RelatedPersonID: member.ID, RelationType: entities.RelationChild},
				})
				Expect(err).NotTo(HaveOccurred())

				// ACT
				_, err = h.familyService.DeclareRelationships(ctx, member.ID, []domain.RelationshipDeclaration{
					{RelatedPersonID: father.ID, RelationType: entities.RelationParent},
				})

				// ASSERT
				var duplicateErr *domain.DuplicateRelationshipError
				Expect(err).To(BeAssignableToTypeOf(duplicateErr))
			})
		})

		When("one declaration in a batch is invalid", func() {
			It("persists nothing from the batch", func() {
				// ACT
				_, err := h.familyService.DeclareRelationships(ctx, member.ID, []domain.RelationshipDeclaration{
					{RelatedPersonID: father.ID, RelationType: entities.RelationParent},
					{RelatedPersonID: 99999, RelationType: entities.RelationSpouse},
				})

				// ASSERT
				var referenceErr *domain.ReferenceError
				Expect(err).To(BeAssignableToTypeOf(referenceErr))

				edges, err := h.testSeeder.SelectRelationshipsByMemberIDs(ctx, []int64{member.ID})
				Expect(err).NotTo(HaveOccurred())
				Expect(edges).To(BeEmpty())
			})
		})

		When("the declaration list is empty", func() {
			It("rejects the request", func() {
				_, err := h.familyService.DeclareRelationships(ctx, member.ID, nil)

				var validationErr *domain.ValidationError
				Expect(err).To(BeAssignableToTypeOf(validationErr))
			})
		})

		When("the target member does not exist", func() {
			It("returns a not found error", func() {
				_, err := h.familyService.DeclareRelationships(ctx, 99999, []domain.RelationshipDeclaration{
					{RelatedPersonID: father.ID, RelationType: entities.RelationSpouse},
				})

				Expect(err).To(MatchError(domain.ErrMemberNotFound))
			})
		})
	})
})

var _ = Describe("DeleteRelationship", func() {
	var (
		h      *harness
		ctx    context.Context
		member entities.Member
		father entities.Member
	)

	BeforeEach(func() {
		ctx = context.Background()
		h = setupHarness()
		h.testSeeder.TruncateTables(ctx)
		if h.redisClient != nil {
			h.redisClient.FlushByPrefix(ctx)
		}

		member = stubs.NewMemberStub().Get()
		father = stubs.NewMemberStub().Get()
		h.testSeeder.InsertMember(ctx, &member)
		h.testSeeder.InsertMember(ctx, &father)

		_, err := h.familyService.DeclareRelationships(ctx, member.ID, []domain.RelationshipDeclaration{
			{RelatedPersonID: father.ID, RelationType: entities.RelationParent},
		})
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		h.teardown()
	})

	Context("when deleting an edge by id", func() {
		When("the edge exists", func() {
			It("also deletes the reciprocal edge, keeping the graph symmetric", func() {
				// ARRANGE
				edges, err := h.testSeeder.SelectRelationshipsByMemberIDs(ctx, []int64{member.ID})
				Expect(err).NotTo(HaveOccurred())
				Expect(edges).To(HaveLen(2))

				// ACT
				err = h.familyService.DeleteRelationship(ctx, edges[0].ID)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())

				remaining, err := h.testSeeder.SelectRelationshipsByMemberIDs(ctx, []int64{member.ID, father.ID})
				Expect(err).NotTo(HaveOccurred())
				Expect(remaining).To(BeEmpty())
			})
		})

		When("the id given is the reciprocal edge", func() {
			It("removes the pair all the same", func() {
				// ARRANGE
				edges, err := h.testSeeder.SelectRelationshipsByMemberIDs(ctx, []int64{member.ID})
				Expect(err).NotTo(HaveOccurred())
				Expect(edges).To(HaveLen(2))

				// ACT
				err = h.familyService.DeleteRelationship(ctx, edges[1].ID)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())

				remaining, err := h.testSeeder.SelectRelationshipsByMemberIDs(ctx, []int64{member.ID, father.ID})
				Expect(err).NotTo(HaveOccurred())
				Expect(remaining).To(BeEmpty())
			})
		})

		When("the edge does not exist", func() {
			It("returns a not found error", func() {
				err := h.familyService.DeleteRelationship(ctx, 99999)

				Expect(err).To(MatchError(domain.ErrRelationshipNotFound))
			})
		})
	})
})
