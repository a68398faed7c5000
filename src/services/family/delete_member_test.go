package family_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"familygraph/src/domain"
	"familygraph/src/domain/entities"
	"familygraph/src/test_artefacts/stubs"
)

var _ = Describe("DeleteMember", func() {
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

	Context("when deleting a member with relationships, timeline and documents", func() {
		When("the member exists", func() {
			It("cascades the delete over edges in both directions, events and documents", func() {
				// ARRANGE
				member := stubs.NewMemberStub().Get()
				spouse := stubs.NewMemberStub().Get()
				h.testSeeder.InsertMember(ctx, &member)
				h.testSeeder.InsertMember(ctx, &spouse)

				_, err := h.familyService.DeclareRelationships(ctx, member.ID, []domain.RelationshipDeclaration{
					{RelatedPersonID: spouse.ID, RelationType: entities.RelationSpouse},
				})
				Expect(err).NotTo(HaveOccurred())

				event := stubs.NewTimelineEventStub().WithMemberID(member.ID).Get()
				h.testSeeder.InsertTimelineEvent(ctx, &event)

				document := stubs.NewDocumentStub().WithMemberID(member.ID).Get()
				h.testSeeder.InsertDocument(ctx, &document)

				// ACT
				err = h.familyService.DeleteMember(ctx, member.ID)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())

				_, err = h.testSeeder.SelectMemberByID(ctx, member.ID)
				Expect(err).To(HaveOccurred())

				edges, err := h.testSeeder.SelectRelationshipsByMemberIDs(ctx, []int64{member.ID, spouse.ID})
				Expect(err).NotTo(HaveOccurred())
				Expect(edges).To(BeEmpty())

				events, err := h.testSeeder.SelectTimelineEventsByMemberID(ctx, member.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(events).To(BeEmpty())

				documents, err := h.testSeeder.SelectDocumentsByMemberID(ctx, member.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(documents).To(BeEmpty())

				// O cônjuge sobrevive intacto.
				survivor, err := h.testSeeder.SelectMemberByID(ctx, spouse.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(survivor.ID).To(Equal(spouse.ID))
			})
		})

		When("the member does not exist", func() {
			It("returns a not found error", func() {
				err := h.familyService.DeleteMember(ctx, 99999)

				Expect(err).To(MatchError(domain.ErrMemberNotFound))
			})
		})

		When("the member id is not positive", func() {
			It("rejects the request", func() {
				err := h.familyService.DeleteMember(ctx, 0)

				var validationErr *domain.ValidationError
				Expect(err).To(BeAssignableToTypeOf(validationErr))
			})
		})
	})
})
