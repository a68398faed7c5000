package family_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"familygraph/src/domain"
	"familygraph/src/domain/entities"
	"familygraph/src/test_artefacts/comparer"
	"familygraph/src/test_artefacts/stubs"
)

var _ = Describe("CreateMember", func() {
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

	Context("when creating a member without relationships", func() {
		When("all scalar fields are valid", func() {
			It("persists the member and returns it with an empty relationship list", func() {
				// ARRANGE
				stub := stubs.NewMemberStub().Get()

				// ACT
				created, err := h.familyService.CreateMember(ctx, memberFieldsFrom(stub), nil)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(created.ID).To(BeNumerically(">", 0))
				Expect(created.Relationships).To(BeEmpty())

				databaseMember, err := h.testSeeder.SelectMemberByID(ctx, created.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(*databaseMember).To(BeComparableTo(stub,
					comparer.TimeWithinTolerance(2000),
					comparer.IgnoreFieldsFor[entities.Member]("ID", "CreatedAt", "UpdatedAt"),
				))
			})
		})
	})

	Context("when creating a member with relationship declarations", func() {
		When("declaring a parent and a spouse", func() {
			It("persists forward and reciprocal edges for each declaration", func() {
				// ARRANGE
				father := stubs.NewMemberStub().Get()
				wife := stubs.NewMemberStub().Get()
				h.testSeeder.InsertMember(ctx, &father)
				h.testSeeder.InsertMember(ctx, &wife)

				declarations := []domain.RelationshipDeclaration{
					{RelatedPersonID: father.ID, RelationType: entities.RelationParent},
					{RelatedPersonID: wife.ID, RelationType: entities.RelationSpouse},
				}

				// ACT
				created, err := h.familyService.CreateMember(ctx, memberFieldsFrom(stubs.NewMemberStub().Get()), declarations)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(created.Relationships).To(HaveLen(2))
				Expect(created.Relationships[0].RelatedPersonID).To(Equal(father.ID))
				Expect(created.Relationships[0].RelationType).To(Equal(entities.RelationParent))
				Expect(created.Relationships[0].RelatedFirstName).To(Equal(father.FirstName))
				Expect(created.Relationships[0].RelatedLastName).To(Equal(father.LastName))
				Expect(created.Relationships[1].RelatedPersonID).To(Equal(wife.ID))
				Expect(created.Relationships[1].RelationType).To(Equal(entities.RelationSpouse))

				edges, err := h.testSeeder.SelectRelationshipsByMemberIDs(ctx, []int64{created.ID})
				Expect(err).NotTo(HaveOccurred())
				Expect(edges).To(HaveLen(4))
				Expect(edges).To(ContainElements(
					BeComparableTo(entities.Relationship{FromMemberID: created.ID, ToMemberID: father.ID, RelationType: entities.RelationParent}, comparer.IgnoreFieldsFor[entities.Relationship]("ID", "CreatedAt")),
					BeComparableTo(entities.Relationship{FromMemberID: father.ID, ToMemberID: created.ID, RelationType: entities.RelationChild}, comparer.IgnoreFieldsFor[entities.Relationship]("ID", "CreatedAt")),
					BeComparableTo(entities.Relationship{FromMemberID: created.ID, ToMemberID: wife.ID, RelationType: entities.RelationSpouse}, comparer.IgnoreFieldsFor[entities.Relationship]("ID", "CreatedAt")),
					BeComparableTo(entities.Relationship{FromMemberID: wife.ID, ToMemberID: created.ID, RelationType: entities.RelationSpouse}, comparer.IgnoreFieldsFor[entities.Relationship]("ID", "CreatedAt")),
				))
			})
		})

		When("a declaration references a member that does not exist", func() {
			It("rejects the request and persists nothing", func() {
				// ARRANGE
				declarations := []domain.RelationshipDeclaration{
					{RelatedPersonID: 99999, RelationType: entities.RelationParent},
				}

				// ACT
				created, err := h.familyService.CreateMember(ctx, memberFieldsFrom(stubs.NewMemberStub().Get()), declarations)

				// ASSERT
				Expect(created).To(BeNil())
				var referenceErr *domain.ReferenceError
				Expect(err).To(BeAssignableToTypeOf(referenceErr))

				members, err := h.familyService.ListMembers(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(members).To(BeEmpty())
			})
		})

		When("the same declaration appears twice in the request", func() {
			It("rejects the request atomically", func() {
				// ARRANGE
				father := stubs.NewMemberStub().Get()
				h.testSeeder.InsertMember(ctx, &father)

				declarations := []domain.RelationshipDeclaration{
					{RelatedPersonID: father.ID, RelationType: entities.RelationParent},
					{RelatedPersonID: father.ID, RelationType: entities.RelationParent},
				}

				// ACT
				created, err := h.familyService.CreateMember(ctx, memberFieldsFrom(stubs.NewMemberStub().Get()), declarations)

				// ASSERT
				Expect(created).To(BeNil())
				var validationErr *domain.ValidationError
				Expect(err).To(BeAssignableToTypeOf(validationErr))

				edges, err := h.testSeeder.SelectRelationshipsByMemberIDs(ctx, []int64{father.ID})
				Expect(err).NotTo(HaveOccurred())
				Expect(edges).To(BeEmpty())
			})
		})
	})

	Context("when scalar validation fails", func() {
		When("required fields are missing", func() {
			It("rejects the request", func() {
				_, err := h.familyService.CreateMember(ctx, domain.MemberFields{LastName: "Silva", Gender: "male"}, nil)
				Expect(err.Error()).To(ContainSubstring("firstName"))

				_, err = h.familyService.CreateMember(ctx, domain.MemberFields{FirstName: "João", Gender: "male"}, nil)
				Expect(err.Error()).To(ContainSubstring("lastName"))

				_, err = h.familyService.CreateMember(ctx, domain.MemberFields{FirstName: "João", LastName: "Silva"}, nil)
				Expect(err.Error()).To(ContainSubstring("gender"))
			})
		})

		When("the death date precedes the birth date", func() {
			It("rejects the request", func() {
				// ARRANGE
				birthDate := time.Date(1950, 6, 1, 0, 0, 0, 0, time.UTC)
				deathDate := birthDate.AddDate(-1, 0, 0)
				fields := memberFieldsFrom(stubs.NewMemberStub().WithBirthDate(birthDate).WithDeathDate(deathDate).Get())

				// ACT
				created, err := h.familyService.CreateMember(ctx, fields, nil)

				// ASSERT
				Expect(created).To(BeNil())
				Expect(err.Error()).To(ContainSubstring("deathDate"))
			})
		})
	})
})
