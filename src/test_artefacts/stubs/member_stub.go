package stubs

import (
	"time"

	"familygraph/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type MemberStub struct {
	member entities.Member
}

func NewMemberStub() MemberStub {
	now := time.Now().UTC()
	birthDate := gofakeit.DateRange(
		time.Date(1920, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2000, 12, 31, 0, 0, 0, 0, time.UTC),
	).Truncate(24 * time.Hour)
	birthPlace := gofakeit.City()

	member := entities.Member{
		ID:         gofakeit.Int64(),
		FirstName:  gofakeit.FirstName(),
		LastName:   gofakeit.LastName(),
		Gender:     gofakeit.Gender(),
		BirthDate:  &birthDate,
		BirthPlace: &birthPlace,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	return MemberStub{member: member}
}

func (ms MemberStub) WithName(firstName string, lastName string) MemberStub {
	ms.member.FirstName = firstName
	ms.member.LastName = lastName
	return ms
}

func (ms MemberStub) WithGender(gender string) MemberStub {
	ms.member.Gender = gender
	return ms
}

func (ms MemberStub) WithBirthDate(birthDate time.Time) MemberStub {
	ms.member.BirthDate = &birthDate
	return ms
}

func (ms MemberStub) WithDeathDate(deathDate time.Time) MemberStub {
	ms.member.DeathDate = &deathDate
	return ms
}

func (ms MemberStub) WithBiography(biography string) MemberStub {
	ms.member.Biography = &biography
	return ms
}

func (ms MemberStub) Get() entities.Member {
	return ms.member
}
