package service

import (
	"testing"

	"github.com/lshigami/Axolotls/internal/apperr"
	"github.com/lshigami/Axolotls/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMockRequest() dto.MockCreateRequest {
	return dto.MockCreateRequest{
		Mock: dto.MockCreateDTO{
			Title:    "Sample Mock",
			Duration: 90,
			Sections: []dto.SectionCreateDTO{
				{
					Name:      "Section A",
					SortOrder: 1,
					Questions: []dto.QuestionCreateDTO{
						{
							Text:         strPtr("What is 2+2?"),
							Marks:        2,
							NegativeMark: 0.5,
							Options: []dto.OptionCreateDTO{
								{Label: "A", Text: strPtr("3")},
								{Label: "B", Text: strPtr("4"), IsCorrect: true},
							},
						},
					},
				},
			},
		},
	}
}

func TestCreateMock_Success(t *testing.T) {
	repo := &fakeMockRepo{}
	svc := NewAdminMockService(repo)

	resp, err := svc.CreateMock(validMockRequest())

	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	created := repo.created[0]

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, 1, resp.SectionsCount)
	assert.Equal(t, 1, resp.QuestionsCount)
	assert.True(t, created.IsActive)

	// Questions reference the mock directly, not only through the section.
	require.Len(t, created.Sections, 1)
	require.Len(t, created.Sections[0].Questions, 1)
	assert.Equal(t, created.ID, created.Sections[0].Questions[0].MockID)
}

func TestCreateMock_DuplicateSectionSortOrder(t *testing.T) {
	req := validMockRequest()
	dup := req.Mock.Sections[0]
	dup.Name = "Section B"
	req.Mock.Sections = append(req.Mock.Sections, dup)
	svc := NewAdminMockService(&fakeMockRepo{})

	_, err := svc.CreateMock(req)

	require.Error(t, err)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

func TestCreateMock_TooFewOptions(t *testing.T) {
	req := validMockRequest()
	req.Mock.Sections[0].Questions[0].Options = req.Mock.Sections[0].Questions[0].Options[:1]
	svc := NewAdminMockService(&fakeMockRepo{})

	_, err := svc.CreateMock(req)

	require.Error(t, err)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

func TestCreateMock_ExactlyOneCorrectOption(t *testing.T) {
	noCorrect := validMockRequest()
	noCorrect.Mock.Sections[0].Questions[0].Options[1].IsCorrect = false

	twoCorrect := validMockRequest()
	twoCorrect.Mock.Sections[0].Questions[0].Options[0].IsCorrect = true

	svc := NewAdminMockService(&fakeMockRepo{})

	for name, req := range map[string]dto.MockCreateRequest{"none": noCorrect, "two": twoCorrect} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateMock(req)
			require.Error(t, err)
			assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
		})
	}
}
