package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/urbancruise/cruise-lms/internal/entity"
	"github.com/urbancruise/cruise-lms/internal/usecase"
)

func TestWebsiteLeadSuccessPublishesNotification(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	repo.On("FindByEmailSource", ctx, "form@example.com", entity.SourceWebsite).Return(nil, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)
	publisher := new(MockPublisher)
	publisher.On("PublishLeadCreated", ctx, mock.Anything).Return(nil)

	uc := usecase.NewCreateWebsiteLeadUseCase(usecase.NewDuplicateResolver(repo), publisher)
	lead, err := uc.Execute(ctx, usecase.WebsiteLeadInput{
		Name:    "Form Filler",
		Email:   "form@example.com",
		Phone:   "9876543210",
		Message: "need a sedan this weekend",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.SourceWebsite, lead.Source)
	assert.Equal(t, []string{"need a sedan this weekend"}, lead.Notes)
	publisher.AssertCalled(t, "PublishLeadCreated", ctx, lead)
}

func TestWebsiteLeadDuplicateRejected(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	repo.On("FindByEmailSource", ctx, "dup@example.com", entity.SourceWebsite).
		Return(&entity.Lead{ID: "lead-1"}, nil)
	publisher := new(MockPublisher)

	uc := usecase.NewCreateWebsiteLeadUseCase(usecase.NewDuplicateResolver(repo), publisher)
	_, err := uc.Execute(ctx, usecase.WebsiteLeadInput{
		Name:  "Repeat Visitor",
		Email: "dup@example.com",
	})

	var domainErr *usecase.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_LEAD", domainErr.Code)
	publisher.AssertNotCalled(t, "PublishLeadCreated", mock.Anything, mock.Anything)
}

func TestWebsiteLeadRequiresNameAndEmail(t *testing.T) {
	uc := usecase.NewCreateWebsiteLeadUseCase(usecase.NewDuplicateResolver(new(MockLeadRepository)), nil)
	_, err := uc.Execute(context.Background(), usecase.WebsiteLeadInput{Phone: "9876543210"})

	var domainErr *usecase.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
}

// Publish failures are logged, never surfaced to the form caller.
func TestWebsiteLeadPublishFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	repo.On("FindByEmailSource", ctx, mock.Anything, mock.Anything).Return(nil, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)
	publisher := new(MockPublisher)
	publisher.On("PublishLeadCreated", ctx, mock.Anything).Return(assert.AnError)

	uc := usecase.NewCreateWebsiteLeadUseCase(usecase.NewDuplicateResolver(repo), publisher)
	lead, err := uc.Execute(ctx, usecase.WebsiteLeadInput{
		Name:  "Unbothered",
		Email: "ok@example.com",
	})

	assert.NoError(t, err)
	assert.NotNil(t, lead)
}
