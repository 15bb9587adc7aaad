package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/vantora/leadhub/internal/entity"
	"github.com/vantora/leadhub/internal/infra/queue"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// LeadUseCase owns the CRUD and listing rules for leads. The queue producer is
// optional; when nil, lifecycle events are simply not published.
type LeadUseCase struct {
	Repo  entity.LeadRepositoryInterface
	Queue QueueProducerInterface
}

func NewLeadUseCase(repo entity.LeadRepositoryInterface, producer QueueProducerInterface) *LeadUseCase {
	return &LeadUseCase{Repo: repo, Queue: producer}
}

func (uc *LeadUseCase) List(ctx context.Context, input ListLeadsInput) (*ListLeadsOutput, error) {
	if errs := ValidateListLeadsInput(input); len(errs) > 0 {
		return nil, NewValidationError(validationMessage(errs))
	}

	page := input.Page
	if page < 1 {
		page = defaultPage
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	sortBy := input.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}

	filter := entity.LeadFilter{
		Search: strings.TrimSpace(input.Search),
		Source: input.Source,
	}
	// "All" is the UI's explicit no-filter choice.
	if input.Stage != "" && input.Stage != "All" {
		filter.Stage = input.Stage
	}

	sort := entity.LeadSort{
		Field:      sortBy,
		Descending: input.Order != "asc",
	}

	leads, total, err := uc.Repo.List(ctx, filter, sort, entity.LeadPage{Number: page, Limit: limit})
	if err != nil {
		return nil, NewStoreError("failed to fetch leads", err)
	}

	if leads == nil {
		leads = []*entity.Lead{}
	}

	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}

	return &ListLeadsOutput{
		Leads: leads,
		Pagination: Pagination{
			Total:       total,
			Pages:       pages,
			CurrentPage: page,
			Limit:       limit,
		},
	}, nil
}

func (uc *LeadUseCase) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, NewNotFoundError(entity.ErrLeadNotFound.Error())
		}
		return nil, NewStoreError("failed to fetch lead", err)
	}
	return lead, nil
}

func (uc *LeadUseCase) Create(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, NewValidationError(validationMessage(errs))
	}

	value := 0.0
	if input.Value != nil {
		value = *input.Value
	}

	lead := entity.NewLead(
		strings.TrimSpace(input.FirstName),
		strings.TrimSpace(input.LastName),
		strings.TrimSpace(input.Email),
		strings.TrimSpace(input.Phone),
		strings.TrimSpace(input.Company),
		input.Stage,
		value,
		input.Source,
		input.Notes,
	)

	if err := uc.Repo.Create(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, NewConflictError(entity.ErrEmailAlreadyExists.Error())
		}
		return nil, NewStoreError("failed to create lead", err)
	}

	uc.publish(queue.EventLeadCreated, lead)

	return lead, nil
}

func (uc *LeadUseCase) Update(ctx context.Context, id string, input UpdateLeadInput) (*entity.Lead, error) {
	if errs := ValidateUpdateLeadInput(input); len(errs) > 0 {
		return nil, NewValidationError(validationMessage(errs))
	}

	lead, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, NewNotFoundError(entity.ErrLeadNotFound.Error())
		}
		return nil, NewStoreError("failed to fetch lead", err)
	}

	// A changed email must not collide with a different lead.
	if input.Email != nil && *input.Email != lead.Email {
		existing, err := uc.Repo.FindByEmail(ctx, *input.Email)
		if err != nil && !errors.Is(err, entity.ErrLeadNotFound) {
			return nil, NewStoreError("failed to check email", err)
		}
		if existing != nil && existing.ID != lead.ID {
			return nil, NewConflictError(entity.ErrEmailAlreadyExists.Error())
		}
	}

	wasConverted := lead.Stage == entity.StageConverted

	if input.FirstName != nil {
		lead.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		lead.LastName = *input.LastName
	}
	if input.Email != nil {
		lead.Email = *input.Email
	}
	if input.Phone != nil {
		lead.Phone = *input.Phone
	}
	if input.Company != nil {
		lead.Company = *input.Company
	}
	if input.Stage != nil {
		lead.Stage = *input.Stage
	}
	if input.Value != nil {
		lead.Value = *input.Value
	}
	if input.Source != nil {
		lead.Source = *input.Source
	}
	if input.Notes != nil {
		lead.Notes = *input.Notes
	}
	lead.UpdatedAt = time.Now()

	if err := uc.Repo.Update(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, NewConflictError(entity.ErrEmailAlreadyExists.Error())
		}
		return nil, NewStoreError("failed to update lead", err)
	}

	if !wasConverted && lead.Stage == entity.StageConverted {
		uc.publish(queue.EventLeadConverted, lead)
	}

	return lead, nil
}

func (uc *LeadUseCase) Delete(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, NewNotFoundError(entity.ErrLeadNotFound.Error())
		}
		return nil, NewStoreError("failed to fetch lead", err)
	}

	if err := uc.Repo.Delete(ctx, id); err != nil {
		return nil, NewStoreError("failed to delete lead", err)
	}

	return lead, nil
}

func (uc *LeadUseCase) Stats(ctx context.Context) (*entity.StageCounts, error) {
	counts, err := uc.Repo.CountByStage(ctx)
	if err != nil {
		return nil, NewStoreError("failed to fetch lead statistics", err)
	}
	return counts, nil
}

// publish fires a lifecycle event without blocking the request path.
func (uc *LeadUseCase) publish(event string, lead *entity.Lead) {
	if uc.Queue == nil {
		return
	}

	payload := queue.LeadEventPayload{
		Event:     event,
		LeadID:    lead.ID,
		FirstName: lead.FirstName,
		LastName:  lead.LastName,
		Email:     lead.Email,
		Company:   lead.Company,
		Stage:     lead.Stage,
		Value:     lead.Value,
		CreatedAt: lead.CreatedAt,
	}

	go func() {
		if err := uc.Queue.PublishLeadEvent(context.Background(), payload); err != nil {
			log.Printf("failed to publish %s for lead %s: %v", event, lead.ID, err)
		}
	}()
}
