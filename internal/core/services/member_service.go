package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/baetodi/club/internal/core/ports"
	"github.com/google/uuid"
)

type memberService struct {
	repo ports.MemberRepository
}

func NewMemberService(repo ports.MemberRepository) ports.MemberService {
	return &memberService{
		repo: repo,
	}
}

func (s *memberService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if member == nil {
		return nil, domain.ErrMemberNotFound
	}
	return member, nil
}

func (s *memberService) List(ctx context.Context) ([]*domain.Member, error) {
	return s.repo.GetAll(ctx)
}

func (s *memberService) UpdateProfile(ctx context.Context, id uuid.UUID, input ports.UpdateProfileInput) (*domain.Member, error) {
	if input.Nickname == "" && input.Position == "" {
		return nil, errors.New("nothing to update")
	}

	member, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	nickname := member.Nickname
	if input.Nickname != "" {
		nickname = input.Nickname
	}
	position := member.Position
	if input.Position != "" {
		position = input.Position
	}

	if err := s.repo.UpdateProfile(ctx, id, nickname, position); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	member.Nickname = nickname
	member.Position = position
	return member, nil
}

// ActorFor loads the member and shapes it into the explicit actor passed to
// privileged schedule operations.
func (s *memberService) ActorFor(ctx context.Context, id uuid.UUID) (domain.Actor, error) {
	member, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Actor{}, err
	}
	return domain.Actor{ID: member.ID, Position: member.Position}, nil
}
