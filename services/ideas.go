package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/mireles/vecino/core"
)

// IdeasService maps idea operations to backend requests. No caching,
// retries, or business logic lives here.
type IdeasService struct {
	http core.Transport
}

func NewIdeasService(transport core.Transport) *IdeasService {
	return &IdeasService{http: transport}
}

// IdeaListOptions narrows a listing. Zero values mean "no filter".
type IdeaListOptions struct {
	Limit int
}

func (s *IdeasService) List(ctx context.Context, opts IdeaListOptions) ([]core.Idea, error) {
	query := url.Values{}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	var ideas []core.Idea
	if err := s.http.Get(ctx, pathIdeas, query, &ideas); err != nil {
		return nil, err
	}
	return ideas, nil
}

func (s *IdeasService) Get(ctx context.Context, id int64) (*core.Idea, error) {
	var idea core.Idea
	if err := s.http.Get(ctx, idPath(pathIdea, id), nil, &idea); err != nil {
		return nil, err
	}
	return &idea, nil
}

func (s *IdeasService) Create(ctx context.Context, input core.IdeaCreate) (*core.Idea, error) {
	var idea core.Idea
	if err := s.http.Post(ctx, pathIdeas, nil, input, &idea); err != nil {
		return nil, err
	}
	return &idea, nil
}

func (s *IdeasService) Update(ctx context.Context, id int64, input core.IdeaUpdate) (*core.Idea, error) {
	var idea core.Idea
	if err := s.http.Put(ctx, idPath(pathIdea, id), input, &idea); err != nil {
		return nil, err
	}
	return &idea, nil
}

func (s *IdeasService) Delete(ctx context.Context, id int64) error {
	return s.http.Delete(ctx, idPath(pathIdea, id))
}

// Vote casts a single up or down vote. The backend owns vote counting;
// repeated votes by the same user are not assumed to be idempotent.
func (s *IdeasService) Vote(ctx context.Context, id int64, vote core.VoteType) (*core.Idea, error) {
	query := url.Values{}
	query.Set("vote_type", string(vote))

	var idea core.Idea
	if err := s.http.Post(ctx, idPath(pathIdeaVote, id), query, nil, &idea); err != nil {
		return nil, err
	}
	return &idea, nil
}
