package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/qs3c/debook/internal/model"
	"github.com/qs3c/debook/internal/model/dto"
	"github.com/qs3c/debook/internal/repository"
)

type PostService struct {
	postRepo *repository.PostRepository
}

func NewPostService(postRepo *repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// Create 发布帖子，计数从 0 开始
func (s *PostService) Create(ctx context.Context, authorID string, req *dto.CreatePostRequest) (*model.Post, error) {
	post := &model.Post{
		AuthorID: authorID,
		Content:  req.Content,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Get 获取帖子
func (s *PostService) Get(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// IncrementCounter 计数 +1
func (s *PostService) IncrementCounter(ctx context.Context, id, field string) error {
	return s.postRepo.IncrementCounter(ctx, id, field, 1)
}

// DecrementCounter 计数 -1
func (s *PostService) DecrementCounter(ctx context.Context, id, field string) error {
	return s.postRepo.IncrementCounter(ctx, id, field, -1)
}
