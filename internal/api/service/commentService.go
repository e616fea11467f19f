package service

import (
	"context"
	"errors"

	"cigarrank/internal/api/dto"
	"cigarrank/internal/api/models"
	"cigarrank/internal/api/repository"

	"gorm.io/gorm"
)

// threadWindow caps how many recent rows feed one thread view.
const threadWindow = 100

var ErrParentNotFound = errors.New("parent comment not found")

type CommentService interface {
	CreateComment(ctx context.Context, userID string, input *dto.CreateCommentDTO) (*dto.CommentResponse, error)
	GetThread(ctx context.Context, cigarID int64) ([]dto.CommentResponse, error)
	GetMyComments(ctx context.Context, userID string) ([]dto.MyCommentResponse, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	cigarRepo   *repository.CigarRepo
	userRepo    repository.UserRepository
}

func NewCommentService(commentRepo repository.CommentRepository, cigarRepo *repository.CigarRepo, userRepo repository.UserRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		cigarRepo:   cigarRepo,
		userRepo:    userRepo,
	}
}

// CreateComment posts a comment or a reply on a cigar.
func (s *commentService) CreateComment(ctx context.Context, userID string, input *dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	if _, err := s.cigarRepo.GetByID(ctx, input.CigarID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCigarNotFound
		}
		return nil, err
	}

	if input.ParentID != nil {
		parent, err := s.commentRepo.GetByID(*input.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
		if parent.CigarID != input.CigarID {
			return nil, ErrParentNotFound
		}
	}

	images := input.Images
	if images == nil {
		images = []string{}
	}

	comment := &models.Comment{
		UserID:   userID,
		CigarID:  input.CigarID,
		Text:     input.Text,
		Images:   images,
		ParentID: input.ParentID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	username := "Unknown"
	if user, err := s.userRepo.FindByID(userID); err == nil {
		username = user.Username
	}

	resp := toCommentResponse(comment, username)
	return &resp, nil
}

// GetThread returns the cigar's comments as a shallow tree: root comments
// with their direct replies, newest roots first.
func (s *commentService) GetThread(ctx context.Context, cigarID int64) ([]dto.CommentResponse, error) {
	if _, err := s.cigarRepo.GetByID(ctx, cigarID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCigarNotFound
		}
		return nil, err
	}

	comments, err := s.commentRepo.GetByCigar(cigarID, threadWindow)
	if err != nil {
		return nil, err
	}

	// Resolve authors in one query instead of per comment
	seen := make(map[string]struct{})
	var ids []string
	for i := range comments {
		if _, ok := seen[comments[i].UserID]; !ok {
			seen[comments[i].UserID] = struct{}{}
			ids = append(ids, comments[i].UserID)
		}
	}
	usernames, err := s.userRepo.UsernamesByIDs(ids)
	if err != nil {
		return nil, err
	}

	return buildThread(comments, usernames), nil
}

// buildThread assembles root comments and their replies from a flat window
// of rows. Only one reply level is materialized: a reply to a reply is
// flattened onto the nearest root ancestor in the window. Replies whose
// ancestor chain leaves the window are dropped rather than surfaced as
// orphan roots. Input order (newest first) is preserved.
func buildThread(comments []models.Comment, usernames map[string]string) []dto.CommentResponse {
	nodes := make(map[int64]*dto.CommentResponse, len(comments))
	parents := make(map[int64]*int64, len(comments))
	order := make([]int64, 0, len(comments))

	for i := range comments {
		c := &comments[i]
		username, ok := usernames[c.UserID]
		if !ok {
			username = "Unknown"
		}
		resp := toCommentResponse(c, username)
		nodes[c.ID] = &resp
		parents[c.ID] = c.ParentID
		order = append(order, c.ID)
	}

	for _, id := range order {
		node := nodes[id]
		if node.ParentID == nil {
			continue
		}
		if root := rootAncestor(*node.ParentID, parents, nodes); root != nil {
			root.Replies = append(root.Replies, *node)
		}
	}

	roots := make([]dto.CommentResponse, 0, len(comments))
	for _, id := range order {
		node := nodes[id]
		if node.ParentID == nil {
			roots = append(roots, *node)
		}
	}
	return roots
}

// rootAncestor walks the parent chain up to a root comment, or returns nil
// when the chain leads out of the window. The hop cap guards against a
// malformed cycle in parent references.
func rootAncestor(parentID int64, parents map[int64]*int64, nodes map[int64]*dto.CommentResponse) *dto.CommentResponse {
	id := parentID
	for hops := 0; hops <= len(parents); hops++ {
		p, ok := parents[id]
		if !ok {
			return nil
		}
		if p == nil {
			return nodes[id]
		}
		id = *p
	}
	return nil
}

func toCommentResponse(c *models.Comment, username string) dto.CommentResponse {
	images := c.Images
	if images == nil {
		images = []string{}
	}
	return dto.CommentResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Username:  username,
		CigarID:   c.CigarID,
		Text:      c.Text,
		ParentID:  c.ParentID,
		Images:    images,
		CreatedAt: c.CreatedAt,
		Replies:   []dto.CommentResponse{},
	}
}

// GetMyComments lists the caller's comments with the cigar each was left on.
func (s *commentService) GetMyComments(ctx context.Context, userID string) ([]dto.MyCommentResponse, error) {
	comments, err := s.commentRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.MyCommentResponse, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		rows = append(rows, dto.MyCommentResponse{
			ID:        c.ID,
			CigarID:   c.CigarID,
			CigarName: c.Cigar.Name,
			Brand:     c.Cigar.Brand,
			Text:      c.Text,
			ParentID:  c.ParentID,
			CreatedAt: c.CreatedAt,
		})
	}
	return rows, nil
}
