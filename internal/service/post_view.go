package service

import (
	"bamboo/internal/api/dto"
	"bamboo/internal/model"

	"github.com/jinzhu/copier"
)

// 三级视图投影：公开视图无 hash，投稿者视图多出 hash 与拒绝理由，
// 管理端视图带全部编辑快照。

func toPublicPostDTO(post *model.Post) *dto.PublicPostDTO {
	var d dto.PublicPostDTO
	_ = copier.Copy(&d, post)
	d.CreatedAt = post.CreatedAt.UnixMilli()
	return &d
}

func toAuthorPostDTO(post *model.Post) *dto.AuthorPostDTO {
	return &dto.AuthorPostDTO{
		PublicPostDTO: *toPublicPostDTO(post),
		Hash:          post.Hash,
		Reason:        post.Reason,
	}
}

func toAdminPostDTO(post *model.Post) *dto.AdminPostDTO {
	history := make([]dto.PostHistoryDTO, 0, len(post.History))
	for _, h := range post.History {
		history = append(history, dto.PostHistoryDTO{
			Content:  h.Content,
			EditedAt: h.EditedAt.UnixMilli(),
		})
	}

	return &dto.AdminPostDTO{
		AuthorPostDTO: *toAuthorPostDTO(post),
		History:       history,
		UpdatedAt:     post.UpdatedAt.UnixMilli(),
	}
}
