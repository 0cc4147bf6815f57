package dto

// CreateCommentRequest 评论请求
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

// InteractionListQuery 互动列表过滤条件
type InteractionListQuery struct {
	Type string `form:"type"`
}
