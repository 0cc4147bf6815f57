package service

import "errors"

var (
	ErrPostNotFound           = errors.New("帖子不存在")
	ErrAlreadyLiked           = errors.New("已点赞")
	ErrLikeNotFound           = errors.New("未点赞")
	ErrEmptyComment           = errors.New("评论内容不能为空")
	ErrAlreadyCommented       = errors.New("已评论")
	ErrInvalidInteractionType = errors.New("互动类型无效")
	ErrNotificationNotFound   = errors.New("通知不存在")
	ErrUnsupportedType        = errors.New("不支持的事件类型")
)
