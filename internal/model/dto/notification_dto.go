package dto

// NotificationListQuery 通知列表分页参数，limit 不设上限
type NotificationListQuery struct {
	Limit  int `form:"limit,default=20" binding:"min=0"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// UnreadCountResponse 未读数
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
