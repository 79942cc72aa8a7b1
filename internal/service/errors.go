package service

import (
	"errors"
	"fmt"
)

// 实体不存在。错误文本即返回给客户端的 detail
var (
	ErrSportNotFound        = errors.New("Sport not found")
	ErrMatchNotFound        = errors.New("Match not found")
	ErrAnnouncementNotFound = errors.New("Announcement not found")
)

// ForbiddenError 归属校验不通过：SPORT_ADMIN 试图操作别的项目的资源
type ForbiddenError struct {
	Action   string // 动作：create/view/update/delete/manage
	Resource string // 资源：match/sport
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("You do not have permission to %s this %s", e.Action, e.Resource)
}

// IsForbidden 判断是否归属校验错误
func IsForbidden(err error) bool {
	var fe *ForbiddenError
	return errors.As(err, &fe)
}
