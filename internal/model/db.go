package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 用户角色
const (
	RoleSuperAdmin = "SUPER_ADMIN" // 全局管理员，不受项目归属限制
	RoleSportAdmin = "SPORT_ADMIN" // 单项目管理员，只能操作自己负责的项目
)

// 比赛状态
const (
	MatchUpcoming  = "UPCOMING"
	MatchLive      = "LIVE"
	MatchCompleted = "COMPLETED"
)

// User 后台管理用户。由外部身份服务创建，本服务只读
type User struct {
	ID        string    `gorm:"column:id;type:varchar(64);primaryKey;comment:用户ID（来自身份服务的subject）" json:"id"`
	Email     string    `gorm:"column:email;type:varchar(128);uniqueIndex;not null;comment:邮箱" json:"email"`
	Username  string    `gorm:"column:username;type:varchar(64);not null;comment:用户名" json:"username"`
	Role      string    `gorm:"column:role;type:varchar(16);not null;comment:角色：SUPER_ADMIN/SPORT_ADMIN" json:"role"`
	SportID   *string   `gorm:"column:sport_id;type:varchar(64);comment:SPORT_ADMIN负责的项目ID" json:"sportId"`
	Sport     *Sport    `gorm:"foreignKey:SportID" json:"sport,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间" json:"updatedAt"`
}

// Sport 体育项目，基础参照数据
type Sport struct {
	ID        string    `gorm:"column:id;type:varchar(64);primaryKey;comment:项目ID" json:"id"`
	Slug      string    `gorm:"column:slug;type:varchar(64);uniqueIndex;not null;comment:URL标识" json:"slug"`
	Name      string    `gorm:"column:name;type:varchar(64);not null;comment:项目名称" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间" json:"updatedAt"`
}

// Match 比赛记录。updated_at 随每次修改推进，驱动列表与推送排序
type Match struct {
	ID        string         `gorm:"column:id;type:varchar(64);primaryKey;comment:比赛ID" json:"id"`
	SportID   string         `gorm:"column:sport_id;type:varchar(64);not null;index;comment:所属项目ID" json:"sportId"`
	Sport     *Sport         `gorm:"foreignKey:SportID" json:"sport,omitempty"`
	TeamA     string         `gorm:"column:team_a;type:varchar(128);not null;comment:A队" json:"teamA"`
	TeamB     string         `gorm:"column:team_b;type:varchar(128);not null;comment:B队" json:"teamB"`
	Status    string         `gorm:"column:status;type:varchar(16);not null;default:UPCOMING;comment:状态：UPCOMING/LIVE/COMPLETED" json:"status"`
	StartTime *time.Time     `gorm:"column:start_time;type:timestamp;comment:开赛时间" json:"startTime"`
	Venue     *string        `gorm:"column:venue;type:varchar(128);comment:场地" json:"venue"`
	Score     datatypes.JSON `gorm:"column:score;type:jsonb;comment:比分，结构由前端约定" json:"score"`
	CreatedAt time.Time      `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间" json:"updatedAt"`
}

// Announcement 公告，仅超级管理员可写
type Announcement struct {
	ID        string    `gorm:"column:id;type:varchar(64);primaryKey;comment:公告ID" json:"id"`
	Title     string    `gorm:"column:title;type:varchar(256);not null;comment:标题" json:"title"`
	Body      string    `gorm:"column:body;type:text;not null;comment:正文" json:"body"`
	Pinned    bool      `gorm:"column:pinned;type:boolean;default:false;comment:是否置顶" json:"pinned"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间" json:"updatedAt"`
}

func (User) TableName() string         { return "users" }
func (Sport) TableName() string        { return "sports" }
func (Match) TableName() string        { return "matches" }
func (Announcement) TableName() string { return "announcements" }

// BeforeCreate 主键为空时生成UUID
func (s *Sport) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// IsAdmin 是否具备后台管理角色
func (u *User) IsAdmin() bool {
	return u.Role == RoleSuperAdmin || u.Role == RoleSportAdmin
}
