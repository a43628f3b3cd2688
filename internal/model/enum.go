package model

// MemberRole 成员角色，取值封闭
type MemberRole string

const (
	RoleProfessor  MemberRole = "professor"
	RoleResearcher MemberRole = "researcher"
	RolePhD        MemberRole = "phd"
	RoleMaster     MemberRole = "master"
	RoleUndergrad  MemberRole = "undergrad"
)

// MemberRoles 按页面分组顺序排列
var MemberRoles = []MemberRole{RoleProfessor, RoleResearcher, RolePhD, RoleMaster, RoleUndergrad}

func (r MemberRole) Valid() bool {
	for _, v := range MemberRoles {
		if r == v {
			return true
		}
	}
	return false
}

// ProjectStatus 项目状态，取值封闭
type ProjectStatus string

const (
	StatusOngoing   ProjectStatus = "ongoing"
	StatusCompleted ProjectStatus = "completed"
)

var ProjectStatuses = []ProjectStatus{StatusOngoing, StatusCompleted}

func (s ProjectStatus) Valid() bool {
	return s == StatusOngoing || s == StatusCompleted
}
