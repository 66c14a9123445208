package model

import "strings"

const (
	RoleMember        = "member"
	RoleModerator     = "moderator"
	RoleAdministrator = "administrator"
)

// ValidRole 判断角色名是否合法
func ValidRole(role string) bool {
	switch strings.ToLower(role) {
	case RoleMember, RoleModerator, RoleAdministrator:
		return true
	}
	return false
}

// CanModerate moderator和administrator可以处理举报
func CanModerate(role string) bool {
	return role == RoleModerator || role == RoleAdministrator
}
